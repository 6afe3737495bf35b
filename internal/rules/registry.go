package rules

import (
	"fmt"
	"strings"
	"sync"
)

var (
	registry = make(map[string]Rule)
	order    []string
	mu       sync.RWMutex
)

// Register adds a rule. Rules are listed in registration order.
func Register(r Rule) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[r.ID()]; exists {
		panic(fmt.Sprintf("rule %s already registered", r.ID()))
	}
	registry[r.ID()] = r
	order = append(order, r.ID())
}

func List() []Rule {
	mu.RLock()
	defer mu.RUnlock()
	return listLocked()
}

func listLocked() []Rule {
	rules := make([]Rule, 0, len(order))
	for _, id := range order {
		rules = append(rules, registry[id])
	}
	return rules
}

func Get(id string) (Rule, bool) {
	mu.RLock()
	defer mu.RUnlock()
	r, ok := registry[id]
	return r, ok
}

// Resolve selects rules from a comma-separated list of IDs. The result keeps
// registration order regardless of the order in the selector.
func Resolve(selector string) ([]Rule, error) {
	mu.RLock()
	defer mu.RUnlock()

	if strings.TrimSpace(selector) == "" {
		return listLocked(), nil
	}

	wanted := make(map[string]struct{})
	for _, id := range strings.Split(selector, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := registry[id]; !ok {
			return nil, fmt.Errorf("rule not found: %s", id)
		}
		wanted[id] = struct{}{}
	}

	var selected []Rule
	for _, id := range order {
		if _, ok := wanted[id]; ok {
			selected = append(selected, registry[id])
		}
	}
	return selected, nil
}
