package fetcher

import (
	"sync"

	"weathercheck/internal/weather"
)

// Cache holds completed responses keyed by encoded query string.
type Cache struct {
	data sync.Map
}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) Get(key string) (*weather.Response, bool) {
	v, ok := c.data.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*weather.Response), true
}

func (c *Cache) Set(key string, resp *weather.Response) {
	c.data.Store(key, resp)
}
