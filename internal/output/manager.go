package output

import (
	"errors"
	"fmt"
	"sync"
)

// Sink receives run events, outcomes and the final report.
type Sink interface {
	Write(v any) error
	Close() error
}

// Manager fans every value out to its sinks in registration order. A sink
// whose Write fails is detached: it receives nothing further but is still
// closed. Close is idempotent.
type Manager struct {
	mu     sync.Mutex
	sinks  []Sink
	broken []bool
	closed bool
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) AddSink(s Sink) error {
	if m == nil {
		return errors.New("output manager is nil")
	}
	if s == nil {
		return errors.New("sink must not be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errors.New("output manager is closed")
	}
	m.sinks = append(m.sinks, s)
	m.broken = append(m.broken, false)
	return nil
}

// Write delivers v to every healthy sink and reports the sinks that failed.
func (m *Manager) Write(v any) error {
	if m == nil {
		return errors.New("output manager is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errors.New("output manager is closed")
	}
	var errs []error
	for i, s := range m.sinks {
		if m.broken[i] {
			continue
		}
		if err := s.Write(v); err != nil {
			m.broken[i] = true
			errs = append(errs, fmt.Errorf("write %s: %w", sinkName(s), err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors writing to sinks: %w", errors.Join(errs...))
	}
	return nil
}

func (m *Manager) Close() error {
	if m == nil {
		return errors.New("output manager is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", sinkName(s), err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing sinks: %w", errors.Join(errs...))
	}
	return nil
}

func sinkName(s Sink) string {
	switch t := s.(type) {
	case *ConsoleSink:
		return "console (" + t.format + ")"
	case *EmitSink:
		return "emit (" + t.format + ")"
	case *FileSink:
		return "file " + t.path
	case *ReportSink:
		return "report " + t.path
	default:
		return fmt.Sprintf("%T", s)
	}
}
