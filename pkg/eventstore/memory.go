package eventstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Memory is an in-process journal with the same append semantics as the
// Postgres store. Used by unit tests and single-node runs.
type Memory struct {
	mu     sync.Mutex
	nextID int64
	events []Event
}

func NewMemory() *Memory {
	return &Memory{}
}

// Append marshals the payload and appends it at the next version of the
// aggregate stream.
func (m *Memory) Append(_ context.Context, aggregateID, aggregateType, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	version := 0
	for _, e := range m.events {
		if e.AggregateID == aggregateID && e.Version > version {
			version = e.Version
		}
	}

	m.nextID++
	m.events = append(m.events, Event{
		ID:            m.nextID,
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		EventData:     data,
		Version:       version + 1,
		CreatedAt:     time.Now().UTC(),
	})
	return nil
}

// LoadEvents returns the events of one aggregate stream in version order.
func (m *Memory) LoadEvents(_ context.Context, aggregateID string) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Event
	for _, e := range m.events {
		if e.AggregateID == aggregateID {
			out = append(out, e)
		}
	}
	return out
}

// All returns every event in append order.
func (m *Memory) All() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}
