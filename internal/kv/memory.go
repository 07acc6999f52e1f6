package kv

import (
	"context"
	"sync"
)

// Memory is a map-backed Storage. It is used for the "memory" backend and
// as the fake in tests.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
	writes int

	// FailGet and FailSet, when non-nil, are returned by the next calls.
	FailGet error
	FailSet error
}

// NewMemory returns an empty Memory storage.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements Storage.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailGet != nil {
		return "", false, m.FailGet
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Storage.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet != nil {
		return m.FailSet
	}
	m.values[key] = value
	m.writes++
	return nil
}

// Put seeds a value without counting it as a write.
func (m *Memory) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Value returns the raw value under key.
func (m *Memory) Value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Writes returns how many successful Set calls were made.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
