package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Memory is an in-process key-value store. Contents are lost on exit.
type Memory struct {
	mu      sync.RWMutex
	values  map[string]string
	updated map[string]time.Time
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		values:  make(map[string]string),
		updated: make(map[string]time.Time),
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.updated[key] = time.Now().UTC()
	return nil
}

// Entries lists every stored key, sorted by key.
func (m *Memory) Entries(_ context.Context) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]Entry, 0, len(m.values))
	for k, v := range m.values {
		entries = append(entries, Entry{Key: k, Size: len(v), UpdatedAt: m.updated[k]})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
