package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/i474232898/gas-sensor-assistant/internal/sensor"
)

// MemoryStore is a concurrency-safe in-memory sensor collection. It backs
// local runs (STORE_BACKEND=memory) and tests.
type MemoryStore struct {
	mu sync.RWMutex

	// key: record key, value: raw record as it would come from the store
	data map[string]any
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]any),
	}
}

// LoadFixture reads a JSON object of key -> record into a new MemoryStore.
// A JSON null file yields an empty store, like an empty database path.
func LoadFixture(path string) (*MemoryStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}

	var snap sensor.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", path, err)
	}

	s := NewMemoryStore()
	for k, v := range snap {
		s.data[k] = v
	}
	return s, nil
}

// Put stores value under key, replacing any previous value.
func (s *MemoryStore) Put(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// FetchAll returns a copy of the collection. Records themselves are shared
// and must be treated as read-only.
func (s *MemoryStore) FetchAll(ctx context.Context) (sensor.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(sensor.Snapshot, len(s.data))
	for k, v := range s.data {
		snap[k] = v
	}
	return snap, nil
}

// Ping only fails when ctx is already done.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}
