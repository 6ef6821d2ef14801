package store

import (
	"encoding/json"
	"sync"
)

// MemoryKV is a concurrency-safe in-memory KV, used in tests and as a
// fallback when no data directory is configured.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]json.RawMessage
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]json.RawMessage)}
}

// Get implements KV.
func (s *MemoryKV) Get(key string, out any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

// Set implements KV.
func (s *MemoryKV) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}
