package store

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when the saved-location collection is empty.
var ErrNotFound = errors.New("no saved locations")

// SavedLocation is one entry of the saved-location collection, newest first.
type SavedLocation struct {
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Timestamp time.Time `json:"timestamp"`
}

// LocationStore persists every location the user saves or auto-detects.
type LocationStore interface {
	Save(ctx context.Context, loc SavedLocation) error
	// Latest returns the most recently saved location, or ErrNotFound.
	Latest(ctx context.Context) (SavedLocation, error)
	All(ctx context.Context) ([]SavedLocation, error)
}

// MemoryLocationStore is a concurrency-safe in-memory LocationStore with a
// bounded history. If maxHistory is <= 0 it is treated as unlimited.
type MemoryLocationStore struct {
	mu         sync.RWMutex
	rows       []SavedLocation // newest first
	maxHistory int
}

// NewMemoryLocationStore creates a MemoryLocationStore with an optional limit.
func NewMemoryLocationStore(maxHistory int) *MemoryLocationStore {
	return &MemoryLocationStore{maxHistory: maxHistory}
}

// Save prepends the location and enforces retention.
func (s *MemoryLocationStore) Save(_ context.Context, loc SavedLocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows = append([]SavedLocation{loc}, s.rows...)
	if s.maxHistory > 0 && len(s.rows) > s.maxHistory {
		s.rows = s.rows[:s.maxHistory]
	}
	return nil
}

// Latest returns the most recently saved location.
func (s *MemoryLocationStore) Latest(_ context.Context) (SavedLocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.rows) == 0 {
		return SavedLocation{}, ErrNotFound
	}
	return s.rows[0], nil
}

// All returns every saved location, newest first.
func (s *MemoryLocationStore) All(_ context.Context) ([]SavedLocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SavedLocation, len(s.rows))
	copy(out, s.rows)
	return out, nil
}
