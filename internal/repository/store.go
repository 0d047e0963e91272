package repository

import (
	"context"
	"errors"
	"sync"
)

// ErrKeyNotFound is returned when a store key has no value.
var ErrKeyNotFound = errors.New("store: key not found")

// Store is the key-based persistence port. Values are opaque JSON blobs;
// callers own the encoding. Writes fully replace any prior value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
}

// Well-known store keys.
const (
	KeyPortfolio     = "portfolio"
	KeyDigestHistory = "digests"
	KeyScheduleState = "schedule"
)

// MemoryStore implements Store in memory, for tests and local runs.
type MemoryStore struct {
	mutex   sync.RWMutex
	entries map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, ok := s.entries[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	// Copy so callers cannot mutate the stored value.
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.entries[key] = stored
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	_, ok := s.entries[key]
	return ok, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
