package memory

import (
	"context"
	"sync"
)

// Store keeps blobs in process memory. It backs tests and throwaway demo runs.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func New() *Store {
	return &Store{values: make(map[string][]byte)}
}

// NewSeeded starts the store with raw JSON already saved under the given keys.
func NewSeeded(values map[string]string) *Store {
	s := New()
	for key, value := range values {
		s.values[key] = []byte(value)
	}
	return s
}

func (s *Store) Load(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(value), true, nil
}

func (s *Store) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = cloneBytes(value)
	return nil
}

// Keys lists what has been saved so far.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	return keys
}

func cloneBytes(src []byte) []byte {
	dup := make([]byte, len(src))
	copy(dup, src)
	return dup
}
