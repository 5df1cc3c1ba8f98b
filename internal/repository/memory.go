package repository

import (
	"context"
	"sync"
)

// MemoryStore is an in-process KeyHashStore used by tests and local runs
// without Redis. A single mutex makes each operation atomic, mirroring
// the per-command atomicity of Redis hash operations.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, collection, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.collections[collection][key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

func (s *MemoryStore) Put(_ context.Context, collection, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[collection]
	if !ok {
		c = make(map[string][]byte)
		s.collections[collection] = c
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	c[key] = cp
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, collection, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection][key]; !ok {
		return 0, nil
	}
	delete(s.collections[collection], key)
	return 1, nil
}

func (s *MemoryStore) Values(_ context.Context, collection string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collections[collection]
	out := make([][]byte, 0, len(c))
	for _, v := range c {
		cp := make([]byte, len(v))
		copy(cp, v)
		out = append(out, cp)
	}
	return out, nil
}

func (s *MemoryStore) Count(_ context.Context, collection string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.collections[collection])), nil
}
