package kvstore

import (
	"context"
	"fmt"
	"strings"

	"stamp-rally/internal/infra"

	lru "github.com/hashicorp/golang-lru"
)

// MemoryStore keeps values in a bounded LRU. Data does not survive restarts; meant for local
// development and tests.
type MemoryStore struct {
	cache *lru.Cache
}

func NewMemoryStore(size int) (*MemoryStore, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}
	return &MemoryStore{cache: cache}, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, infra.StoreError{Kind: infra.KindNotFound}
	}
	return clone(v.([]byte)), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.cache.Add(key, clone(value))
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		s.cache.Remove(k)
	}
	return nil
}

func (s *MemoryStore) DeletePrefix(_ context.Context, prefix string) (int, error) {
	if prefix == "" {
		return 0, nil
	}
	deleted := 0
	for _, k := range s.cache.Keys() {
		key, ok := k.(string)
		if ok && strings.HasPrefix(key, prefix) && s.cache.Remove(key) {
			deleted++
		}
	}
	return deleted, nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
