package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/riskibarqy/the-gaffer/internal/platform/kvstore"
)

// KVStore keeps namespaced values in process memory.
type KVStore struct {
	mu     sync.RWMutex
	spaces map[string]map[string][]byte
}

func NewKVStore() *KVStore {
	return &KVStore{spaces: make(map[string]map[string][]byte)}
}

func (s *KVStore) Get(_ context.Context, namespace, key string) ([]byte, bool, error) {
	if err := kvstore.ValidateNamespace(namespace); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.spaces[namespace][key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

func (s *KVStore) SetMany(_ context.Context, namespace string, entries ...kvstore.Entry) error {
	if err := kvstore.ValidateNamespace(namespace); err != nil {
		return err
	}
	for _, e := range entries {
		if e.Key == "" {
			return fmt.Errorf("entry key is required")
		}
	}
	if len(entries) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	space, ok := s.spaces[namespace]
	if !ok {
		space = make(map[string][]byte, len(entries))
		s.spaces[namespace] = space
	}
	for _, e := range entries {
		space[e.Key] = slices.Clone(e.Value)
	}
	return nil
}

func (s *KVStore) Delete(_ context.Context, namespace string, keys ...string) error {
	if err := kvstore.ValidateNamespace(namespace); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	space, ok := s.spaces[namespace]
	if !ok {
		return nil
	}
	for _, key := range keys {
		delete(space, key)
	}
	if len(space) == 0 {
		delete(s.spaces, namespace)
	}
	return nil
}
