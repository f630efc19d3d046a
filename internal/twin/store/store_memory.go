package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"doppel/internal/twin/models"
	"doppel/pkg/domain"
	"doppel/pkg/platform/sentinel"
)

// InMemory is a map-backed Store for tests and local development. Values are
// stored as JSON so it exercises the same serialization path as the remote
// stores and callers cannot mutate cached entries through shared pointers.
type InMemory struct {
	mu      sync.RWMutex
	entries map[domain.ZIPCode][]byte
}

func NewInMemory() *InMemory {
	return &InMemory{entries: make(map[domain.ZIPCode][]byte)}
}

func (s *InMemory) Get(_ context.Context, zip domain.ZIPCode) (*models.CompositeResult, error) {
	s.mu.RLock()
	raw, ok := s.entries[zip]
	s.mu.RUnlock()
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	var result models.CompositeResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode cached composite: %w", err)
	}
	return &result, nil
}

func (s *InMemory) Put(_ context.Context, zip domain.ZIPCode, result *models.CompositeResult) error {
	if result == nil {
		return fmt.Errorf("composite result is required")
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode composite: %w", err)
	}
	s.mu.Lock()
	s.entries[zip] = raw
	s.mu.Unlock()
	return nil
}

// Len reports the number of cached entries. Test helper.
func (s *InMemory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
