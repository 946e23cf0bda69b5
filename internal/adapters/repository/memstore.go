package repository

import (
	"context"
	"sync"

	"github.com/okian/swimzones/internal/domain/model"
	"github.com/okian/swimzones/pkg/metrics"
)

// MemoryStore is a Store backed by a map plus an insertion-order index.
// It is safe for concurrent use.
type MemoryStore struct {
	mu         sync.RWMutex
	items      map[string]model.Analysis
	order      []string
	maxEntries int
}

// NewMemoryStore creates an empty store. Without WithMaxEntries it is unbounded.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{items: make(map[string]model.Analysis)}
	for _, opt := range opts {
		opt(s)
	}
	metrics.UpdateResultsStored(0)
	return s
}

// Put implements Store.
func (s *MemoryStore) Put(_ context.Context, a model.Analysis) error {
	if a.SessionID == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[a.SessionID]; !exists {
		s.order = append(s.order, a.SessionID)
	}
	s.items[a.SessionID] = a

	for s.maxEntries > 0 && len(s.order) > s.maxEntries {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.items, oldest)
	}
	metrics.UpdateResultsStored(len(s.items))
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (model.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.items[sessionID]
	if !ok {
		return model.Analysis{}, ErrNotFound
	}
	return a, nil
}

// All implements Store.
func (s *MemoryStore) All(_ context.Context) []model.Analysis {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Analysis, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
