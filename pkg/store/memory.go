package store

import (
	"context"
	"sync"

	apperrors "github.com/yanqirenshi/padgen/pkg/errors"
)

// MemoryStore keeps diagrams in a process-local map.
type MemoryStore struct {
	mu       sync.RWMutex
	diagrams map[string]Diagram
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{diagrams: make(map[string]Diagram)}
}

// Put saves a diagram.
func (s *MemoryStore) Put(ctx context.Context, d *Diagram) error {
	s.mu.Lock()
	s.diagrams[d.ID] = *d
	s.mu.Unlock()
	return nil
}

// Get retrieves a diagram by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Diagram, error) {
	s.mu.RLock()
	d, ok := s.diagrams[id]
	s.mu.RUnlock()

	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, ErrNotFound, "diagram %s", id)
	}
	return &d, nil
}

// Delete removes a diagram.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.diagrams, id)
	s.mu.Unlock()
	return nil
}

// Close drops all diagrams.
func (s *MemoryStore) Close(ctx context.Context) error {
	s.mu.Lock()
	s.diagrams = make(map[string]Diagram)
	s.mu.Unlock()
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
