package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/scena/pkg/domain"
	"github.com/aretw0/scena/pkg/group"
)

// SelectionStore implements ports.SelectionStore in memory.
// Safe for concurrent use.
type SelectionStore struct {
	data map[string]group.Targets[string]
	mu   sync.RWMutex
}

// NewSelectionStore creates an empty selection store.
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{
		data: make(map[string]group.Targets[string]),
	}
}

// Save stores a copy of sel.
func (s *SelectionStore) Save(ctx context.Context, session string, sel group.Targets[string]) error {
	copied := sel.Clone()
	if copied == nil {
		copied = group.Targets[string]{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[session] = copied
	return nil
}

// Load returns a copy of the stored selection.
func (s *SelectionStore) Load(ctx context.Context, session string) (group.Targets[string], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sel, ok := s.data[session]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sel.Clone(), nil
}

// Delete forgets the session.
func (s *SelectionStore) Delete(ctx context.Context, session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, session)
	return nil
}

// List returns the session ids in sorted order.
func (s *SelectionStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
