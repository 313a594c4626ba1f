package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/scena/pkg/domain"
)

// Source implements ports.LayerSource and ports.Watchable over a document
// held in memory. Update replaces the document and signals watchers.
type Source struct {
	mu       sync.RWMutex
	doc      *domain.Document
	watchers []chan struct{}
}

// NewSource creates a source holding a copy of doc.
func NewSource(doc *domain.Document) *Source {
	if doc == nil {
		doc = &domain.Document{}
	}
	return &Source{doc: doc.Clone()}
}

// NewFromLayers creates a source from layers, validating that every layer has an ID.
// This improves DX for tests and examples.
func NewFromLayers(layers ...domain.LayerInfo) (*Source, error) {
	seen := make(map[string]struct{}, len(layers))
	for _, l := range layers {
		if l.ID == "" {
			return nil, fmt.Errorf("layer missing ID")
		}
		if _, dup := seen[l.ID]; dup {
			return nil, fmt.Errorf("duplicate layer ID: %s", l.ID)
		}
		seen[l.ID] = struct{}{}
	}
	return NewSource(&domain.Document{Layers: layers}), nil
}

// Load returns a copy of the current document.
func (s *Source) Load(ctx context.Context) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone(), nil
}

// Update replaces the document and notifies watchers.
func (s *Source) Update(doc *domain.Document) {
	s.mu.Lock()
	s.doc = doc.Clone()
	watchers := append([]chan struct{}(nil), s.watchers...)
	s.mu.Unlock()

	for _, ch := range watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Watch returns a channel signaled after every Update. It is closed when
// ctx is done.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, w := range s.watchers {
			if w == ch {
				s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}
