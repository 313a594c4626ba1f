package ports

import (
	"context"

	"github.com/aretw0/scena/pkg/domain"
)

// LayerStore defines the interface for persisting layer documents by id.
type LayerStore interface {
	// Save persists the document under id, replacing any previous version.
	Save(ctx context.Context, id string, doc *domain.Document) error

	// Load retrieves the document stored under id.
	// Returns domain.ErrDocumentNotFound if it does not exist.
	Load(ctx context.Context, id string) (*domain.Document, error)

	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of the stored documents.
	List(ctx context.Context) ([]string, error)
}

// StoreSource adapts one document of a LayerStore into a LayerSource.
type StoreSource struct {
	Store LayerStore
	ID    string
}

// Load implements LayerSource.
func (s StoreSource) Load(ctx context.Context) (*domain.Document, error) {
	return s.Store.Load(ctx, s.ID)
}
