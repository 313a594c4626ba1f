package ports

import (
	"context"

	"github.com/aretw0/scena/pkg/domain"
)

// LayerSource defines how a workspace retrieves its document.
// This allows the storage layer (Loam, YAML file, Memory) to be decoupled.
type LayerSource interface {
	// Load returns the current document. Implementations return a copy the
	// caller may keep.
	Load(ctx context.Context) (*domain.Document, error)
}

// Watchable defines an interface for sources that can notify about backend changes.
// This is typically used for hot-reload of the layer tree.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying document changes.
	// It abstracts away the specific event details, signaling only that a reload is required.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
