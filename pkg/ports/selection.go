package ports

import (
	"context"

	"github.com/aretw0/scena/pkg/group"
)

// SelectionStore persists the current selection of each editing session.
type SelectionStore interface {
	// Save stores the selection of session, replacing any previous one.
	Save(ctx context.Context, session string, sel group.Targets[string]) error

	// Load returns the stored selection.
	// Returns domain.ErrSessionNotFound if none is stored.
	Load(ctx context.Context, session string) (group.Targets[string], error)

	// Delete forgets the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, session string) error

	// List returns the ids of sessions with a stored selection.
	List(ctx context.Context) ([]string, error)
}
