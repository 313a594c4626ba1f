package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/scena/pkg/domain"
	"github.com/aretw0/scena/pkg/group"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunLayerStoreContract runs a suite of tests to verify that a LayerStore
// implementation adheres to the defined interface contract.
func RunLayerStoreContract(t *testing.T, store LayerStore) {
	ctx := context.Background()
	docID := "contract-test-doc-" + time.Now().Format("20060102150405")

	sample := func() *domain.Document {
		return &domain.Document{
			Layers: []domain.LayerInfo{
				{ID: "A", Title: "Background"},
				{ID: "B", Scope: domain.Scope{"g1"}, Style: map[string]string{"left": "10px"}},
				{ID: "C", Scope: domain.Scope{"g1", "g2"}},
			},
			Groups: []domain.GroupInfo{
				{ID: "g1", Title: "Hero", Metadata: map[string]any{"locked": true}},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		doc := sample()
		require.NoError(t, store.Save(ctx, docID, doc), "Save should not return error")

		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err, "Load should not return error")
		require.Len(t, loaded.Layers, 3)
		assert.Equal(t, "Background", loaded.Layers[0].Title)
		assert.Equal(t, domain.Scope{"g1", "g2"}, loaded.Layers[2].Scope)
		assert.Equal(t, "10px", loaded.Layers[1].Style["left"])
		require.Len(t, loaded.Groups, 1)
		assert.Equal(t, "Hero", loaded.Groups[0].Title)
		assert.Equal(t, true, loaded.Groups[0].Metadata["locked"])
	})

	t.Run("Load Is Isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err)
		loaded.Layers[0].Title = "changed"

		again, err := store.Load(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, "Background", again.Layers[0].Title)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+docID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, docID, sample()))
		require.NoError(t, store.Delete(ctx, docID), "Delete should not return error")

		_, err := store.Load(ctx, docID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := docID + "-1"
		id2 := docID + "-2"
		require.NoError(t, store.Save(ctx, id1, sample()))
		require.NoError(t, store.Save(ctx, id2, sample()))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})

	t.Run("StoreSource", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, docID, sample()))
		defer func() { _ = store.Delete(ctx, docID) }()

		doc, err := StoreSource{Store: store, ID: docID}.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, doc.Layers, 3)
	})
}

// RunSelectionStoreContract verifies that a SelectionStore implementation
// adheres to the interface contract.
func RunSelectionStoreContract(t *testing.T, store SelectionStore) {
	ctx := context.Background()
	session := "contract-test-session-" + time.Now().Format("20060102150405")

	sample := group.Targets[string]{
		group.Leaf[string]{Value: "A"},
		group.Group[string]{ID: "g1", Children: group.Targets[string]{
			group.Leaf[string]{Value: "B"},
			group.Group[string]{ID: "g2", Scope: domain.Scope{"g1"}, Children: group.Leaves("C")},
		}},
	}

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, session, sample))

		loaded, err := store.Load(ctx, session)
		require.NoError(t, err)
		assert.Equal(t, sample, loaded)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-session")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Empty Selection", func(t *testing.T) {
		id := session + "-empty"
		require.NoError(t, store.Save(ctx, id, group.Targets[string]{}))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, loaded)
		require.NoError(t, store.Delete(ctx, id))
	})

	t.Run("List", func(t *testing.T) {
		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, session)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, session))
		_, err := store.Load(ctx, session)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
		assert.NoError(t, store.Delete(ctx, session), "deleting twice is not an error")
	})
}
