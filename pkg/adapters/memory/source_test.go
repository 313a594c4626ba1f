package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/scena/pkg/adapters/memory"
	"github.com/aretw0/scena/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_LoadIsolated(t *testing.T) {
	src, err := memory.NewFromLayers(
		domain.LayerInfo{ID: "A"},
		domain.LayerInfo{ID: "B", Scope: domain.Scope{"g1"}},
	)
	require.NoError(t, err)

	doc, err := src.Load(context.Background())
	require.NoError(t, err)
	doc.Layers[1].Scope[0] = "changed"

	again, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Scope{"g1"}, again.Layers[1].Scope)
}

func TestSource_Validation(t *testing.T) {
	_, err := memory.NewFromLayers(domain.LayerInfo{})
	assert.Error(t, err)

	_, err = memory.NewFromLayers(domain.LayerInfo{ID: "A"}, domain.LayerInfo{ID: "A"})
	assert.ErrorContains(t, err, "duplicate")
}

func TestSource_Watch(t *testing.T) {
	src := memory.NewSource(nil)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := src.Watch(ctx)
	require.NoError(t, err)

	src.Update(&domain.Document{Layers: []domain.LayerInfo{{ID: "A"}}})
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a change signal")
	}

	doc, _ := src.Load(context.Background())
	assert.Len(t, doc.Layers, 1)

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}
