package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/scena/pkg/domain"
	"github.com/aretw0/scena/pkg/group"
	"github.com/aretw0/scena/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnSelect(ctx, &domain.SelectEvent{Mode: domain.ModeCompleted, Leaves: 3})
	hooks.OnSelect(ctx, &domain.SelectEvent{Mode: domain.ModeCompleted, Leaves: 1})
	hooks.OnSelect(ctx, &domain.SelectEvent{Mode: domain.ModeSameDepth, Err: group.ErrMixedDepth})
	hooks.OnRebuild(ctx, &domain.RebuildEvent{Layers: 4, Groups: 2, Pruned: []string{"old"}})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Selections.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Selections.WithLabelValues("same_depth")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MixedDepth))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rebuilds))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Layers))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Groups))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Pruned))
	assert.Equal(t, 2, testutil.CollectAndCount(m.SelectionSize))
}

func TestCombine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	calls := 0
	counting := domain.LifecycleHooks{
		OnSelect: func(context.Context, *domain.SelectEvent) { calls++ },
	}
	hooks := observability.Combine(observability.LoggingHooks(logger), counting, domain.LifecycleHooks{})

	hooks.OnSelect(context.Background(), &domain.SelectEvent{Mode: domain.ModeSingle, Leaves: 1})
	hooks.OnRebuild(context.Background(), &domain.RebuildEvent{Pruned: []string{"g9"}})

	assert.Equal(t, 1, calls)
	assert.Contains(t, buf.String(), "mode=single")
	assert.Contains(t, buf.String(), "g9")
}
