package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/scena/pkg/domain"
)

// LoggingHooks logs every event at debug level, and mixed-depth selections
// and pruned groups at warn level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSelect: func(ctx context.Context, e *domain.SelectEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "selection", "mode", e.Mode, "selected", e.Selected, "leaves", e.Leaves, "error", e.Err)
				return
			}
			logger.DebugContext(ctx, "selection", "mode", e.Mode, "added", e.Added, "removed", e.Removed, "selected", e.Selected, "leaves", e.Leaves)
		},
		OnRebuild: func(ctx context.Context, e *domain.RebuildEvent) {
			if len(e.Pruned) > 0 {
				logger.WarnContext(ctx, "rebuild pruned groups", "pruned", e.Pruned)
			}
			logger.DebugContext(ctx, "rebuild", "layers", e.Layers, "groups", e.Groups)
		},
	}
}

// Combine fans every event out to all hook sets, in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSelect: func(ctx context.Context, e *domain.SelectEvent) {
			for _, s := range sets {
				if s.OnSelect != nil {
					s.OnSelect(ctx, e)
				}
			}
		},
		OnRebuild: func(ctx context.Context, e *domain.RebuildEvent) {
			for _, s := range sets {
				if s.OnRebuild != nil {
					s.OnRebuild(ctx, e)
				}
			}
		},
	}
}
