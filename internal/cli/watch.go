package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/scena"
)

// WatchReload reloads ws every time its source changes, calling onReload
// after each successful load. It returns when ctx is done or the source
// closes its watch channel, and fails fast when the source cannot be watched.
func WatchReload(ctx context.Context, ws *scena.Workspace, logger *slog.Logger, onReload func()) error {
	changes, err := ws.Watch(ctx)
	if err != nil {
		return err
	}
	logger.Info("Watching for changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if err := ws.Load(ctx); err != nil {
				// Keep the last good canvas until the document is fixed.
				logger.Error("Reload failed", "err", err)
				continue
			}
			logger.Info("Workspace reloaded")
			if onReload != nil {
				onReload()
			}
		}
	}
}
