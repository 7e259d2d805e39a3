package worker

import (
	"context"
	"log/slog"

	"flexline/internal/config"
	"flexline/internal/service/storage"
)

// StartAllWorkers starts the background workers the configured services need.
// Workers stop when ctx is cancelled.
func StartAllWorkers(ctx context.Context, expirer storage.Expirer) {
	slog.Info("starting workers")

	if expirer != nil {
		StartCacheSweeper(ctx, expirer, config.CacheSweepInterval)
	}

	slog.Info("all workers started")
}
