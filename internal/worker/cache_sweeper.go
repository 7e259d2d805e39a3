package worker

import (
	"context"
	"log/slog"
	"time"

	"flexline/internal/service/storage"
)

// StartCacheSweeper periodically drops expired entries from an in-memory cache
func StartCacheSweeper(ctx context.Context, expirer storage.Expirer, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := expirer.PurgeExpired(); n > 0 {
					slog.Debug("purged expired cache entries", "count", n)
				}
			}
		}
	}()

	slog.Info("cache sweeper started", "interval", interval)
}
