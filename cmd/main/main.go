package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"flexline/internal/api"
	"flexline/internal/config"
	"flexline/internal/logging"
	"flexline/internal/redis"
	"flexline/internal/service/codec"
	"flexline/internal/service/storage"
	"flexline/internal/worker"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logFile := setupLogging(cfg)
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache, expirer := initializeCache(cfg)
	defer closeConnections()

	svc := codec.NewCodecService(cache, codec.Options{ValidateCoordinates: cfg.ValidateCoordinates})

	worker.StartAllWorkers(ctx, expirer)

	if err := runAPIServer(ctx, cfg, svc); err != nil {
		slog.Error("api server failed", "error", err)
		os.Exit(1)
	}
}

func setupLogging(cfg config.Config) io.Closer {
	closer, err := logging.Setup(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		slog.Error("failed to open log file, logging to stdout only", "error", err)
	}
	return closer
}

// initializeCache prefers Redis and falls back to the in-memory cache when
// Redis is not configured or unreachable.
func initializeCache(cfg config.Config) (codec.Cache, storage.Expirer) {
	if cfg.RedisUrl != "" {
		_, err := redis.Init(cfg.RedisUrl)
		if err == nil {
			return codec.NewRedisCache(cfg.CacheTTL), nil
		}
		slog.Warn("redis unavailable, using in-memory cache", "error", err)
	}

	mem := codec.NewMemoryCache(cfg.CacheTTL, cfg.CacheMaxEntries)
	return mem, mem
}

func runAPIServer(ctx context.Context, cfg config.Config, svc *codec.CodecService) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	api.SetupRouter(r, cfg, svc)

	srv := &http.Server{Addr: cfg.Port, Handler: r}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("api server listening", "addr", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutdown signal received, draining requests")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func closeConnections() {
	if err := redis.Close(); err != nil {
		slog.Error("error closing redis connection", "error", err)
	}
}
