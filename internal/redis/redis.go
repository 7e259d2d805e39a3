package redis

import (
	"context"
	"log/slog"
	"time"

	"flexline/internal/config"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

// Nil is returned by Get when the key does not exist.
const Nil = redis.Nil

var redisClient *redis.Client

// Init connects to redisURL, checks the connection and stores the client
// for the package level helpers.
func Init(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), config.RedisOpTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "connect to redis")
	}

	slog.Info("connected to redis", "addr", opts.Addr, "db", opts.DB)
	redisClient = client

	return client, nil
}

// GetClient returns the client set up by Init, or nil.
func GetClient() *redis.Client {
	return redisClient
}

// Close closes the client set up by Init.
func Close() error {
	if redisClient == nil {
		return nil
	}
	slog.Info("closing redis connection")
	err := redisClient.Close()
	redisClient = nil
	return err
}

func opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, config.RedisOpTimeout)
}

// Set stores a key-value pair with an expiration (0 keeps it forever).
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	return redisClient.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value by key. A missing key yields Nil.
func Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	return redisClient.Get(ctx, key).Result()
}

// Delete removes a key.
func Delete(ctx context.Context, key string) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	return redisClient.Del(ctx, key).Err()
}
