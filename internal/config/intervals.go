package config

import "time"

const (
	// DecodeCacheTTL is how long a decoded polyline stays cached by default
	DecodeCacheTTL = 10 * time.Minute

	// CacheSweepInterval defines how often expired entries are dropped from the memory cache
	CacheSweepInterval = time.Minute

	// RedisOpTimeout bounds every single Redis round trip
	RedisOpTimeout = 5 * time.Second

	// ShutdownTimeout is the grace period for in-flight HTTP requests
	ShutdownTimeout = 10 * time.Second
)
