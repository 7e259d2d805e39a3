package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Port                string        `mapstructure:"PORT"`
	RedisUrl            string        `mapstructure:"REDIS_URL"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`
	LogFormat           string        `mapstructure:"LOG_FORMAT"`
	LogFile             string        `mapstructure:"LOG_FILE"`
	CacheTTL            time.Duration `mapstructure:"CACHE_TTL"`
	CacheMaxEntries     int           `mapstructure:"CACHE_MAX_ENTRIES"`
	DefaultPrecision    int           `mapstructure:"DEFAULT_PRECISION"`
	ValidateCoordinates bool          `mapstructure:"VALIDATE_COORDINATES"`
}

var keys = []string{
	"PORT", "REDIS_URL", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
	"CACHE_TTL", "CACHE_MAX_ENTRIES", "DEFAULT_PRECISION", "VALIDATE_COORDINATES",
}

// LoadConfig reads .env.<APP_ENV> from the working directory (if present) and
// lets environment variables override it.
func LoadConfig() (Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	return load(viper.New(), fmt.Sprintf(".env.%s", env), ".")
}

func load(v *viper.Viper, name, path string) (c Config, err error) {
	v.SetDefault("PORT", ":8080")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("CACHE_TTL", DecodeCacheTTL)
	v.SetDefault("CACHE_MAX_ENTRIES", 10000)
	v.SetDefault("DEFAULT_PRECISION", 5)
	v.SetDefault("VALIDATE_COORDINATES", false)

	v.SetConfigName(name)
	v.SetConfigType("env")
	v.AddConfigPath(path)

	// Environment variables take precedence over the config file
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return c, errors.Wrapf(err, "bind %s", k)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, errors.Wrap(err, "read config")
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, errors.Wrap(err, "unmarshal config")
	}
	return c, c.Validate()
}

// Validate checks that the loaded values are usable.
func (c Config) Validate() error {
	var errs []string

	if c.Port == "" {
		errs = append(errs, "PORT is required")
	}
	if c.DefaultPrecision < 0 || c.DefaultPrecision > 15 {
		errs = append(errs, fmt.Sprintf("DEFAULT_PRECISION must be 0-15, got %d", c.DefaultPrecision))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, "CACHE_TTL must not be negative")
	}
	if c.CacheMaxEntries < 0 {
		errs = append(errs, "CACHE_MAX_ENTRIES must not be negative")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}

	if len(errs) > 0 {
		return errors.Newf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
