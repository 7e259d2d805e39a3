package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := load(viper.New(), ".env.missing", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.Port)
	assert.Equal(t, "", c.RedisUrl)
	assert.Equal(t, 5, c.DefaultPrecision)
	assert.Equal(t, DecodeCacheTTL, c.CacheTTL)
	assert.Equal(t, 10000, c.CacheMaxEntries)
	assert.False(t, c.ValidateCoordinates)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	content := "PORT=:9090\nDEFAULT_PRECISION=7\nCACHE_TTL=30s\nLOG_FORMAT=json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte(content), 0o600))

	t.Setenv("DEFAULT_PRECISION", "6")
	t.Setenv("VALIDATE_COORDINATES", "true")

	c, err := load(viper.New(), ".env.test", dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", c.Port)
	assert.Equal(t, 6, c.DefaultPrecision)
	assert.Equal(t, 30*time.Second, c.CacheTTL)
	assert.Equal(t, "json", c.LogFormat)
	assert.True(t, c.ValidateCoordinates)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("DEFAULT_PRECISION", "16")
	t.Setenv("LOG_FORMAT", "xml")

	_, err := load(viper.New(), ".env.missing", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_PRECISION")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}
