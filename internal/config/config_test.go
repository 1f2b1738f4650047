package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "APP_ENV", "UPLOAD_DIR", "OUTPUT_DIR",
	"MAX_UPLOAD_BYTES", "MAX_RASTER_DIMENSION", "REQUEST_TIMEOUT", "RASTER_WORKERS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./uploads", cfg.UploadDir)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, int64(512<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 16384, cfg.MaxRasterDimension)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Positive(t, cfg.RasterWorkers)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("MAX_RASTER_DIMENSION", "256")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("RASTER_WORKERS", "3")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
	assert.Equal(t, 256, cfg.MaxRasterDimension)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3, cfg.RasterWorkers)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string]string{
		"MAX_UPLOAD_BYTES":     "lots",
		"MAX_RASTER_DIMENSION": "0",
		"REQUEST_TIMEOUT":      "soon",
		"RASTER_WORKERS":       "-2",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv は既に設定済みの変数を上書きしないため、事前に消しておく
	require.NoError(t, os.Unsetenv("PORT"))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
}
