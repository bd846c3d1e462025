package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Environment(t *testing.T) {
	originalEnv := map[string]string{
		"AUSY_APP_NAME":                     os.Getenv("AUSY_APP_NAME"),
		"AUSY_APP_ENV":                      os.Getenv("AUSY_APP_ENV"),
		"AUSY_API_BASE_URL":                 os.Getenv("AUSY_API_BASE_URL"),
		"AUSY_API_TOKEN":                    os.Getenv("AUSY_API_TOKEN"),
		"AUSY_API_TIMEOUT":                  os.Getenv("AUSY_API_TIMEOUT"),
		"AUSY_LISTING_PAGE_SIZE":            os.Getenv("AUSY_LISTING_PAGE_SIZE"),
		"AUSY_TELEMETRY_SAMPLING_RATIO":     os.Getenv("AUSY_TELEMETRY_SAMPLING_RATIO"),
		"AUSY_SEED_RATE":                    os.Getenv("AUSY_SEED_RATE"),
		"AUSY_LOG_LEVEL":                    os.Getenv("AUSY_LOG_LEVEL"),
		"AUSY_TELEMETRY_COLLECTOR_ENDPOINT": os.Getenv("AUSY_TELEMETRY_COLLECTOR_ENDPOINT"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := LoadFile("")
		require.NoError(t, err)

		assert.Equal(t, "ausyexpo-console", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.API.Timeout)
		assert.NotEmpty(t, cfg.API.TokenFile)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.Equal(t, "stderr", cfg.Log.Output)
		assert.Equal(t, 10, cfg.Listing.PageSize)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
		assert.Equal(t, "ausyexpo-console", cfg.Telemetry.ServiceName)
		assert.Equal(t, 5.0, cfg.Seed.Rate)
	})

	t.Run("loads values from environment variables with AUSY prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("AUSY_APP_NAME", "test-console")
		os.Setenv("AUSY_API_BASE_URL", "https://erp.example.com")
		os.Setenv("AUSY_API_TOKEN", "abc.def.ghi")
		os.Setenv("AUSY_API_TIMEOUT", "5s")
		os.Setenv("AUSY_LISTING_PAGE_SIZE", "0")
		os.Setenv("AUSY_LOG_LEVEL", "debug")

		cfg, err := LoadFile("")
		require.NoError(t, err)

		assert.Equal(t, "test-console", cfg.App.Name)
		assert.Equal(t, "https://erp.example.com", cfg.API.BaseURL)
		assert.Equal(t, "abc.def.ghi", cfg.API.Token)
		assert.Equal(t, 5*time.Second, cfg.API.Timeout)
		assert.Equal(t, 0, cfg.Listing.PageSize)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("rejects relative base url", func(t *testing.T) {
		clearEnv()
		os.Setenv("AUSY_API_BASE_URL", "localhost:8080")

		_, err := LoadFile("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api.base_url")
	})

	t.Run("rejects plain http in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("AUSY_APP_ENV", "production")
		os.Setenv("AUSY_API_BASE_URL", "http://erp.example.com")

		_, err := LoadFile("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "https")
	})

	t.Run("rejects sampling ratio out of range", func(t *testing.T) {
		clearEnv()
		os.Setenv("AUSY_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := LoadFile("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestLoadFile(t *testing.T) {
	os.Unsetenv("AUSY_API_BASE_URL")
	os.Unsetenv("AUSY_LISTING_PAGE_SIZE")

	t.Run("reads explicit toml file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "console.toml")
		content := `
[api]
base_url = "https://api.ausy.test"
timeout = "12s"

[listing]
page_size = 25

[seed]
rate = 2.5
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "https://api.ausy.test", cfg.API.BaseURL)
		assert.Equal(t, 12*time.Second, cfg.API.Timeout)
		assert.Equal(t, 25, cfg.Listing.PageSize)
		assert.Equal(t, 2.5, cfg.Seed.Rate)
	})

	t.Run("fails on missing explicit file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
		require.Error(t, err)
	})
}
