package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.Equal(t, "15:04:05", cfg.TimeFormat)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "nil config falls back to defaults", cfg: nil},
		{name: "json to stdout", cfg: &Config{Level: "info", Format: "json", Output: "stdout"}},
		{name: "debug level without time format", cfg: &Config{Level: "debug", Format: "console"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")
	logger, err := New(&Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Info("branches loaded", zap.Int("count", 2))
	Sync(logger)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"branches loaded"`)
	assert.Contains(t, string(data), `"count":2`)
	assert.NotContains(t, string(data), `"caller"`)
}

func TestNew_UnwritableFile(t *testing.T) {
	_, err := New(&Config{Level: "info", Output: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open log file")
}

func TestNew_TeesExtraCores(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	logger, err := New(&Config{Level: "error", Format: "json", Output: filepath.Join(t.TempDir(), "x.log")}, core)
	require.NoError(t, err)

	logger.Info("sent to the extra core only")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "sent to the extra core only", logs.All()[0].Message)
}

func TestNew_OffKeepsExtraCores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "off.log")
	core, logs := observer.New(zapcore.WarnLevel)

	logger, err := New(&Config{Level: "off", Format: "json", Output: path}, core)
	require.NoError(t, err)

	logger.Warn("exported but not printed")
	Sync(logger)

	assert.Equal(t, 1, logs.Len())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{" info ", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"off", Off},
		{"silent", Off},
		{"unknown", zapcore.WarnLevel},
		{"", zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.level))
		})
	}
}
