package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Off disables the primary core entirely. Extra cores keep their own level.
const Off = zapcore.FatalLevel + 1

// Config holds logger configuration
type Config struct {
	Level      string // debug, info, warn, error, off
	Format     string // json, console
	Output     string // stdout, stderr, or file path
	TimeFormat string
}

// DefaultConfig returns a configuration for interactive console use.
// Logs go to stderr so command output on stdout stays machine readable.
func DefaultConfig() *Config {
	return &Config{
		Level:      "warn",
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "15:04:05",
	}
}

// New builds the console logger. Extra cores (the OpenTelemetry bridge) are
// teed after the primary one. Caller annotations are only added at debug
// level so everyday warnings stay one short line on the terminal.
func New(cfg *Config, extra ...zapcore.Core) (*zap.Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	level := ParseLevel(cfg.Level)

	sink, err := openSink(cfg.Output)
	if err != nil {
		return nil, err
	}

	cores := make([]zapcore.Core, 0, len(extra)+1)
	if level != Off {
		cores = append(cores, zapcore.NewCore(newEncoder(cfg), sink, level))
	}
	cores = append(cores, extra...)

	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if level == zapcore.DebugLevel {
		opts = append(opts, zap.AddCaller())
	}

	switch len(cores) {
	case 0:
		return zap.NewNop(), nil
	case 1:
		return zap.New(cores[0], opts...), nil
	default:
		return zap.New(zapcore.NewTee(cores...), opts...), nil
	}
}

// ParseLevel converts a level name to a zapcore.Level. Unknown names fall
// back to warn, the console default.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "off", "none", "silent":
		return Off
	default:
		return zapcore.WarnLevel
	}
}

func newEncoder(cfg *Config) zapcore.Encoder {
	layout := cfg.TimeFormat
	if cfg.Format == "json" {
		// machine readers want full timestamps regardless of the terminal layout
		layout = "2006-01-02T15:04:05.000Z07:00"
	} else if layout == "" {
		layout = DefaultConfig().TimeFormat
	}

	ec := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout(layout),
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if cfg.Format == "json" {
		return zapcore.NewJSONEncoder(ec)
	}

	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	ec.ConsoleSeparator = " "
	return zapcore.NewConsoleEncoder(ec)
}

func openSink(output string) (zapcore.WriteSyncer, error) {
	switch strings.ToLower(output) {
	case "stdout":
		return zapcore.Lock(os.Stdout), nil
	case "stderr", "":
		return zapcore.Lock(os.Stderr), nil
	}
	file, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return zapcore.AddSync(file), nil
}

// Sync flushes buffered entries. Terminals return EINVAL for fsync on
// stdout/stderr, so the error is dropped.
func Sync(logger *zap.Logger) {
	_ = logger.Sync()
}
