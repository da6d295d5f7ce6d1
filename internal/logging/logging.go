// Package logging provides structured logging with zap.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *zap.Logger

// Config holds logging configuration.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // console, json
	OutputPath string // stdout, stderr, or file path
}

// LevelFor returns the level used for a run: info when verbose, warn otherwise.
// Skips and write failures are logged at warn so they always show.
func LevelFor(verbose bool) string {
	if verbose {
		return "info"
	}
	return "warn"
}

// New builds a logger from cfg without touching the global one.
func New(cfg Config) (*zap.Logger, zap.AtomicLevel, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var config zap.Config
	if cfg.Format == "json" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		config.DisableCaller = true
		config.DisableStacktrace = true
	}

	atom := zap.NewAtomicLevelAt(level)
	config.Level = atom
	if cfg.OutputPath != "" {
		config.OutputPaths = []string{cfg.OutputPath}
	}

	logger, err := config.Build()
	if err != nil {
		return nil, atom, err
	}
	return logger, atom, nil
}

// Init initializes the global logger.
func Init(cfg Config) error {
	logger, _, err := New(cfg)
	if err != nil {
		return err
	}
	globalLogger = logger
	return nil
}

// InitDefault initializes with default console settings.
func InitDefault() {
	logger, _, err := New(Config{Level: "info", Format: "console", OutputPath: "stderr"})
	if err != nil {
		logger = zap.NewNop()
	}
	globalLogger = logger
}

// Sync flushes any buffered log entries.
func Sync() error {
	if globalLogger != nil {
		return globalLogger.Sync()
	}
	return nil
}

// L returns the global logger.
func L() *zap.Logger {
	if globalLogger == nil {
		InitDefault()
	}
	return globalLogger
}

// Field helpers for common fields.
func String(key, val string) zap.Field {
	return zap.String(key, val)
}

func Int(key string, val int) zap.Field {
	return zap.Int(key, val)
}

func Err(err error) zap.Field {
	return zap.Error(err)
}

// Dir tags an entry with the directory it concerns.
func Dir(path string) zap.Field {
	return zap.String("dir", path)
}

// File tags an entry with the file it concerns.
func File(path string) zap.Field {
	return zap.String("file", path)
}
