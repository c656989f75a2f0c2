// Package logger builds the zap loggers used by the service.
//
// Debug mode writes human readable lines to stdout. Any other mode writes JSON
// to a size-rotated file, falling back to stdout when the file cannot be opened.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// ModeDebug logs everything to stdout in console format.
	ModeDebug = "debug"
	// ModeRelease logs info and above as JSON to the rotated file.
	ModeRelease = "release"

	defaultDir        = "logs"
	defaultFilename   = "ordertracker.log"
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 7
	defaultMaxAgeDays = 30
)

// Options configures the rotating log file. Zero fields take the package defaults.
type Options struct {
	Dir        string
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New returns a logger for mode. It never fails: a file that cannot be opened
// falls back to stdout with a note on stderr.
//
// Example:
//
//	log := logger.New(cfg.LogMode, cfg.LoggerOptions())
//	defer func() { _ = log.Sync() }()
func New(mode string, options Options) *zap.Logger {
	encoderConfig := encoderConfig()

	if IsDebug(mode) {
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			zap.NewAtomicLevelAt(zap.DebugLevel),
		)
		return zap.New(core, zap.AddCaller())
	}

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	writer, err := newRotatingWriter(options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: falling back to stdout: %v\n", err)
		writer = zapcore.AddSync(os.Stdout)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), writer, level)
	return zap.New(core, zap.AddCaller())
}

// IsDebug matches ModeDebug case-insensitively.
func IsDebug(mode string) bool {
	return strings.EqualFold(strings.TrimSpace(mode), ModeDebug)
}

// encoderConfig uses ISO8601 times and short callers in both modes.
func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "message"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.MillisDurationEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return cfg
}

func newRotatingWriter(options Options) (zapcore.WriteSyncer, error) {
	path, err := resolveFilePath(options)
	if err != nil {
		return nil, err
	}

	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    positiveOr(options.MaxSizeMB, defaultMaxSizeMB),
		MaxBackups: positiveOr(options.MaxBackups, defaultMaxBackups),
		MaxAge:     positiveOr(options.MaxAgeDays, defaultMaxAgeDays),
		Compress:   options.Compress,
	}), nil
}

// resolveFilePath creates the log directory, defaulting to ./logs under the
// working directory.
func resolveFilePath(options Options) (string, error) {
	dir := strings.TrimSpace(options.Dir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		dir = filepath.Join(wd, defaultDir)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log directory %s: %w", dir, err)
	}

	filename := strings.TrimSpace(options.Filename)
	if filename == "" {
		filename = defaultFilename
	}
	return filepath.Join(dir, filepath.Base(filename)), nil
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
