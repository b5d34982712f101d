// Package logging configures structured logging for contactbook.
//
// Usage:
//
//	cleanup, err := logging.Setup(logging.Options{Level: "info"})  // colored, stderr
//	cleanup, err := logging.Setup(logging.Options{File: "cb.log"}) // JSON, rotated file
//
// The interactive menu owns the terminal, so the console handler defaults to
// warnings only; point File somewhere to keep a full log.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the log destination and verbosity.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string

	// File switches to JSON output in a size-rotated file.
	File      string
	MaxSizeMB int
	MaxFiles  int

	// Console overrides the console writer (default os.Stderr).
	Console io.Writer
}

// Setup installs the default slog logger and returns a function that releases
// the log file, if any.
func Setup(opts Options) (func() error, error) {
	level := ParseLevel(opts.Level)

	if opts.File == "" {
		w := opts.Console
		if w == nil {
			w = os.Stderr
		}
		slog.SetDefault(slog.New(
			tint.NewHandler(w, &tint.Options{
				Level:      level,
				TimeFormat: time.Kitchen,
				AddSource:  level == slog.LevelDebug,
			}),
		))
		return func() error { return nil }, nil
	}

	writer, err := newRotatingWriter(opts)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(
		slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level:     level,
			AddSource: level == slog.LevelDebug,
		}),
	))
	return writer.Close, nil
}

func newRotatingWriter(opts Options) (*lumberjack.Logger, error) {
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 10
	}
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = 5
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxFiles,
	}, nil
}

// ParseLevel maps a level name to a slog.Level, defaulting to INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
