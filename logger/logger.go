// Package logger configures zerolog for the Scribble client and hands out
// component-scoped loggers. Interactive runs get a console writer on stderr
// so log lines stay out of any UI on stdout; headless runs can add a
// rotating JSON file via lumberjack.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls global log output.
type Config struct {
	Level      string // debug, info, warn, error
	Console    bool   // human-readable output on stderr
	FilePath   string // empty disables file logging
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DefaultConfig returns settings suitable for an interactive client run.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Console:    true,
		FilePath:   "",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 14,
	}
}

// Init installs the global zerolog logger. Call once at startup before any
// component loggers are created.
func Init(cfg Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var writers []io.Writer
	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
		})
	} else {
		writers = append(writers, os.Stderr)
	}
	if cfg.FilePath != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}

	var out io.Writer = writers[0]
	if len(writers) > 1 {
		out = io.MultiWriter(writers...)
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// New returns a logger tagged with a component name, e.g. "client",
// "transport", "session".
func New(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
