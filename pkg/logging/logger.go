// Package logging provides structured logging for setlist using zerolog.
// Console output is used when stderr is a terminal and JSON otherwise.
//
// Loggers travel in the context so that every line written while syncing a
// document carries the document path and playlist ID:
//
//	ctx = logging.WithDocument(ctx, "Playlists/wedding.md")
//	ctx = logging.WithPlaylist(ctx, id)
//	logging.FromContext(ctx).Info().Int("tracks", n).Msg("Fetched playlist")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is used when no logger is attached to a context.
var defaultLogger = NewLoggerFromConfig(envConfig())

// envConfig builds the startup configuration from LOG_LEVEL, LOG_FORMAT and
// DEBUG, before any config file has been read.
func envConfig() *Config {
	cfg := DefaultConfig()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = level
	} else if os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	return cfg
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the default logger, zerolog's global logger included.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Debug starts a debug event on the default logger.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts an info event on the default logger.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a warning event on the default logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Err starts an event for err on the default logger: error level when err
// is non-nil, info otherwise.
func Err(err error) *zerolog.Event {
	return defaultLogger.Err(err)
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
