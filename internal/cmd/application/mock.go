// Package application provides a mock Application for command tests.
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/setlist/cmd/application"
	"github.com/agentstation/setlist/internal/suggest"
	"github.com/agentstation/setlist/pkg/errors"
)

var _ application.Application = (*Mock)(nil)

// Mock implements application.Application with overridable functions.
// A nil function field yields a zero value, a no-op logger or a ConfigError.
type Mock struct {
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	PlaylistsDirFunc func() string
	SpotifyFunc      func() (application.Spotify, error)
	SuggesterFunc    func(ctx context.Context) (*suggest.Suggester, error)
	VersionFunc      func() string
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// PlaylistsDir returns the playlists directory using the mock function or "Playlists".
func (m *Mock) PlaylistsDir() string {
	if m.PlaylistsDirFunc != nil {
		return m.PlaylistsDirFunc()
	}
	return "Playlists"
}

// Spotify returns the client from the mock function or a ConfigError.
func (m *Mock) Spotify() (application.Spotify, error) {
	if m.SpotifyFunc != nil {
		return m.SpotifyFunc()
	}
	return nil, errors.NewConfigError("spotify", "not configured", errors.ErrAPIKeyRequired)
}

// Suggester returns the suggester from the mock function or a ConfigError.
func (m *Mock) Suggester(ctx context.Context) (*suggest.Suggester, error) {
	if m.SuggesterFunc != nil {
		return m.SuggesterFunc(ctx)
	}
	return nil, errors.NewConfigError("gemini", "not configured", errors.ErrAPIKeyRequired)
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }
