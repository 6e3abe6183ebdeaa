// Package application provides the application interface for setlist commands.
//
// Commands accept this interface rather than the concrete App type, so they
// can be tested with application.Mock from internal/cmd/application.
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/setlist/internal/suggest"
	"github.com/agentstation/setlist/pkg/reconcile"
)

// Spotify is the remote playlist service used by sync and suggest.
type Spotify interface {
	reconcile.Fetcher
	reconcile.LinkSearcher
}

// Application provides what commands need from the application.
type Application interface {
	// Logger returns the configured logger.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format (table, json, yaml).
	OutputFormat() string

	// PlaylistsDir returns the directory holding playlist documents.
	PlaylistsDir() string

	// Spotify returns the Spotify client, or a ConfigError when credentials are missing.
	Spotify() (Spotify, error)

	// Suggester returns the AI suggester, or a ConfigError when no API key is set.
	Suggester(ctx context.Context) (*suggest.Suggester, error)

	// Version information.
	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
