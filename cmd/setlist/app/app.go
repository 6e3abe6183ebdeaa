// Package app provides the application context and dependency management
// for the setlist CLI: configuration, logging and the lazily created
// Spotify and Gemini clients.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/setlist/cmd/application"
	"github.com/agentstation/setlist/internal/spotify"
	"github.com/agentstation/setlist/internal/suggest"
)

var _ application.Application = (*App)(nil)

// App represents the setlist application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Spotify client (lazy-initialized, singleton)
	mu      sync.Mutex
	spotify application.Spotify
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the requested output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// PlaylistsDir returns the directory holding playlist documents.
func (a *App) PlaylistsDir() string {
	return a.config.PlaylistsDir
}

// Spotify returns the Spotify client, creating it on first use.
func (a *App) Spotify() (application.Spotify, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.spotify != nil {
		return a.spotify, nil
	}

	client, err := spotify.New(spotify.Config{
		ClientID:     a.config.SpotifyClientID,
		ClientSecret: a.config.SpotifyClientSecret,
	})
	if err != nil {
		return nil, err
	}
	a.spotify = client
	return client, nil
}

// Suggester returns a suggester backed by Gemini.
func (a *App) Suggester(ctx context.Context) (*suggest.Suggester, error) {
	gen, err := suggest.NewGemini(ctx, suggest.GeminiConfig{
		APIKey: a.config.GeminiAPIKey,
		Model:  a.config.GeminiModel,
	})
	if err != nil {
		return nil, err
	}
	return suggest.New(gen), nil
}

// Shutdown releases application resources.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	a.spotify = nil
	a.mu.Unlock()
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithSpotify sets a custom Spotify client (useful for testing).
func WithSpotify(client application.Spotify) Option {
	return func(a *App) error {
		a.spotify = client
		return nil
	}
}
