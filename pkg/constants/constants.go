// Package constants provides shared constants used throughout the setlist codebase.
// This includes timeouts, file permissions, document section literals and the
// default endpoints of the remote playlist service.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the Spotify API
	DefaultHTTPTimeout = 30 * time.Second

	// FetchTimeout bounds fetching a single playlist, all pages included
	FetchTimeout = 2 * time.Minute

	// SearchTimeout bounds a single link lookup
	SearchTimeout = 10 * time.Second

	// SuggestTimeout bounds a single AI suggestion request
	SuggestTimeout = 2 * time.Minute

	// WatchDebounce is how long a document must be quiet before it is re-synced in watch mode
	WatchDebounce = 500 * time.Millisecond
)

// FilePermissions is the default permission for created files (rw-r--r--)
const FilePermissions = 0644

// Limit constants define page sizes for the remote API
const (
	// PlaylistPageSize is the number of playlist items requested per page (Spotify maximum)
	PlaylistPageSize = 100

	// SearchResultLimit is the number of search results requested for link enrichment
	SearchResultLimit = 1

	// SuggestContextTracks is how many existing tracks are shown to the AI as context
	SuggestContextTracks = 20
)

// Document constants define the literals the parser and rebuilder match against.
// They must match exactly for documents to round-trip.
const (
	// MirrorHeader starts the section that mirrors the canonical playlist
	MirrorHeader = "## Song List"

	// SuggestionHeader starts the section of suggested additions
	SuggestionHeader = "## Suggested Additions"

	// SectionPrefix starts any other markdown section
	SectionPrefix = "## "

	// ItemMarker marks an unchecked list item
	ItemMarker = "- [ ]"

	// MetadataKey is the front matter field holding the playlist ID
	MetadataKey = "spotify_id"

	// PlaylistPlaceholder is the template value meaning "no playlist configured yet"
	PlaylistPlaceholder = "REPLACE_WITH_PLAYLIST_ID"

	// DocumentExt is the extension of playlist documents
	DocumentExt = ".md"
)

// Default values
const (
	// DefaultPlaylistsDir is the directory scanned for playlist documents
	DefaultPlaylistsDir = "Playlists"

	// DefaultGeminiModel is the model used for AI suggestions
	DefaultGeminiModel = "gemini-2.5-pro"
)

// Spotify endpoint constants
const (
	// SpotifyAPIURL is the base URL of the Spotify Web API
	SpotifyAPIURL = "https://api.spotify.com/v1"

	// SpotifyTokenURL is the client-credentials token endpoint
	SpotifyTokenURL = "https://accounts.spotify.com/api/token"
)
