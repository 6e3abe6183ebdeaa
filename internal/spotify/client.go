// Package spotify is a minimal Spotify Web API client: it reads playlist
// tracks and searches tracks using the client credentials flow.
package spotify

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/agentstation/setlist/internal/transport"
	"github.com/agentstation/setlist/pkg/constants"
	"github.com/agentstation/setlist/pkg/errors"
	"github.com/agentstation/setlist/pkg/logging"
	"github.com/agentstation/setlist/pkg/tracks"
)

const serviceName = "spotify"

// Config configures a Client.
type Config struct {
	ClientID     string
	ClientSecret string

	// APIURL and TokenURL default to the public Spotify endpoints.
	APIURL   string
	TokenURL string

	// HTTPClient is the base client used for token and API requests.
	HTTPClient *http.Client
}

// Client talks to the Spotify Web API.
type Client struct {
	transport *transport.Client
	apiURL    string
}

// New creates a Client. Both credentials are required.
func New(cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.NewConfigError(serviceName,
			"SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET must be set", errors.ErrAPIKeyRequired)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = constants.SpotifyAPIURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = constants.SpotifyTokenURL
	}

	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: transport.DefaultHTTPTimeout}
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	// The token source keeps this context for every refresh.
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	httpClient := cc.Client(tokenCtx)
	httpClient.Timeout = base.Timeout

	return &Client{
		transport: transport.New(serviceName, httpClient),
		apiURL:    strings.TrimRight(cfg.APIURL, "/"),
	}, nil
}

// FetchCollection returns the tracks of a playlist in playlist order.
// Entries without a track object (local files, removed tracks) are skipped.
func (c *Client) FetchCollection(ctx context.Context, id string) ([]tracks.Item, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.NewFetchError(id, errors.NewValidationError("playlist_id", id, "cannot be empty"))
	}

	logger := logging.FromContext(ctx)
	next := c.apiURL + "/playlists/" + url.PathEscape(id) + "/tracks?" + url.Values{
		"limit":  {strconv.Itoa(constants.PlaylistPageSize)},
		"offset": {"0"},
	}.Encode()

	var items []tracks.Item
	for pages := 0; next != ""; pages++ {
		var page playlistPage
		if err := c.transport.GetJSON(ctx, next, &page); err != nil {
			if errors.IsNotFound(err) {
				return nil, errors.NewFetchError(id, errors.NewNotFoundError("playlist", id))
			}
			return nil, errors.NewFetchError(id, classify(err))
		}

		for _, entry := range page.Items {
			if entry.Track == nil {
				continue
			}
			items = append(items, entry.Track.item())
		}

		logger.Debug().
			Str("playlist_id", id).
			Int("page", pages).
			Int("items", len(page.Items)).
			Msg("Fetched playlist page")

		next = ""
		if page.Next != nil {
			next = *page.Next
		}
	}

	return items, nil
}

// SearchLink returns the link of the best matching track for text, or ""
// when the search has no result. Double quotes are removed from the query.
func (c *Client) SearchLink(ctx context.Context, text string) (string, error) {
	query := strings.TrimSpace(strings.ReplaceAll(text, `"`, ""))
	if query == "" {
		return "", nil
	}

	u := c.apiURL + "/search?" + url.Values{
		"q":     {query},
		"type":  {"track"},
		"limit": {strconv.Itoa(constants.SearchResultLimit)},
	}.Encode()

	var result searchResult
	if err := c.transport.GetJSON(ctx, u, &result); err != nil {
		return "", errors.NewSearchError(text, classify(err))
	}

	for _, track := range result.Tracks.Items {
		if link := track.ExternalURLs.Spotify; link != "" {
			return link, nil
		}
	}
	return "", nil
}

// classify turns token endpoint failures into authentication errors.
func classify(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		return &errors.AuthenticationError{
			Service: serviceName,
			Method:  "client_credentials",
			Message: "token request rejected (status " + strconv.Itoa(status) + ")",
			Err:     err,
		}
	}
	return err
}
