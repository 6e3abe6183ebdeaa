// Package transport provides the JSON-over-HTTP plumbing shared by the
// remote service clients.
package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/agentstation/setlist/pkg/constants"
	"github.com/agentstation/setlist/pkg/errors"
	"github.com/agentstation/setlist/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client performs JSON requests against one remote service.
type Client struct {
	http    *http.Client
	service string
}

// New creates a transport client for service. A nil httpClient gets a
// plain client with DefaultHTTPTimeout.
func New(service string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &Client{http: httpClient, service: service}
}

// Service returns the name used in errors raised by this client.
func (c *Client) Service() string {
	return c.service
}

// Do performs an HTTP request with the common headers set.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapParse("url", "", err)
	}
	return c.Do(req)
}

// GetJSON performs a GET request and decodes the response into target.
func (c *Client) GetJSON(ctx context.Context, url string, target any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return &errors.APIError{
			Service:  c.service,
			Endpoint: url,
			Message:  err.Error(),
			Err:      err,
		}
	}
	return c.DecodeResponse(ctx, resp, target)
}

// DecodeResponse decodes a JSON response into target. Any status other
// than 200 becomes an APIError carrying the response body.
func (c *Client) DecodeResponse(ctx context.Context, resp *http.Response, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger := logging.FromContext(ctx)
			logger.Warn().Err(err).Str("service", c.service).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		endpoint := ""
		if resp.Request != nil && resp.Request.URL != nil {
			endpoint = resp.Request.URL.Path
		}
		apiErr := errors.NewAPIError(c.service, resp.StatusCode, string(body))
		apiErr.Endpoint = endpoint
		return apiErr
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}
	return nil
}
