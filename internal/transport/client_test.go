package transport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/setlist/internal/transport"
	"github.com/agentstation/setlist/pkg/errors"
)

func TestGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"name":"setlist"}`))
		case "/busy":
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`slow down`))
		default:
			_, _ = w.Write([]byte(`not json`))
		}
	}))
	defer server.Close()

	client := transport.New("test", server.Client())
	assert.Equal(t, "test", client.Service())

	t.Run("decodes body", func(t *testing.T) {
		var out struct {
			Name string `json:"name"`
		}
		require.NoError(t, client.GetJSON(context.Background(), server.URL+"/ok", &out))
		assert.Equal(t, "setlist", out.Name)
	})

	t.Run("non 200 is an API error", func(t *testing.T) {
		var out map[string]any
		err := client.GetJSON(context.Background(), server.URL+"/busy", &out)
		require.Error(t, err)

		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
		assert.Equal(t, "slow down", apiErr.Message)
		assert.Equal(t, "/busy", apiErr.Endpoint)
		assert.True(t, errors.IsRateLimited(err))
	})

	t.Run("invalid json is a parse error", func(t *testing.T) {
		var out map[string]any
		err := client.GetJSON(context.Background(), server.URL+"/garbage", &out)

		var parseErr *errors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("connection failure", func(t *testing.T) {
		var out map[string]any
		err := transport.New("test", nil).GetJSON(context.Background(), "http://127.0.0.1:0/", &out)

		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Zero(t, apiErr.StatusCode)
	})
}
