package app

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/agentstation/setlist/pkg/errors"
)

// TestExitCode verifies the exit status chosen for each error kind.
func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"generic", fmt.Errorf("boom"), ExitFailure},
		{"validation", errors.NewValidationError("format", "xml", "unsupported output format"), ExitUsage},
		{"config", errors.NewConfigError("spotify", "SPOTIFY_CLIENT_ID must be set", errors.ErrAPIKeyRequired), ExitConfig},
		{"authentication", &errors.AuthenticationError{Service: "spotify", Method: "client_credentials"}, ExitConfig},
		{"wrapped config", fmt.Errorf("sync: %w", errors.NewConfigError("config", "bad file", nil)), ExitConfig},
		{"fetch", errors.NewFetchError("abc", errors.NewNotFoundError("playlist", "abc")), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// TestApp_ExecuteExitCodes runs commands that fail before any document is touched.
func TestApp_ExecuteExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unknown format", []string{"sync", "-o", "xml", "--dir", "unused"}, ExitUsage},
		{"missing credentials", []string{"sync", "--dir", "unused", "--log-level", "error"}, ExitConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)

			app, err := New("dev", "", "", "")
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}

			var out bytes.Buffer
			cmd := app.createRootCommand()
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tt.args)
			err = cmd.ExecuteContext(context.Background())
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := ExitCode(err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", err, got, tt.want)
			}
		})
	}
}
