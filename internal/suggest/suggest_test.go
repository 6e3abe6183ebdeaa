package suggest_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/setlist/internal/suggest"
	"github.com/agentstation/setlist/pkg/constants"
	pkgerrors "github.com/agentstation/setlist/pkg/errors"
)

type fakeGenerator struct {
	reply    string
	err      error
	prompt   string
	deadline time.Time
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	f.deadline, _ = ctx.Deadline()
	return f.reply, f.err
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    []suggest.Suggestion
		wantErr bool
	}{
		{
			name:  "plain json",
			reply: `{"suggestions":[{"title":"Shout","artist":"The Isley Brothers","reason":"classic"}],"message":"ok"}`,
			want:  []suggest.Suggestion{{Title: "Shout", Artist: "The Isley Brothers", Reason: "classic"}},
		},
		{
			name:  "fenced json with surrounding prose",
			reply: "Here you go:\n```json\n{\"suggestions\":[{\"title\":\"Valerie\",\"artist\":\"Amy Winehouse\"}]}\n```\nEnjoy!",
			want:  []suggest.Suggestion{{Title: "Valerie", Artist: "Amy Winehouse"}},
		},
		{
			name:  "incomplete entries are dropped",
			reply: `{"suggestions":[{"title":"","artist":"X"},{"title":"Y"},{"title":" Z ","artist":" W "}]}`,
			want:  []suggest.Suggestion{{Title: "Z", Artist: "W"}},
		},
		{
			name:  "empty suggestions",
			reply: `{"suggestions":[],"message":"nothing fits"}`,
		},
		{name: "no json", reply: "I cannot help with that", wantErr: true},
		{name: "broken json", reply: `{"suggestions":[{"title":}`, wantErr: true},
		{name: "missing suggestions array", reply: `{"message":"hi"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := suggest.ParseResponse(tt.reply)
			if tt.wantErr {
				require.Error(t, err)
				var parseErr *pkgerrors.ParseError
				assert.ErrorAs(t, err, &parseErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Suggestions)
		})
	}
}

func TestSuggest(t *testing.T) {
	gen := &fakeGenerator{reply: `{"suggestions":[{"title":"September","artist":"Earth, Wind & Fire"},{"title":"Shout","artist":"The Isley Brothers"}]}`}
	s := suggest.New(gen)

	resp, err := s.Suggest(context.Background(), suggest.Request{
		Title:    "Wedding Reception",
		Existing: []string{`"Dancing Queen" - ABBA`},
		Prompt:   "more disco",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		`"September" - Earth, Wind & Fire`,
		`"Shout" - The Isley Brothers`,
	}, resp.Lines())
	assert.Contains(t, gen.prompt, "Wedding Reception")
	assert.Contains(t, gen.prompt, `- "Dancing Queen" - ABBA`)
	assert.Contains(t, gen.prompt, "User request: more disco")
}

func TestSuggestMalformedReply(t *testing.T) {
	s := suggest.New(&fakeGenerator{reply: "sorry, no"})

	resp, err := s.Suggest(context.Background(), suggest.Request{Prompt: "anything"})
	require.NoError(t, err)
	assert.Empty(t, resp.Suggestions)
}

func TestSuggestErrors(t *testing.T) {
	t.Run("empty prompt", func(t *testing.T) {
		_, err := suggest.New(&fakeGenerator{}).Suggest(context.Background(), suggest.Request{Prompt: "  "})
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("generator failure", func(t *testing.T) {
		base := errors.New("boom")
		_, err := suggest.New(&fakeGenerator{err: base}).Suggest(context.Background(), suggest.Request{Prompt: "x"})
		assert.ErrorIs(t, err, base)
	})
}

func TestBuildPromptLimitsExisting(t *testing.T) {
	existing := make([]string, 30)
	for i := range existing {
		existing[i] = fmt.Sprintf("song-%02d", i)
	}

	prompt := suggest.BuildPrompt(suggest.Request{Existing: existing, Prompt: "x"})
	assert.Contains(t, prompt, "song-19")
	assert.NotContains(t, prompt, "song-20")
	assert.Contains(t, prompt, "Playlist: Untitled")

	empty := suggest.BuildPrompt(suggest.Request{Prompt: "x"})
	assert.Contains(t, empty, "No existing songs")
}

func TestSuggestDeadline(t *testing.T) {
	gen := &fakeGenerator{reply: `{"suggestions":[]}`}
	start := time.Now()

	_, err := suggest.New(gen).Suggest(context.Background(), suggest.Request{Prompt: "more disco"})
	require.NoError(t, err)
	require.False(t, gen.deadline.IsZero(), "generation must carry a deadline")
	assert.True(t, gen.deadline.After(start))
	assert.False(t, gen.deadline.After(time.Now().Add(constants.SuggestTimeout)))

	parent, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	parentDeadline, _ := parent.Deadline()
	_, err = suggest.New(gen).Suggest(parent, suggest.Request{Prompt: "more disco"})
	require.NoError(t, err)
	assert.Equal(t, parentDeadline, gen.deadline)
}
