// Package suggest asks a generative model for songs that fit a playlist.
// The replies are turned into suggestion lines that go through the normal
// reconciliation, so they are deduplicated and enriched like any other.
package suggest

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/agentstation/setlist/pkg/constants"
	"github.com/agentstation/setlist/pkg/errors"
	"github.com/agentstation/setlist/pkg/logging"
	"github.com/agentstation/setlist/pkg/tracks"
)

// Generator produces a text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Request describes what to suggest songs for.
type Request struct {
	Title    string   // playlist title
	Existing []string // display texts already in the playlist
	Prompt   string   // what the user asked for
}

// Suggestion is a single suggested song.
type Suggestion struct {
	Title  string `json:"title" yaml:"title"`
	Artist string `json:"artist" yaml:"artist"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Line renders the suggestion as a tracked entry text: `"Title" - Artist`.
func (s Suggestion) Line() string {
	return tracks.Item{Title: s.Title, Contributors: []string{s.Artist}}.DisplayText()
}

// Response is the parsed model reply.
type Response struct {
	Suggestions []Suggestion `json:"suggestions" yaml:"suggestions"`
	Message     string       `json:"message,omitempty" yaml:"message,omitempty"`
}

// Lines returns the suggestion lines in reply order.
func (r Response) Lines() []string {
	lines := make([]string, 0, len(r.Suggestions))
	for _, s := range r.Suggestions {
		lines = append(lines, s.Line())
	}
	return lines
}

// Suggester builds prompts and interprets replies.
type Suggester struct {
	gen Generator
}

// New creates a Suggester backed by gen.
func New(gen Generator) *Suggester {
	return &Suggester{gen: gen}
}

// Suggest asks the model for songs. A reply that cannot be parsed yields an
// empty response, not an error; failures to reach the model are errors.
func (s *Suggester) Suggest(ctx context.Context, req Request) (*Response, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, errors.NewValidationError("prompt", req.Prompt, "cannot be empty")
	}

	logger := logging.FromContext(ctx)
	logger.Debug().
		Str("title", req.Title).
		Int("existing", len(req.Existing)).
		Msg("Requesting suggestions")

	genCtx, cancel := context.WithTimeout(ctx, constants.SuggestTimeout)
	defer cancel()
	text, err := s.gen.Generate(genCtx, BuildPrompt(req))
	if err != nil {
		return nil, err
	}

	resp, err := ParseResponse(text)
	if err != nil {
		logger.Warn().Err(err).Str("reply", text).Msg("Could not parse suggestions")
		return &Response{}, nil
	}
	return resp, nil
}

// BuildPrompt renders the instructions sent to the model. At most
// constants.SuggestContextTracks existing songs are listed.
func BuildPrompt(req Request) string {
	existing := req.Existing
	if len(existing) > constants.SuggestContextTracks {
		existing = existing[:constants.SuggestContextTracks]
	}
	title := req.Title
	if title == "" {
		title = "Untitled"
	}

	var b strings.Builder
	b.WriteString("You are a music DJ helping curate a playlist. Suggest 5-10 songs that fit the playlist and the user request.\n\n")
	b.WriteString("Playlist: " + title + "\n\n")
	b.WriteString("Existing songs (do NOT suggest these):\n")
	if len(existing) == 0 {
		b.WriteString("No existing songs\n")
	}
	for _, e := range existing {
		b.WriteString("- " + e + "\n")
	}
	b.WriteString("\nUser request: " + req.Prompt + "\n\n")
	b.WriteString(`Respond ONLY with a JSON object in this exact format (no markdown, no extra text):
{
  "suggestions": [
    {"title": "Song Title", "artist": "Artist Name", "reason": "Why this fits"}
  ],
  "message": "A brief response to the user about the suggestions"
}
`)
	return b.String()
}

var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

// ParseResponse extracts the outermost JSON object from a model reply.
// Suggestions without a title or artist are dropped.
func ParseResponse(text string) (*Response, error) {
	raw := jsonObject.FindString(text)
	if raw == "" {
		return nil, errors.NewParseError("json", "", "no JSON object in reply", nil)
	}

	var parsed struct {
		Suggestions *[]Suggestion `json:"suggestions"`
		Message     string        `json:"message"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	if parsed.Suggestions == nil {
		return nil, errors.NewParseError("json", "", "reply has no suggestions array", nil)
	}

	resp := &Response{Message: parsed.Message}
	for _, s := range *parsed.Suggestions {
		s.Title = strings.TrimSpace(s.Title)
		s.Artist = strings.TrimSpace(s.Artist)
		if s.Title == "" || s.Artist == "" {
			continue
		}
		resp.Suggestions = append(resp.Suggestions, s)
	}
	return resp, nil
}
