package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/setlist/pkg/document"
	"github.com/agentstation/setlist/pkg/tracks"
)

const sampleBody = `# Wedding Reception

Notes about the vibe.

## Song List
- [ ] ["Song A" - Artist A](https://open.spotify.com/track/a)
- [ ] "Song B" - Artist B

stray comment inside the section
- [x] "Already Played" - Someone

## Suggested Additions
- [ ] "Song C" - Artist C
- [ ] ["Song D" - Artist D](https://open.spotify.com/track/d)

## Notes
- [ ] "Not Tracked" - Nobody
`

func TestParse(t *testing.T) {
	mirror, suggestions := document.Parse(sampleBody)

	assert.Equal(t, []string{
		`["Song A" - Artist A](https://open.spotify.com/track/a)`,
		`"Song B" - Artist B`,
	}, mirror)
	assert.Equal(t, []string{
		`"Song C" - Artist C`,
		`["Song D" - Artist D](https://open.spotify.com/track/d)`,
	}, suggestions)
}

func TestParseEdgeCases(t *testing.T) {
	tests := []struct {
		name            string
		text            string
		wantMirror      []string
		wantSuggestions []string
	}{
		{
			name: "empty document",
			text: "",
		},
		{
			name: "items outside tracked sections are ignored",
			text: "- [ ] loose item\n## Other\n- [ ] other item",
		},
		{
			name:       "indented items and headers are trimmed",
			text:       "  ## Song List\n\t- [ ]   Padded   \n",
			wantMirror: []string{"Padded"},
		},
		{
			name:            "suggestion section before mirror section",
			text:            "## Suggested Additions\n- [ ] S\n## Song List\n- [ ] M",
			wantMirror:      []string{"M"},
			wantSuggestions: []string{"S"},
		},
		{
			name: "bare marker without content is skipped",
			text: "## Song List\n- [ ]\n- [ ]   ",
		},
		{
			name:            "content directly after marker",
			text:            "## Song List\n- [ ]\"Tight\" - Band\n- [ ]\tTabbed\n## Suggested Additions\n- [ ][Linked](https://x/1)",
			wantMirror:      []string{`"Tight" - Band`, "Tabbed"},
			wantSuggestions: []string{"[Linked](https://x/1)"},
		},
		{
			name:       "generic header ends tracked section",
			text:       "## Song List\n- [ ] M\n## Notes\n- [ ] N",
			wantMirror: []string{"M"},
		},
		{
			name:       "crlf line endings",
			text:       "## Song List\r\n- [ ] M\r\n",
			wantMirror: []string{"M"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mirror, suggestions := document.Parse(tt.text)
			assert.Equal(t, tt.wantMirror, mirror)
			assert.Equal(t, tt.wantSuggestions, suggestions)
		})
	}
}

func TestExtractTextAndLink(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantText string
		wantLink string
	}{
		{"plain text", `"Song" - Artist`, `"Song" - Artist`, ""},
		{"markdown link", `["Song" - Artist](https://example/1)`, `"Song" - Artist`, "https://example/1"},
		{"brackets inside text", `["Song [Live]" - Artist](https://example/2)`, `"Song [Live]" - Artist`, "https://example/2"},
		{"unterminated link", `["Song" - Artist](https://example/1`, `["Song" - Artist](https://example/1`, ""},
		{"link not at start", `see ["Song" - Artist](https://example/1)`, `see ["Song" - Artist](https://example/1)`, ""},
		{"empty text", `[](https://example/3)`, "", "https://example/3"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, link := document.ExtractTextAndLink(tt.raw)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantLink, link)
		})
	}
}

func TestParseEntries(t *testing.T) {
	entries := document.ParseEntries([]string{`"A" - X`, `["B" - Y](https://example/b)`})
	assert.Equal(t, []tracks.Entry{
		{Text: `"A" - X`},
		{Text: `"B" - Y`, Link: "https://example/b"},
	}, entries)
}

func TestCustomSections(t *testing.T) {
	s := document.Sections{
		Mirror:     "### Tracks",
		Suggestion: "### Ideas",
		Prefix:     "### ",
		Marker:     "* [ ]",
	}
	mirror, suggestions := s.Parse("### Tracks\n* [ ] A\n### Ideas\n* [ ] B\n### End\n* [ ] C")
	assert.Equal(t, []string{"A"}, mirror)
	assert.Equal(t, []string{"B"}, suggestions)

	out := s.Rebuild("### Tracks\n* [ ] A\n### End", []string{"A", "Z"}, []string{"B"})
	assert.Equal(t, "### Tracks\n* [ ] A\n* [ ] Z\n\n### Ideas\n* [ ] B\n\n### End", out)
}
