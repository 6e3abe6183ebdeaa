package document_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/setlist/pkg/document"
)

func TestRebuild(t *testing.T) {
	mirror := []string{`["Song A" - Artist A](https://open.spotify.com/track/a)`, `"Song E" - Artist E`}
	suggestions := []string{`"Song B" - Artist B`, `"Song C" - Artist C`}

	got := document.Rebuild(sampleBody, mirror, suggestions)

	want := `# Wedding Reception

Notes about the vibe.

## Song List
- [ ] ["Song A" - Artist A](https://open.spotify.com/track/a)
- [ ] "Song E" - Artist E

## Suggested Additions
- [ ] "Song B" - Artist B
- [ ] "Song C" - Artist C

## Notes
- [ ] "Not Tracked" - Nobody
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rebuild() mismatch (-want +got):\n%s", diff)
	}
}

func TestRebuildWithoutSuggestions(t *testing.T) {
	got := document.Rebuild("## Song List\n- [ ] old\n## Suggested Additions\n- [ ] gone\n## Notes\nkeep", []string{"new"}, nil)
	assert.Equal(t, "## Song List\n- [ ] new\n\n## Notes\nkeep", got)
}

func TestRebuildPreservesUnrelatedLines(t *testing.T) {
	original := "---not metadata---\n\n# Title\n  indented text  \n\n\n## Song List\n- [ ] x\n## Later\ntrailing   \n\n"
	got := document.Rebuild(original, []string{"x"}, []string{"y"})

	var outside []string
	for _, line := range strings.Split(original, "\n") {
		if line == "## Song List" || line == "- [ ] x" {
			continue
		}
		outside = append(outside, line)
	}

	// every untracked line survives, in the original relative order
	gotLines := strings.Split(got, "\n")
	idx := 0
	for _, line := range gotLines {
		if idx < len(outside) && line == outside[idx] {
			idx++
		}
	}
	assert.Equal(t, len(outside), idx, "untracked lines missing or reordered:\n%s", got)
}

func TestRebuildFallbackAppend(t *testing.T) {
	tests := []struct {
		name        string
		original    string
		mirror      []string
		suggestions []string
		want        string
	}{
		{
			name:     "empty document",
			original: "",
			mirror:   []string{"X"},
			want:     "\n## Song List\n- [ ] X\n",
		},
		{
			name:     "document without headers",
			original: "# Party\nsome notes\n",
			mirror:   []string{"X"},
			want:     "# Party\nsome notes\n\n## Song List\n- [ ] X\n",
		},
		{
			name:        "orphan suggestion header is kept as text and sections are appended",
			original:    "## Suggested Additions\n- [ ] S",
			mirror:      []string{"X"},
			suggestions: []string{"S"},
			want:        "## Suggested Additions\n- [ ] S\n## Song List\n- [ ] X\n\n## Suggested Additions\n- [ ] S\n",
		},
		{
			name:     "empty canonical list still produces the section",
			original: "intro",
			want:     "intro\n## Song List\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := document.Rebuild(tt.original, tt.mirror, tt.suggestions)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Rebuild() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRebuildIsIdempotent(t *testing.T) {
	mirror := []string{`"Song A" - Artist A`}
	suggestions := []string{`"Song B" - Artist B`}

	first := document.Rebuild(sampleBody, mirror, suggestions)
	second := document.Rebuild(first, mirror, suggestions)
	assert.Equal(t, first, second)

	m, s := document.Parse(first)
	assert.Equal(t, mirror, m)
	assert.Equal(t, suggestions, s)
}

func TestRebuildRepeatedMirrorHeader(t *testing.T) {
	got := document.Rebuild("## Song List\n- [ ] a\n## Song List\n- [ ] b\n## End", []string{"n"}, nil)
	assert.Equal(t, "## Song List\n- [ ] n\n\n## Song List\n- [ ] n\n\n## End", got)
}
