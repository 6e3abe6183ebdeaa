// Package document parses and rebuilds playlist documents: markdown files
// with an optional YAML front matter block, a mirror section listing the
// canonical playlist and an optional section of suggested additions.
//
// Everything outside the two tracked sections is user territory and is
// reproduced verbatim by Rebuild.
package document

import (
	"strings"

	"github.com/agentstation/setlist/pkg/constants"
)

// Sections holds the literals that delimit tracked sections. They must match
// exactly for a document to round-trip.
type Sections struct {
	Mirror     string // header of the section mirroring the canonical playlist
	Suggestion string // header of the suggested additions section
	Prefix     string // prefix of any section header
	Marker     string // unchecked list item marker, without the trailing space
}

// DefaultSections returns the section literals used by setlist documents.
func DefaultSections() Sections {
	return Sections{
		Mirror:     constants.MirrorHeader,
		Suggestion: constants.SuggestionHeader,
		Prefix:     constants.SectionPrefix,
		Marker:     constants.ItemMarker,
	}
}

func (s Sections) isMirror(trimmed string) bool {
	return strings.HasPrefix(trimmed, s.Mirror)
}

func (s Sections) isSuggestion(trimmed string) bool {
	return strings.HasPrefix(trimmed, s.Suggestion)
}

func (s Sections) isHeader(trimmed string) bool {
	return strings.HasPrefix(trimmed, s.Prefix)
}

// item renders a list line for a tracked entry.
func (s Sections) item(line string) string {
	return s.Marker + " " + line
}
