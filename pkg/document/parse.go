package document

import (
	"regexp"
	"strings"

	"github.com/agentstation/setlist/pkg/tracks"
)

// linkPattern matches a markdown link at the start of a raw item.
var linkPattern = regexp.MustCompile(`^\[(.*?)\]\((.*?)\)`)

type cursor int

const (
	cursorNone cursor = iota
	cursorMirror
	cursorSuggestion
)

// Parse extracts the raw mirror and suggestion items from a document body
// using the default section literals.
func Parse(text string) (mirror, suggestions []string) {
	return DefaultSections().Parse(text)
}

// Parse extracts the raw items of both tracked sections in document order.
// Inside a tracked section, lines that are not unchecked list items are
// skipped so blank lines and notes do not break parsing. Any line starting
// with the marker is an item, whatever follows it; a marker with nothing
// after it is skipped.
func (s Sections) Parse(text string) (mirror, suggestions []string) {
	state := cursorNone

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case s.isMirror(trimmed):
			state = cursorMirror
			continue
		case s.isSuggestion(trimmed):
			state = cursorSuggestion
			continue
		case s.isHeader(trimmed):
			state = cursorNone
			continue
		}

		if state == cursorNone || !strings.HasPrefix(trimmed, s.Marker) {
			continue
		}

		raw := strings.TrimSpace(trimmed[len(s.Marker):])
		if raw == "" {
			continue
		}
		if state == cursorMirror {
			mirror = append(mirror, raw)
		} else {
			suggestions = append(suggestions, raw)
		}
	}

	return mirror, suggestions
}

// ExtractTextAndLink splits a raw item of the form `[text](url)` into its
// text and link. Anything else, malformed links included, is returned as
// plain text with an empty link.
func ExtractTextAndLink(raw string) (text, link string) {
	m := linkPattern.FindStringSubmatch(raw)
	if m == nil {
		return raw, ""
	}
	return m[1], m[2]
}

// ParseEntry converts a raw item into a tracked entry.
func ParseEntry(raw string) tracks.Entry {
	text, link := ExtractTextAndLink(raw)
	return tracks.Entry{Text: text, Link: link}
}

// ParseEntries converts raw items into tracked entries, preserving order.
func ParseEntries(raws []string) []tracks.Entry {
	entries := make([]tracks.Entry, 0, len(raws))
	for _, raw := range raws {
		entries = append(entries, ParseEntry(raw))
	}
	return entries
}
