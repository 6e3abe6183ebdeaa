package document

import "strings"

type mode int

const (
	modeCopy mode = iota
	modeSkipTracked
)

// Rebuild splices new tracked lists into a document body using the default
// section literals.
func Rebuild(original string, mirrorLines, suggestionLines []string) string {
	return DefaultSections().Rebuild(original, mirrorLines, suggestionLines)
}

// Rebuild replaces the tracked sections of original with mirrorLines and
// suggestionLines. The lists are inserted right after the mirror header; if
// the document has no mirror header both sections are appended at the end.
// All other lines are copied unchanged.
func (s Sections) Rebuild(original string, mirrorLines, suggestionLines []string) string {
	lines := strings.Split(original, "\n")
	out := make([]string, 0, len(lines)+len(mirrorLines)+len(suggestionLines)+4)
	state := modeCopy
	inserted := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if s.isMirror(trimmed) {
			out = append(out, line)
			out = s.appendTracked(out, mirrorLines, suggestionLines)
			state = modeSkipTracked
			inserted = true
			continue
		}

		if state == modeCopy {
			out = append(out, line)
			continue
		}

		// The suggestion header is regenerated, everything else in the
		// tracked block is dropped until the next unrelated section.
		if s.isHeader(trimmed) && !s.isSuggestion(trimmed) {
			state = modeCopy
			out = append(out, line)
		}
	}

	if !inserted {
		out = append(out, s.Mirror)
		out = s.appendTracked(out, mirrorLines, suggestionLines)
	}

	return strings.Join(out, "\n")
}

// appendTracked writes the mirror list, a blank line and, when there are
// suggestions, the suggestion section followed by a blank line.
func (s Sections) appendTracked(out, mirrorLines, suggestionLines []string) []string {
	for _, line := range mirrorLines {
		out = append(out, s.item(line))
	}
	out = append(out, "")

	if len(suggestionLines) > 0 {
		out = append(out, s.Suggestion)
		for _, line := range suggestionLines {
			out = append(out, s.item(line))
		}
		out = append(out, "")
	}
	return out
}
