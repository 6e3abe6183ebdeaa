// Package tracks defines the value types shared by the parser, the
// reconciliation engine and the Spotify client: canonical playlist items
// and the entries tracked in a playlist document.
package tracks

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Item is an entry of a canonical playlist as fetched from the remote service.
type Item struct {
	Title        string   `json:"title" yaml:"title"`
	Contributors []string `json:"contributors" yaml:"contributors"`
	Link         string   `json:"link,omitempty" yaml:"link,omitempty"` // empty when absent
}

// DisplayText renders the item as `"Title" - Contributor1, Contributor2`.
func (i Item) DisplayText() string {
	return `"` + i.Title + `" - ` + strings.Join(i.Contributors, ", ")
}

// Key returns the normalized display text used for membership checks.
func (i Item) Key() string {
	return Key(i.DisplayText())
}

// Line renders the item as a document list line (without the item marker).
func (i Item) Line() string {
	return FormatLine(i.DisplayText(), i.Link)
}

// Entry is a line parsed from one of the tracked sections of a document.
type Entry struct {
	Text string `json:"text" yaml:"text"`
	Link string `json:"link,omitempty" yaml:"link,omitempty"` // empty when absent
}

// HasLink reports whether the entry carries a link.
func (e Entry) HasLink() bool {
	return e.Link != ""
}

// Key returns the normalized display text used for membership checks.
func (e Entry) Key() string {
	return Key(e.Text)
}

// Line renders the entry as a document list line (without the item marker).
func (e Entry) Line() string {
	return FormatLine(e.Text, e.Link)
}

// Key normalizes a display text by lowercasing it with the language
// independent Unicode mappings. Letters with no one-to-one lowercase form,
// such as ß, are kept as they are.
// A Caser is stateful, so each call gets its own.
func Key(text string) string {
	return cases.Lower(language.Und).String(text)
}

// FormatLine renders `[text](link)` when a link is known and bare text otherwise.
func FormatLine(text, link string) string {
	if link == "" {
		return text
	}
	return "[" + text + "](" + link + ")"
}
