// Package table converts setlist results into rows for table output.
package table

import (
	"path/filepath"
	"strconv"

	"github.com/agentstation/setlist/internal/cmd/emoji"
	"github.com/agentstation/setlist/internal/sync"
	"github.com/agentstation/setlist/pkg/tracks"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// StatusSymbol returns the symbol shown next to a document status.
func StatusSymbol(status sync.Status) string {
	switch status {
	case sync.StatusUpdated:
		return emoji.Success
	case sync.StatusWouldUpdate:
		return emoji.Pending
	case sync.StatusUnchanged, sync.StatusSkipped:
		return emoji.Optional
	case sync.StatusFailed:
		return emoji.Error
	default:
		return emoji.Unknown
	}
}

// SyncResultToTableData converts a sync result to table format, one row per document.
func SyncResultToTableData(result *sync.Result) Data {
	data := Data{
		Headers: []string{"", "Document", "Playlist", "Status", "Tracks", "Suggestions", "Enriched", "Dropped", "Message"},
		ColumnAlignment: []Align{
			AlignCenter, AlignLeft, AlignLeft, AlignLeft,
			AlignRight, AlignRight, AlignRight, AlignRight, AlignLeft,
		},
	}
	if result == nil {
		return data
	}

	for _, doc := range result.Documents {
		data.Rows = append(data.Rows, DocumentResultRow(doc))
	}
	return data
}

// DocumentResultRow converts a single document result to a table row.
func DocumentResultRow(doc *sync.DocumentResult) []string {
	counts := []string{"", "", "", ""}
	if doc.Status != sync.StatusFailed && doc.Status != sync.StatusSkipped {
		counts = []string{
			strconv.Itoa(doc.Tracks),
			strconv.Itoa(doc.Suggestions),
			strconv.Itoa(doc.Enriched),
			strconv.Itoa(doc.Dropped),
		}
	}

	row := []string{StatusSymbol(doc.Status), filepath.Base(doc.Path), doc.PlaylistID, doc.Status.String()}
	row = append(row, counts...)
	message := doc.Message
	if doc.Retryable {
		message += " (retry later)"
	}
	return append(row, message)
}

// EntriesToTableData converts the tracked entries of a document to table format.
func EntriesToTableData(mirror, suggestions []tracks.Entry) Data {
	data := Data{
		Headers:         []string{"Section", "#", "Entry", "Link"},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft, AlignLeft},
	}
	add := func(section string, entries []tracks.Entry) {
		for i, e := range entries {
			data.Rows = append(data.Rows, []string{section, strconv.Itoa(i + 1), e.Text, e.Link})
		}
	}
	add("song list", mirror)
	add("suggested", suggestions)
	return data
}
