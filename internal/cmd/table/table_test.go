package table_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/setlist/internal/cmd/emoji"
	"github.com/agentstation/setlist/internal/cmd/table"
	"github.com/agentstation/setlist/internal/sync"
	"github.com/agentstation/setlist/pkg/tracks"
)

func TestSyncResultToTableData(t *testing.T) {
	result := &sync.Result{Documents: []*sync.DocumentResult{
		{Path: "Playlists/wedding.md", PlaylistID: "abc", Status: sync.StatusUpdated, Tracks: 10, Suggestions: 3, Enriched: 1, Dropped: 2},
		{Path: "Playlists/todo.md", Status: sync.StatusSkipped, Message: "no valid spotify_id found"},
		{Path: "Playlists/gone.md", PlaylistID: "gone", Status: sync.StatusFailed, Error: errors.New("boom"), Message: "boom"},
		{Path: "Playlists/busy.md", PlaylistID: "busy", Status: sync.StatusFailed, Message: "rate limited", Retryable: true},
	}}

	data := table.SyncResultToTableData(result)
	assert.Len(t, data.Headers, len(data.ColumnAlignment))
	assert.Equal(t, []string{emoji.Success, "wedding.md", "abc", "updated", "10", "3", "1", "2", ""}, data.Rows[0])
	assert.Equal(t, []string{emoji.Optional, "todo.md", "", "skipped", "", "", "", "", "no valid spotify_id found"}, data.Rows[1])
	assert.Equal(t, emoji.Error, data.Rows[2][0])
	assert.Equal(t, "boom", data.Rows[2][8])
	assert.Equal(t, "rate limited (retry later)", data.Rows[3][8])

	assert.Empty(t, table.SyncResultToTableData(nil).Rows)
}

func TestStatusSymbol(t *testing.T) {
	assert.Equal(t, emoji.Pending, table.StatusSymbol(sync.StatusWouldUpdate))
	assert.Equal(t, emoji.Optional, table.StatusSymbol(sync.StatusUnchanged))
	assert.Equal(t, emoji.Unknown, table.StatusSymbol(sync.Status("bogus")))
}

func TestEntriesToTableData(t *testing.T) {
	data := table.EntriesToTableData(
		[]tracks.Entry{{Text: `"A" - X`, Link: "https://x/a"}},
		[]tracks.Entry{{Text: `"B" - Y`}, {Text: `"C" - Z`}},
	)

	assert.Equal(t, [][]string{
		{"song list", "1", `"A" - X`, "https://x/a"},
		{"suggested", "1", `"B" - Y`, ""},
		{"suggested", "2", `"C" - Z`, ""},
	}, data.Rows)
}
