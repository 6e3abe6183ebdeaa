package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/setlist/internal/cmd/output"
	"github.com/agentstation/setlist/internal/cmd/table"
	"github.com/agentstation/setlist/pkg/errors"
)

type row struct {
	Name     string `json:"name"`
	Playlist string `json:"playlist_id,omitempty"`
	Secret   string `json:"-"`
	hidden   string
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"table", "JSON", "yaml", ""} {
		_, err := output.ParseFormat(in)
		assert.NoError(t, err, in)
	}

	_, err := output.ParseFormat("xml")
	assert.True(t, errors.IsValidationError(err))
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, output.FormatYAML, output.DetectFormat("YAML"))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatJSON).Format(&buf, row{Name: "a", Secret: "s"}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, map[string]any{"name": "a"}, decoded)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatYAML).Format(&buf, map[string]any{"tracks": []string{"a", "b"}}))
	assert.Equal(t, "tracks:\n- a\n- b\n", buf.String())
}

func TestTableFormatter(t *testing.T) {
	t.Run("table data", func(t *testing.T) {
		var buf bytes.Buffer
		data := table.Data{
			Headers:         []string{"Document", "Status"},
			Rows:            [][]string{{"wedding.md", "updated"}},
			ColumnAlignment: []table.Align{table.AlignLeft, table.AlignRight},
		}
		require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, data))
		assert.Contains(t, buf.String(), "wedding.md")
		assert.Contains(t, buf.String(), "updated")
	})

	t.Run("struct slice", func(t *testing.T) {
		var buf bytes.Buffer
		rows := []*row{{Name: "first", Playlist: "abc", Secret: "s", hidden: "h"}}
		require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, rows))
		out := buf.String()
		assert.Contains(t, out, "first")
		assert.Contains(t, out, "abc")
		assert.NotContains(t, strings.ToLower(out), "secret")
		assert.NotContains(t, strings.ToLower(out), "hidden")
	})

	t.Run("non tabular falls back to json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, 42))
		assert.Equal(t, "42\n", buf.String())
	})
}

func TestWrite(t *testing.T) {
	view := table.Data{Headers: []string{"Name"}, Rows: [][]string{{"from-view"}}}
	data := []row{{Name: "from-data"}}

	var tbl, js bytes.Buffer
	require.NoError(t, output.Write(&tbl, output.FormatTable, data, view))
	require.NoError(t, output.Write(&js, output.FormatJSON, data, view))

	assert.Contains(t, tbl.String(), "from-view")
	assert.Contains(t, js.String(), "from-data")
}

func TestResolve(t *testing.T) {
	format, err := output.Resolve("JSON")
	require.NoError(t, err)
	assert.Equal(t, output.FormatJSON, format)

	_, err = output.Resolve("csv")
	assert.True(t, errors.IsValidationError(err))

	format, err = output.Resolve("")
	require.NoError(t, err)
	assert.Contains(t, []output.Format{output.FormatTable, output.FormatJSON}, format)
}
