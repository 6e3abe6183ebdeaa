// Package inspect implements the inspect command.
package inspect

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/setlist/cmd/application"
	"github.com/agentstation/setlist/internal/cmd/output"
	"github.com/agentstation/setlist/internal/cmd/table"
	"github.com/agentstation/setlist/pkg/constants"
	"github.com/agentstation/setlist/pkg/document"
	"github.com/agentstation/setlist/pkg/tracks"
)

// Result describes the tracked content of a document.
type Result struct {
	Path        string         `json:"path" yaml:"path"`
	PlaylistID  string         `json:"playlist_id,omitempty" yaml:"playlist_id,omitempty"`
	Configured  bool           `json:"configured" yaml:"configured"`
	SongList    []tracks.Entry `json:"song_list" yaml:"song_list"`
	Suggestions []tracks.Entry `json:"suggestions" yaml:"suggestions"`
}

// NewCommand creates the inspect command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "inspect FILE",
		GroupID: "management",
		Short:   "Show the tracked lists of a playlist document",
		Long: `Inspect parses a playlist document without contacting Spotify and prints
its playlist ID and the entries of its "Song List" and "Suggested Additions"
sections.`,
		Example: `  setlist inspect Playlists/wedding.md
  setlist inspect Playlists/wedding.md --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}
			result, err := Inspect(args[0])
			if err != nil {
				return err
			}
			view := table.EntriesToTableData(result.SongList, result.Suggestions)
			return output.Write(cmd.OutOrStdout(), format, result, view)
		},
	}
}

// Inspect loads and parses the document at path.
func Inspect(path string) (*Result, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}

	id := doc.PlaylistID(constants.MetadataKey)
	mirror, suggestions := document.Parse(doc.Body)
	return &Result{
		Path:        path,
		PlaylistID:  id,
		Configured:  id != "" && id != constants.PlaylistPlaceholder,
		SongList:    document.ParseEntries(mirror),
		Suggestions: document.ParseEntries(suggestions),
	}, nil
}
