// Package suggest implements the suggest command.
package suggest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/setlist/cmd/application"
	synccmd "github.com/agentstation/setlist/cmd/setlist/cmd/sync"
	"github.com/agentstation/setlist/internal/cmd/output"
	"github.com/agentstation/setlist/internal/cmd/table"
	"github.com/agentstation/setlist/internal/suggest"
	"github.com/agentstation/setlist/internal/sync"
	"github.com/agentstation/setlist/pkg/constants"
	"github.com/agentstation/setlist/pkg/document"
	"github.com/agentstation/setlist/pkg/errors"
	"github.com/agentstation/setlist/pkg/logging"
)

// Flags holds the suggest command flags.
type Flags struct {
	Prompt   string
	DryRun   bool
	NoSearch bool
}

// Result is the output of the suggest command.
type Result struct {
	Message     string               `json:"message,omitempty" yaml:"message,omitempty"`
	Suggestions []suggest.Suggestion `json:"suggestions" yaml:"suggestions"`
	Document    *sync.DocumentResult `json:"document" yaml:"document"`
}

// NewCommand creates the suggest command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "suggest FILE",
		GroupID: "core",
		Short:   "Add AI song suggestions to a playlist document",
		Long: `Suggest asks Gemini for songs that fit the playlist and the prompt, then
syncs the document with the answers added to its "Suggested Additions".

Suggestions already in the playlist or already suggested are dropped, and
links are looked up on Spotify like any other suggestion.`,
		Example: `  setlist suggest Playlists/wedding.md --prompt "more 80s dance classics"
  setlist suggest Playlists/wedding.md -p "slow songs for the first dance" --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Execute(cmd, app, flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.Prompt, "prompt", "p", "", "what kind of songs to suggest (required)")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "show suggestions without writing the document")
	cmd.Flags().BoolVar(&flags.NoSearch, "no-search", false, "do not look up links for suggestions")
	_ = cmd.MarkFlagRequired("prompt")

	return cmd
}

// Execute runs the suggest command for one document.
func Execute(cmd *cobra.Command, app application.Application, flags *Flags, path string) error {
	ctx := logging.WithLogger(cmd.Context(), app.Logger())
	ctx = logging.WithOperation(ctx, "suggest")

	format, err := output.Resolve(app.OutputFormat())
	if err != nil {
		return err
	}

	doc, err := document.Load(path)
	if err != nil {
		return err
	}

	syncer, err := synccmd.NewSyncer(app, &synccmd.Flags{
		Dir:      filepath.Dir(path),
		DryRun:   flags.DryRun,
		NoSearch: flags.NoSearch,
		Timeout:  constants.FetchTimeout,
	})
	if err != nil {
		return err
	}

	suggester, err := app.Suggester(ctx)
	if err != nil {
		return err
	}

	mirror, suggestions := document.Parse(doc.Body)
	var existing []string
	for _, e := range document.ParseEntries(append(mirror, suggestions...)) {
		existing = append(existing, e.Text)
	}

	resp, err := suggester.Suggest(ctx, suggest.Request{
		Title:    Title(doc),
		Existing: existing,
		Prompt:   flags.Prompt,
	})
	if err != nil {
		return err
	}

	res := syncer.SyncFile(ctx, path, resp.Lines()...)
	if res.Status == sync.StatusFailed {
		return res.Error
	}
	if res.Status == sync.StatusSkipped {
		return errors.NewConfigError("document", fmt.Sprintf("%s has no %s, nothing to sync against", path, constants.MetadataKey), res.Error)
	}

	result := &Result{Message: resp.Message, Suggestions: resp.Suggestions, Document: res}
	return output.Write(cmd.OutOrStdout(), format, result, View(result))
}

// Title returns the playlist title: the title front matter field, or the
// file name without extension.
func Title(doc *document.Document) string {
	if title, ok := doc.FrontMatter.Get("title"); ok && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}
	base := filepath.Base(doc.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// View renders a suggest result as a table.
func View(result *Result) table.Data {
	data := table.Data{
		Headers:         []string{"#", "Song", "Reason"},
		ColumnAlignment: []table.Align{table.AlignRight, table.AlignLeft, table.AlignLeft},
	}
	for i, s := range result.Suggestions {
		data.Rows = append(data.Rows, []string{fmt.Sprint(i + 1), s.Line(), s.Reason})
	}
	if result.Document != nil {
		row := table.DocumentResultRow(result.Document)
		data.Rows = append(data.Rows, []string{"", "", ""}, []string{row[0], row[1], fmt.Sprintf("%s, %d suggestions", row[3], result.Document.Suggestions)})
	}
	return data
}
