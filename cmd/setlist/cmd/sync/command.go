// Package sync implements the sync command.
package sync

import (
	"context"
	"time"

	"github.com/agentstation/utc"
	"github.com/spf13/cobra"

	"github.com/agentstation/setlist/cmd/application"
	"github.com/agentstation/setlist/internal/cmd/output"
	"github.com/agentstation/setlist/internal/cmd/table"
	"github.com/agentstation/setlist/internal/sync"
	"github.com/agentstation/setlist/internal/watch"
	"github.com/agentstation/setlist/pkg/constants"
	"github.com/agentstation/setlist/pkg/errors"
	"github.com/agentstation/setlist/pkg/logging"
	"github.com/agentstation/setlist/pkg/reconcile"
)

// Flags holds the sync command flags.
type Flags struct {
	Dir      string
	DryRun   bool
	NoSearch bool
	Watch    bool
	Timeout  time.Duration
	Debounce time.Duration
}

// NewCommand creates the sync command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "sync [file...]",
		GroupID: "core",
		Short:   "Sync playlist documents with their Spotify playlists",
		Long: `Sync rewrites the "Song List" section of every playlist document with the
current tracks of the Spotify playlist named by its spotify_id front matter
field.

Songs that left the playlist move to "Suggested Additions", suggestions that
were added to the playlist are removed from it, and suggestions without a
link are looked up on Spotify. Everything else in the document is kept as is.

Documents without a spotify_id, or with the placeholder value, are skipped.`,
		Example: `  setlist sync                      # Sync every document in the playlists directory
  setlist sync Playlists/party.md   # Sync a single document
  setlist sync --dry-run            # Show what would change
  setlist sync --watch              # Keep syncing documents as they are edited`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Execute(cmd, app, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.Dir, "dir", "d", "", "playlists directory (default from config)")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "compute changes without writing documents")
	cmd.Flags().BoolVar(&flags.NoSearch, "no-search", false, "do not look up links for suggestions")
	cmd.Flags().BoolVarP(&flags.Watch, "watch", "w", false, "sync documents again whenever they change")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", constants.FetchTimeout, "timeout for fetching one playlist")
	cmd.Flags().DurationVar(&flags.Debounce, "debounce", constants.WatchDebounce, "quiet period before a changed document is synced")

	return cmd
}

// Execute runs the sync command.
func Execute(cmd *cobra.Command, app application.Application, flags *Flags, files []string) error {
	ctx := logging.WithLogger(cmd.Context(), app.Logger())
	ctx = logging.WithOperation(ctx, "sync")

	format, err := output.Resolve(app.OutputFormat())
	if err != nil {
		return err
	}

	syncer, err := NewSyncer(app, flags)
	if err != nil {
		return err
	}

	var result *sync.Result
	if len(files) > 0 {
		result = &sync.Result{DryRun: flags.DryRun, Dir: syncer.Options().Dir, StartTime: utc.Now()}
		for _, file := range files {
			result.Documents = append(result.Documents, syncer.SyncFile(ctx, file))
		}
		result.EndTime = utc.Now()
	} else {
		result, err = syncer.Run(ctx)
		if err != nil {
			return err
		}
	}

	if err := output.Write(cmd.OutOrStdout(), format, result, table.SyncResultToTableData(result)); err != nil {
		return err
	}

	if err := credentialFailure(result); err != nil {
		return err
	}
	if !flags.Watch {
		return nil
	}
	return Watch(ctx, syncer, flags.Debounce)
}

// credentialFailure returns a configuration error when a document failed
// because Spotify rejected the credentials. Every other document fails the
// same way, so the command exits non-zero instead of watching.
func credentialFailure(result *sync.Result) error {
	for _, doc := range result.Documents {
		if doc.Status != sync.StatusFailed || !errors.IsAPIKeyError(doc.Error) {
			continue
		}
		if errors.IsConfigError(doc.Error) {
			return doc.Error
		}
		return errors.NewConfigError("spotify", "credentials rejected, check SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET", doc.Error)
	}
	return nil
}

// NewSyncer builds a Syncer from the application and flags.
func NewSyncer(app application.Application, flags *Flags) (*sync.Syncer, error) {
	client, err := app.Spotify()
	if err != nil {
		return nil, err
	}

	var searcher reconcile.LinkSearcher
	if !flags.NoSearch {
		searcher = client
	}

	dir := flags.Dir
	if dir == "" {
		dir = app.PlaylistsDir()
	}

	return sync.New(client, searcher,
		sync.WithDir(dir),
		sync.WithDryRun(flags.DryRun),
		sync.WithTimeout(flags.Timeout),
	)
}

// Watch syncs documents as they change until ctx is done.
func Watch(ctx context.Context, syncer *sync.Syncer, debounce time.Duration) error {
	logger := logging.FromContext(ctx)

	w, err := watch.New(syncer.Options().Dir, func(ctx context.Context, path string) {
		res := syncer.SyncFile(ctx, path)
		if res.Error != nil && res.Status == sync.StatusFailed {
			logger.Warn().Err(res.Error).Str("document", path).Msg("Sync failed")
		}
	}, watch.WithDebounce(debounce))
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return err
	}
	defer w.Stop()

	select {
	case <-ctx.Done():
	case <-w.Done():
	}
	logger.Info().Msg("Stopped watching")
	return nil
}
