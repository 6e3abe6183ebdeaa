// Package sync drives reconciliation over playlist documents: it loads each
// document, fetches its canonical playlist, reconciles the tracked lists and
// writes the rebuilt document back. Documents are processed one at a time
// and a failure never stops the run.
package sync

import (
	"context"
	"strings"

	"github.com/agentstation/utc"

	"github.com/agentstation/setlist/pkg/document"
	"github.com/agentstation/setlist/pkg/errors"
	"github.com/agentstation/setlist/pkg/logging"
	"github.com/agentstation/setlist/pkg/reconcile"
	"github.com/agentstation/setlist/pkg/tracks"
)

// Syncer synchronizes playlist documents with their canonical playlists.
type Syncer struct {
	fetcher  reconcile.Fetcher
	searcher reconcile.LinkSearcher
	opts     *Options
}

// New creates a Syncer. The searcher may be nil, in which case no links are
// looked up.
func New(fetcher reconcile.Fetcher, searcher reconcile.LinkSearcher, opts ...Option) (*Syncer, error) {
	if fetcher == nil {
		return nil, errors.NewConfigError("sync", "a playlist fetcher is required", errors.ErrAPIKeyRequired)
	}
	options := Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}
	return &Syncer{fetcher: fetcher, searcher: searcher, opts: options}, nil
}

// Options returns the options the Syncer runs with.
func (s *Syncer) Options() Options {
	return *s.opts
}

// Run syncs every document in the playlists directory, in name order. The
// returned error is only set when the directory cannot be listed or the
// context is done; per document failures are reported in the result.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	logger := logging.FromContext(ctx)
	result := &Result{
		DryRun:    s.opts.DryRun,
		Dir:       s.opts.Dir,
		StartTime: utc.Now(),
	}
	defer func() {
		result.EndTime = utc.Now()
	}()

	paths, err := document.List(s.opts.Dir)
	if err != nil {
		return result, err
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Documents = append(result.Documents, s.SyncFile(ctx, path))
	}

	logger.Info().
		Int("documents", len(result.Documents)).
		Int("failed", result.Count(StatusFailed)).
		Bool("dry_run", s.opts.DryRun).
		Msg("Sync complete")
	return result, nil
}

// SyncFile syncs a single document. Extra entries are treated as prior
// suggestions appended after the ones already in the document.
func (s *Syncer) SyncFile(ctx context.Context, path string, extra ...string) *DocumentResult {
	ctx = logging.WithDocument(ctx, path)
	logger := logging.FromContext(ctx)
	res := &DocumentResult{Path: path}

	doc, err := document.Load(path)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load document")
		return res.fail(StatusFailed, err)
	}

	id := strings.TrimSpace(doc.PlaylistID(s.opts.MetadataKey))
	res.PlaylistID = id
	if id == "" || id == s.opts.Placeholder {
		err := errors.NewConfigError("document", "no valid "+s.opts.MetadataKey+" found", errors.ErrSkipped)
		logger.Info().Msg("Skipping document without playlist ID")
		return res.fail(StatusSkipped, err)
	}
	ctx = logging.WithPlaylist(ctx, id)
	logger = logging.FromContext(ctx)

	items, err := s.fetch(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch playlist")
		return res.fail(StatusFailed, err)
	}

	mirror, suggestions := s.opts.Sections.Parse(doc.Body)
	suggestions = append(suggestions, extra...)

	rec := reconcile.Reconcile(ctx, items, suggestions, mirror, s.searcher)
	res.Tracks = rec.Stats.Tracks
	res.Suggestions = rec.Stats.Suggestions
	res.Enriched = rec.Stats.Enriched
	res.Dropped = rec.Stats.Dropped()

	body := s.opts.Sections.Rebuild(doc.Body, rec.MirrorLines, rec.SuggestionLines)
	switch {
	case body == doc.Body:
		res.Status = StatusUnchanged
	case s.opts.DryRun:
		res.Status = StatusWouldUpdate
	default:
		doc.Body = body
		if err := document.Save(doc); err != nil {
			logger.Error().Err(err).Msg("Failed to save document")
			return res.fail(StatusFailed, err)
		}
		res.Status = StatusUpdated
	}

	logger.Info().
		Str("status", res.Status.String()).
		Int("tracks", res.Tracks).
		Int("suggestions", res.Suggestions).
		Int("enriched", res.Enriched).
		Msg("Document synced")
	return res
}

func (s *Syncer) fetch(ctx context.Context, id string) ([]tracks.Item, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	items, err := s.fetcher.FetchCollection(ctx, id)
	if err != nil && !errors.IsFetchError(err) {
		err = errors.NewFetchError(id, err)
	}
	return items, err
}
