// Package reconcile merges a canonical playlist with the tracked lists of a
// playlist document. The canonical playlist always wins: the mirror list is
// regenerated from it, and the suggestion list keeps only entries that are
// not part of it, deduplicated and enriched with links where possible.
package reconcile

import (
	"context"

	"github.com/agentstation/setlist/pkg/constants"
	"github.com/agentstation/setlist/pkg/document"
	"github.com/agentstation/setlist/pkg/errors"
	"github.com/agentstation/setlist/pkg/logging"
	"github.com/agentstation/setlist/pkg/tracks"
)

// Fetcher retrieves the canonical items of a playlist in order.
type Fetcher interface {
	FetchCollection(ctx context.Context, id string) ([]tracks.Item, error)
}

// LinkSearcher looks up a link for a display text.
// An empty link with a nil error means nothing was found.
type LinkSearcher interface {
	SearchLink(ctx context.Context, text string) (string, error)
}

// LinkSearcherFunc adapts a function to the LinkSearcher interface.
type LinkSearcherFunc func(ctx context.Context, text string) (string, error)

// SearchLink calls f(ctx, text).
func (f LinkSearcherFunc) SearchLink(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Reconcile computes the new tracked lists of a document.
//
// Prior suggestions are replayed before prior mirror leftovers, so an entry
// kept from the suggestion list suppresses the same entry demoted from the
// mirror list. Entries matching a canonical item by folded text or by link
// are dropped. Entries without a link are looked up with searcher, when
// one is given; lookup failures leave the entry without a link.
func Reconcile(ctx context.Context, items []tracks.Item, priorSuggestions, priorMirror []string, searcher LinkSearcher) Result {
	c := newCanonical(items)

	result := Result{
		MirrorLines: make([]string, 0, len(items)),
		Stats:       Stats{Tracks: len(items)},
	}
	for _, item := range items {
		result.MirrorLines = append(result.MirrorLines, item.Line())
	}

	r := &run{canonical: c, searcher: searcher, seen: keySet{}}
	for _, raw := range priorSuggestions {
		r.process(ctx, raw, &result)
	}
	for _, raw := range priorMirror {
		r.process(ctx, raw, &result)
	}

	result.Stats.Suggestions = len(result.SuggestionLines)
	return result
}

// canonical holds the membership sets of the canonical playlist.
type canonical struct {
	keys  map[string]struct{}
	links map[string]struct{}
}

func newCanonical(items []tracks.Item) canonical {
	c := canonical{
		keys:  make(map[string]struct{}, len(items)),
		links: make(map[string]struct{}, len(items)),
	}
	for _, item := range items {
		c.keys[item.Key()] = struct{}{}
		if item.Link != "" {
			c.links[item.Link] = struct{}{}
		}
	}
	return c
}

func (c canonical) contains(e tracks.Entry) bool {
	if _, ok := c.keys[e.Key()]; ok {
		return true
	}
	if e.HasLink() {
		if _, ok := c.links[e.Link]; ok {
			return true
		}
	}
	return false
}

// run is the state of a single Reconcile call.
type run struct {
	canonical canonical
	searcher  LinkSearcher
	seen      keySet
}

func (r *run) process(ctx context.Context, raw string, result *Result) {
	entry := document.ParseEntry(raw)

	if r.canonical.contains(entry) {
		result.Stats.Promoted++
		return
	}
	if !r.seen.Add(entry.Key()) {
		result.Stats.Duplicates++
		return
	}

	if !entry.HasLink() {
		entry.Link = r.search(ctx, entry.Text, &result.Stats)
	}
	result.SuggestionLines = append(result.SuggestionLines, entry.Line())
}

// search is best effort: any failure is logged and yields no link.
func (r *run) search(ctx context.Context, text string, stats *Stats) string {
	if r.searcher == nil {
		return ""
	}

	stats.Searched++
	searchCtx, cancel := context.WithTimeout(ctx, constants.SearchTimeout)
	defer cancel()
	link, err := r.searcher.SearchLink(searchCtx, text)
	if err != nil {
		stats.SearchFailures++
		logger := logging.FromContext(ctx)
		logger.Warn().
			Err(errors.NewSearchError(text, err)).
			Msg("Link lookup failed, keeping entry without link")
		return ""
	}
	if link != "" {
		stats.Enriched++
	}
	return link
}
