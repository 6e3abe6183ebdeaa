// Package watch runs a handler for playlist documents that change on disk.
// Rapid successive events for the same file are collapsed, and handlers
// run one at a time from a single loop.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/agentstation/setlist/pkg/constants"
	"github.com/agentstation/setlist/pkg/errors"
	"github.com/agentstation/setlist/pkg/logging"
)

// Handler processes a changed document.
type Handler func(ctx context.Context, path string)

// Stats counts watcher activity.
type Stats struct {
	Events    int       // relevant filesystem events received
	Handled   int       // handler invocations
	Errors    int       // errors reported by the filesystem watcher
	LastEvent time.Time // time of the last relevant event
	LastPath  string    // path of the last relevant event
}

// Watcher watches a directory for document changes.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	dir      string
	ext      string
	handler  Handler
	pending  map[string]time.Time
	debounce time.Duration
	tick     time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	stats    Stats
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long a file must stay quiet before it is handled.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
		if d/5 < w.tick {
			w.tick = max(d/5, time.Millisecond)
		}
	}
}

// WithExtension sets the file extension of watched documents.
func WithExtension(ext string) Option {
	return func(w *Watcher) {
		w.ext = ext
	}
}

// New creates a Watcher for dir. It does not start watching until Start.
func New(dir string, handler Handler, opts ...Option) (*Watcher, error) {
	if handler == nil {
		return nil, errors.NewValidationError("handler", nil, "cannot be nil")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapIO("watch", dir, err)
	}

	w := &Watcher{
		watcher:  fw,
		dir:      dir,
		ext:      constants.DocumentExt,
		handler:  handler,
		pending:  make(map[string]time.Time),
		debounce: constants.WatchDebounce,
		tick:     100 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching. It returns once the directory is registered; events
// are processed in a background goroutine until Stop or ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := w.watcher.Add(w.dir); err != nil {
		return errors.WrapIO("watch", w.dir, err)
	}
	w.running = true

	logger := logging.FromContext(ctx)
	logger.Info().Str("dir", w.dir).Dur("debounce", w.debounce).Msg("Watching for document changes")

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}
	_ = w.watcher.Close()
}

// Done is closed when the event loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.doneCh
}

// Stats returns a snapshot of the watcher counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	logger := logging.FromContext(ctx)

	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.record(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error().Err(err).Msg("Watcher error")
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

// record notes a relevant event; the file is handled once it settles.
func (w *Watcher) record(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || filepath.Ext(name) != w.ext {
		return
	}

	now := time.Now()
	w.mu.Lock()
	w.pending[event.Name] = now
	w.stats.Events++
	w.stats.LastEvent = now
	w.stats.LastPath = event.Name
	w.mu.Unlock()
}

// flush hands settled files to the handler in name order.
func (w *Watcher) flush(ctx context.Context) {
	now := time.Now()

	w.mu.Lock()
	var ready []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.stats.Handled += len(ready)
	w.mu.Unlock()

	sort.Strings(ready)
	for _, path := range ready {
		if ctx.Err() != nil {
			return
		}
		w.handler(ctx, path)
	}
}
