package sync

import (
	"time"

	"github.com/agentstation/setlist/pkg/constants"
	"github.com/agentstation/setlist/pkg/document"
	"github.com/agentstation/setlist/pkg/errors"
)

// Options controls a sync run.
type Options struct {
	Dir         string            // directory holding the playlist documents
	DryRun      bool              // compute the new documents without writing them
	MetadataKey string            // front matter field holding the playlist ID
	Placeholder string            // playlist ID value that means "not configured"
	Sections    document.Sections // section literals of the documents
	Timeout     time.Duration     // deadline for fetching one playlist, 0 for none
}

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		Dir:         constants.DefaultPlaylistsDir,
		DryRun:      false,
		MetadataKey: constants.MetadataKey,
		Placeholder: constants.PlaylistPlaceholder,
		Sections:    document.DefaultSections(),
		Timeout:     constants.FetchTimeout,
	}
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Apply applies the given options.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Validate checks if the options are usable.
func (o *Options) Validate() error {
	if o.MetadataKey == "" {
		return errors.NewValidationError("MetadataKey", o.MetadataKey, "cannot be empty")
	}
	if o.Timeout < 0 {
		return errors.NewValidationError("Timeout", o.Timeout, "timeout must be non-negative")
	}
	s := o.Sections
	if s.Mirror == "" || s.Suggestion == "" || s.Prefix == "" || s.Marker == "" {
		return errors.NewValidationError("Sections", s, "section literals cannot be empty")
	}
	if s.Mirror == s.Suggestion {
		return errors.NewValidationError("Sections", s, "mirror and suggestion headers must differ")
	}
	return nil
}

// WithDir sets the playlists directory.
func WithDir(dir string) Option {
	return func(o *Options) {
		o.Dir = dir
	}
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(o *Options) {
		o.DryRun = dryRun
	}
}

// WithMetadataKey sets the front matter field holding the playlist ID.
func WithMetadataKey(key string) Option {
	return func(o *Options) {
		o.MetadataKey = key
	}
}

// WithPlaceholder sets the playlist ID value treated as missing.
func WithPlaceholder(placeholder string) Option {
	return func(o *Options) {
		o.Placeholder = placeholder
	}
}

// WithSections sets the section literals.
func WithSections(sections document.Sections) Option {
	return func(o *Options) {
		o.Sections = sections
	}
}

// WithTimeout sets the per playlist fetch deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}
