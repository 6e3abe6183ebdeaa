package sync

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/setlist/pkg/errors"
)

// Status is the outcome of syncing one document.
type Status string

// Document outcomes.
const (
	StatusUpdated     Status = "updated"      // document rewritten
	StatusWouldUpdate Status = "would-update" // dry run, document differs
	StatusUnchanged   Status = "unchanged"    // rebuilt body equals the current one
	StatusSkipped     Status = "skipped"      // no playlist ID configured
	StatusFailed      Status = "failed"       // load, fetch or save failed
)

// String returns the string representation of a status.
func (s Status) String() string {
	return string(s)
}

// DocumentResult represents the sync result of a single document.
type DocumentResult struct {
	Path        string `json:"path" yaml:"path"`
	PlaylistID  string `json:"playlist_id,omitempty" yaml:"playlist_id,omitempty"`
	Status      Status `json:"status" yaml:"status"`
	Tracks      int    `json:"tracks" yaml:"tracks"`
	Suggestions int    `json:"suggestions" yaml:"suggestions"`
	Enriched    int    `json:"enriched" yaml:"enriched"`
	Dropped     int    `json:"dropped" yaml:"dropped"`
	Error       error  `json:"-" yaml:"-"`
	Message     string `json:"message,omitempty" yaml:"message,omitempty"`
	Retryable   bool   `json:"retryable,omitempty" yaml:"retryable,omitempty"`
}

// fail marks the result failed with err.
func (r *DocumentResult) fail(status Status, err error) *DocumentResult {
	r.Status = status
	r.Error = err
	r.Message = err.Error()
	r.Retryable = errors.IsRateLimited(err) || errors.IsProviderUnavailable(err)
	return r
}

// Result represents the complete result of a sync run.
type Result struct {
	Documents []*DocumentResult `json:"documents" yaml:"documents"`
	DryRun    bool              `json:"dry_run" yaml:"dry_run"`
	Dir       string            `json:"dir" yaml:"dir"`
	StartTime utc.Time          `json:"start_time" yaml:"start_time"`
	EndTime   utc.Time          `json:"end_time" yaml:"end_time"`
}

// Duration returns how long the run took.
func (r *Result) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Count returns the number of documents with the given status.
func (r *Result) Count(status Status) int {
	n := 0
	for _, doc := range r.Documents {
		if doc.Status == status {
			n++
		}
	}
	return n
}

// HasFailures reports whether any document failed.
func (r *Result) HasFailures() bool {
	return r.Count(StatusFailed) > 0
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	if len(r.Documents) == 0 {
		return "No documents found"
	}

	updated := StatusUpdated
	if r.DryRun {
		updated = StatusWouldUpdate
	}

	parts := []string{
		fmt.Sprintf("%d %s", r.Count(updated), updated),
		fmt.Sprintf("%d unchanged", r.Count(StatusUnchanged)),
		fmt.Sprintf("%d skipped", r.Count(StatusSkipped)),
		fmt.Sprintf("%d failed", r.Count(StatusFailed)),
	}
	summary := fmt.Sprintf("%d documents: %s", len(r.Documents), strings.Join(parts, ", "))
	if r.DryRun {
		summary += " (dry run)"
	}
	return summary
}
