// Package emoji provides symbol constants for CLI output.
package emoji

// Status symbols.
const (
	Success  = "✓" // completed, written
	Error    = "✗" // failed
	Warning  = "!" // needs attention
	Optional = "-" // skipped, nothing to do
	Unknown  = "?"
	Info     = "i"
	Pending  = "~" // would change, dry run
)
