package output

import (
	"io"

	"github.com/agentstation/setlist/internal/cmd/table"
)

// Write renders data in format. Table output uses view; structured formats
// encode data itself.
func Write(w io.Writer, format Format, data any, view table.Data) error {
	switch format {
	case FormatJSON, FormatYAML:
		return NewFormatter(format).Format(w, data)
	default:
		return NewFormatter(FormatTable).Format(w, view)
	}
}
