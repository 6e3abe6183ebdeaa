package document

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/setlist/pkg/errors"
)

const frontMatterDelimiter = "---"

// FrontMatter is the metadata prelude of a document. Raw holds the prelude
// exactly as it appeared in the file, delimiters included, and is written
// back unchanged.
type FrontMatter struct {
	Raw    string
	Fields map[string]any
}

// Get returns a metadata field rendered as a string, and whether it was set.
func (fm FrontMatter) Get(key string) (string, bool) {
	v, ok := fm.Fields[key]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// SplitFrontMatter separates a YAML front matter block from the document
// body. A document that does not open with a `---` line has no front matter.
func SplitFrontMatter(content string) (FrontMatter, string, error) {
	first, rest, found := strings.Cut(content, "\n")
	if !found || strings.TrimRight(first, "\r ") != frontMatterDelimiter {
		return FrontMatter{}, content, nil
	}

	offset := len(first) + 1
	for rest != "" {
		line, next, _ := strings.Cut(rest, "\n")
		lineEnd := offset + len(line)
		if strings.TrimRight(line, "\r ") == frontMatterDelimiter {
			rawEnd := lineEnd
			if lineEnd < len(content) {
				rawEnd++ // keep the newline that closes the prelude
			}
			inner := content[len(first)+1 : offset]

			fields := map[string]any{}
			if strings.TrimSpace(inner) != "" {
				if err := yaml.Unmarshal([]byte(inner), &fields); err != nil {
					return FrontMatter{}, "", errors.WrapParse("frontmatter", "", err)
				}
			}
			return FrontMatter{Raw: content[:rawEnd], Fields: fields}, content[rawEnd:], nil
		}
		offset = lineEnd + 1
		rest = next
	}

	// An unterminated block is body text, not metadata.
	return FrontMatter{}, content, nil
}
