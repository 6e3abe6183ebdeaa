package document

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agentstation/setlist/pkg/constants"
	"github.com/agentstation/setlist/pkg/errors"
)

// Document is a playlist document loaded from disk.
type Document struct {
	Path        string
	FrontMatter FrontMatter
	Body        string
}

// PlaylistID returns the playlist ID stored under key, or "" when the
// field is missing.
func (d *Document) PlaylistID(key string) string {
	id, _ := d.FrontMatter.Get(key)
	return id
}

// Content renders the full file content: the original prelude followed by the body.
func (d *Document) Content() string {
	return d.FrontMatter.Raw + d.Body
}

// ParseDocument builds a Document from file content.
func ParseDocument(path, content string) (*Document, error) {
	fm, body, err := SplitFrontMatter(content)
	if err != nil {
		if parseErr, ok := err.(*errors.ParseError); ok {
			parseErr.File = path
		}
		return nil, err
	}
	return &Document{Path: path, FrontMatter: fm, Body: body}, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return ParseDocument(path, string(data))
}

// Save writes the document back to its path atomically: the content goes
// to a temporary file in the same directory which then replaces the original.
func Save(doc *Document) error {
	perm := fs.FileMode(constants.FilePermissions)
	if info, err := os.Stat(doc.Path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(doc.Path), "."+filepath.Base(doc.Path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", doc.Path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.WriteString(doc.Content()); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("sync", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return errors.WrapIO("chmod", tmpName, err)
	}
	if err := os.Rename(tmpName, doc.Path); err != nil {
		return errors.WrapIO("rename", doc.Path, err)
	}
	return nil
}

// List returns the documents in dir, sorted by name. Subdirectories are not descended.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapIO("list", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != constants.DocumentExt {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}
