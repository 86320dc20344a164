// Package fs provides a file-based document cache.
package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/apitrail"
	"github.com/fwojciec/apitrail/cache"
)

// Ensure DocumentStore implements apitrail.DocumentStore at compile time.
var _ apitrail.DocumentStore = (*DocumentStore)(nil)

// DocumentStore keeps one file per (family, release) under a base
// directory: baseDir/<family>/<version>.html. Each file starts with a short
// frontmatter block recording the key, the content hash and the fetch time.
//
// Files are written to a temporary file in the same directory and renamed
// into place, so a reader sees either the old document or the new one.
type DocumentStore struct {
	baseDir string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewDocumentStore creates a new DocumentStore rooted at baseDir.
func NewDocumentStore(baseDir string) *DocumentStore {
	return &DocumentStore{baseDir: baseDir, Now: time.Now}
}

// Path returns the file that holds the document for key.
func (s *DocumentStore) Path(key apitrail.DocumentKey) (string, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}
	v := key.Release.Version
	if v != filepath.Base(v) || strings.HasPrefix(v, ".") {
		return "", apitrail.Errorf(apitrail.EINVALID, "invalid release %q", v)
	}
	return filepath.Join(s.baseDir, string(key.Family), v+".html"), nil
}

func (s *DocumentStore) Get(ctx context.Context, key apitrail.DocumentKey) (*apitrail.CachedDocument, error) {
	path, err := s.Path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apitrail.Errorf(apitrail.ENOTFOUND, "no cached document for %s", key)
	}
	if err != nil {
		return nil, err
	}

	doc, err := ParseDocument(string(data))
	if err != nil {
		return nil, apitrail.Errorf(apitrail.ENOTFOUND, "corrupt cached document %s: %s", path, apitrail.ErrorMessage(err))
	}
	doc.Key = key
	return doc, nil
}

func (s *DocumentStore) Put(ctx context.Context, key apitrail.DocumentKey, content string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	doc := &apitrail.CachedDocument{
		Key:         key,
		Content:     content,
		ContentHash: cache.ContentHash(content),
		FetchedAt:   s.Now().UTC(),
	}
	if _, err := tmp.WriteString(FormatDocument(doc)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// Clear removes the whole cache directory.
func (s *DocumentStore) Clear(ctx context.Context) error {
	return os.RemoveAll(s.baseDir)
}

// FormatDocument formats a cached document with YAML frontmatter.
func FormatDocument(doc *apitrail.CachedDocument) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("release: ")
	b.WriteString(doc.Key.Release.Version)
	b.WriteString("\nfamily: ")
	b.WriteString(string(doc.Key.Family))
	b.WriteString("\nhash: ")
	b.WriteString(doc.ContentHash)
	b.WriteString("\nfetched: ")
	b.WriteString(doc.FetchedAt.Format(time.RFC3339))
	b.WriteString("\n---\n\n")
	b.WriteString(doc.Content)
	return b.String()
}

// ParseDocument parses the output of FormatDocument.
func ParseDocument(data string) (*apitrail.CachedDocument, error) {
	rest, ok := strings.CutPrefix(data, "---\n")
	if !ok {
		return nil, apitrail.Errorf(apitrail.EINVALID, "missing frontmatter")
	}
	header, content, ok := strings.Cut(rest, "\n---\n\n")
	if !ok {
		return nil, apitrail.Errorf(apitrail.EINVALID, "unterminated frontmatter")
	}

	doc := &apitrail.CachedDocument{Content: content}
	for _, line := range strings.Split(header, "\n") {
		name, value, _ := strings.Cut(line, ": ")
		switch name {
		case "release":
			doc.Key.Release.Version = value
		case "family":
			doc.Key.Family = apitrail.Family(value)
		case "hash":
			doc.ContentHash = value
		case "fetched":
			t, err := time.Parse(time.RFC3339, value)
			if err != nil {
				return nil, apitrail.Errorf(apitrail.EINVALID, "invalid fetch time %q", value)
			}
			doc.FetchedAt = t
		}
	}
	return doc, nil
}
