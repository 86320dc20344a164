package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/apitrail"
	"github.com/fwojciec/apitrail/cache"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ apitrail.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements apitrail.DocumentStore using SQLite.
type DocumentStore struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db, Now: time.Now}
}

// Get retrieves the document cached for key.
func (s *DocumentStore) Get(ctx context.Context, key apitrail.DocumentKey) (*apitrail.CachedDocument, error) {
	doc := apitrail.CachedDocument{Key: key}
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT content, content_hash, fetched_at
		FROM documents
		WHERE version = ? AND family = ?
	`, key.Release.Version, string(key.Family)).Scan(&doc.Content, &doc.ContentHash, &fetchedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apitrail.Errorf(apitrail.ENOTFOUND, "no cached document for %s", key)
	}
	if err != nil {
		return nil, err
	}

	doc.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, apitrail.Errorf(apitrail.EINTERNAL, "failed to parse fetched_at of %s: %v", key, err)
	}
	return &doc, nil
}

// Put stores content for key in a single upsert, replacing any previous
// document.
func (s *DocumentStore) Put(ctx context.Context, key apitrail.DocumentKey, content string) error {
	if err := key.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, version, family, content, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (version, family) DO UPDATE SET
			content = excluded.content,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, uuid.New().String(), key.Release.Version, string(key.Family), content, cache.ContentHash(content),
		s.Now().UTC().Format(time.RFC3339))

	return err
}

// Clear deletes every cached document.
func (s *DocumentStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents`)
	return err
}

// Count returns the number of cached documents.
func (s *DocumentStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n)
	return n, err
}
