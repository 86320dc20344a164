package apitrail

import (
	"context"
	"time"
)

// DocumentKey identifies the documentation of one API family at one release.
type DocumentKey struct {
	Release Release
	Family  Family
}

// String returns the key as "family@version".
func (k DocumentKey) String() string {
	return string(k.Family) + "@" + k.Release.Version
}

// Validate returns an error if the key contains invalid fields.
func (k DocumentKey) Validate() error {
	if k.Release.Version == "" {
		return Errorf(EINVALID, "document release required")
	}
	if _, err := ParseFamily(string(k.Family)); err != nil {
		return err
	}
	return nil
}

// DocumentSource retrieves the raw documentation of a family at a release.
// Reads are idempotent for a fixed key. Failures carry ENOTFOUND,
// ENETWORK or ETIMEOUT codes.
type DocumentSource interface {
	Fetch(ctx context.Context, release Release, family Family) (string, error)
}

// CachedDocument is a document held by a DocumentStore.
type CachedDocument struct {
	Key         DocumentKey
	Content     string
	ContentHash string
	FetchedAt   time.Time
}

// DocumentStore is the backing store of the document cache.
type DocumentStore interface {
	// Get returns the cached document for key.
	// Returns ENOTFOUND if nothing is cached.
	Get(ctx context.Context, key DocumentKey) (*CachedDocument, error)

	// Put stores content for key, replacing any previous entry. Either the
	// full document is stored or nothing is.
	Put(ctx context.Context, key DocumentKey, content string) error

	// Clear removes every cached document.
	Clear(ctx context.Context) error
}
