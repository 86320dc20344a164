// Package cache provides a read-through document cache in front of a
// DocumentSource.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/apitrail"
)

// Ensure Source implements apitrail.DocumentSource at compile time.
var _ apitrail.DocumentSource = (*Source)(nil)

// Source serves documents from Store and falls back to the wrapped source
// on a miss, storing what it fetched. A failed fetch is never stored, and
// an entry whose content no longer matches its hash is fetched again.
//
// When Bypass is set the store is neither read nor written.
type Source struct {
	Source apitrail.DocumentSource
	Store  apitrail.DocumentStore
	Bypass bool

	// Extractor, when set, must recognise symbols in a fetched document
	// before it is stored. A rejected document is returned but not cached.
	Extractor apitrail.SymbolExtractor
}

// NewSource creates a caching Source.
func NewSource(source apitrail.DocumentSource, store apitrail.DocumentStore) *Source {
	return &Source{Source: source, Store: store}
}

// Fetch returns the cached document for (release, family) or fetches it.
func (s *Source) Fetch(ctx context.Context, release apitrail.Release, family apitrail.Family) (string, error) {
	if s.Bypass || s.Store == nil {
		return s.Source.Fetch(ctx, release, family)
	}

	key := apitrail.DocumentKey{Release: release, Family: family}
	doc, err := s.Store.Get(ctx, key)
	switch {
	case err == nil && Intact(doc):
		return doc.Content, nil
	case err != nil && apitrail.ErrorCode(err) != apitrail.ENOTFOUND:
		return "", fmt.Errorf("read cache %s: %w", key, err)
	}

	content, err := s.Source.Fetch(ctx, release, family)
	if err != nil {
		return "", err
	}
	if s.Extractor != nil {
		if _, err := s.Extractor.Extract(content, family); err != nil {
			return content, nil
		}
	}
	if err := s.Store.Put(ctx, key, content); err != nil {
		return "", fmt.Errorf("write cache %s: %w", key, err)
	}
	return content, nil
}

// ContentHash returns the hex xxhash of content.
func ContentHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// Intact reports whether doc still holds the content its hash was taken of.
func Intact(doc *apitrail.CachedDocument) bool {
	return doc.ContentHash == ContentHash(doc.Content)
}

// Ensure MemoryStore implements apitrail.DocumentStore at compile time.
var _ apitrail.DocumentStore = (*MemoryStore)(nil)

// MemoryStore is an in-process DocumentStore. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]apitrail.CachedDocument

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]apitrail.CachedDocument),
		Now:  time.Now,
	}
}

// Get returns the document stored for key.
func (m *MemoryStore) Get(_ context.Context, key apitrail.DocumentKey) (*apitrail.CachedDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[key.String()]
	if !ok {
		return nil, apitrail.Errorf(apitrail.ENOTFOUND, "no cached document for %s", key)
	}
	return &doc, nil
}

// Put stores content for key.
func (m *MemoryStore) Put(_ context.Context, key apitrail.DocumentKey, content string) error {
	if err := key.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs[key.String()] = apitrail.CachedDocument{
		Key:         key,
		Content:     content,
		ContentHash: ContentHash(content),
		FetchedAt:   m.Now().UTC(),
	}
	return nil
}

// Clear removes all documents.
func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.docs)
	return nil
}

// Len returns the number of stored documents.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}
