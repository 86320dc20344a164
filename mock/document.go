package mock

import (
	"context"

	"github.com/fwojciec/apitrail"
)

var _ apitrail.DocumentSource = (*DocumentSource)(nil)

// DocumentSource is a mock implementation of apitrail.DocumentSource.
type DocumentSource struct {
	FetchFn func(ctx context.Context, release apitrail.Release, family apitrail.Family) (string, error)
}

func (s *DocumentSource) Fetch(ctx context.Context, release apitrail.Release, family apitrail.Family) (string, error) {
	return s.FetchFn(ctx, release, family)
}

var _ apitrail.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of apitrail.DocumentStore.
type DocumentStore struct {
	GetFn   func(ctx context.Context, key apitrail.DocumentKey) (*apitrail.CachedDocument, error)
	PutFn   func(ctx context.Context, key apitrail.DocumentKey, content string) error
	ClearFn func(ctx context.Context) error
}

func (s *DocumentStore) Get(ctx context.Context, key apitrail.DocumentKey) (*apitrail.CachedDocument, error) {
	return s.GetFn(ctx, key)
}

func (s *DocumentStore) Put(ctx context.Context, key apitrail.DocumentKey, content string) error {
	return s.PutFn(ctx, key, content)
}

func (s *DocumentStore) Clear(ctx context.Context) error {
	return s.ClearFn(ctx)
}
