package apitrail

import "context"

// Fetcher retrieves the HTML of a single URL.
type Fetcher interface {
	// Fetch returns the body of the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any underlying resources.
	Close() error
}
