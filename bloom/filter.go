// Package bloom provides URL deduplication backed by Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter remembers URLs already requested while assembling a document.
// The Bloom filter settles most lookups; a possible hit is confirmed
// against the recorded set, so membership answers are exact.
type Filter struct {
	f    *bloom.BloomFilter
	urls map[string]struct{}
}

// NewFilter creates a new filter sized for n expected URLs with the given
// Bloom false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f:    bloom.NewWithEstimates(n, fpRate),
		urls: make(map[string]struct{}, n),
	}
}

// Add records a URL.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
	f.urls[url] = struct{}{}
}

// Test reports whether the URL has been recorded.
func (f *Filter) Test(url string) bool {
	if !f.f.TestString(url) {
		return false
	}
	_, ok := f.urls[url]
	return ok
}

// Visit records url and reports whether it was not recorded before.
func (f *Filter) Visit(url string) bool {
	if f.Test(url) {
		return false
	}
	f.Add(url)
	return true
}

// Len returns the number of distinct URLs recorded.
func (f *Filter) Len() int {
	return len(f.urls)
}

// EstimatedCount returns the Bloom filter's estimate of the URLs recorded.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
