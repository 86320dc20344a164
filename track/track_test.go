package track_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/apitrail"
	"github.com/fwojciec/apitrail/mock"
	"github.com/stretchr/testify/require"
)

// world is a fake documentation archive. Documents are their own key
// ("family@version") and extract to the names registered for that key.
type world struct {
	mu        sync.Mutex
	symbols   map[string][]string
	fetchErr  map[string]error
	badDocs   map[string]bool
	fetches   map[string]int
	fetchList []string
}

func newWorld() *world {
	return &world{
		symbols:  make(map[string][]string),
		fetchErr: make(map[string]error),
		badDocs:  make(map[string]bool),
		fetches:  make(map[string]int),
	}
}

func docKey(version string, family apitrail.Family) string {
	return apitrail.DocumentKey{Release: apitrail.Release{Version: version}, Family: family}.String()
}

// set registers the names documented by family at each version.
func (w *world) set(family apitrail.Family, version string, names ...string) {
	w.symbols[docKey(version, family)] = names
}

// presence documents symbol in family at the versions where present is true
// alongside a filler symbol, so every document extracts to something.
func (w *world) presence(family apitrail.Family, symbol string, versions []string, present ...bool) {
	filler := family.Prefix() + "Filler"
	for i, v := range versions {
		names := []string{filler}
		if present[i] {
			names = append(names, symbol)
		}
		w.set(family, v, names...)
	}
}

func (w *world) source() *mock.DocumentSource {
	return &mock.DocumentSource{
		FetchFn: func(_ context.Context, release apitrail.Release, family apitrail.Family) (string, error) {
			key := docKey(release.Version, family)
			w.mu.Lock()
			defer w.mu.Unlock()
			w.fetches[key]++
			w.fetchList = append(w.fetchList, key)
			if err := w.fetchErr[key]; err != nil {
				return "", err
			}
			return key, nil
		},
	}
}

func (w *world) extractor() *mock.SymbolExtractor {
	return &mock.SymbolExtractor{
		ExtractFn: func(document string, family apitrail.Family) (*apitrail.SymbolSet, error) {
			if w.badDocs[document] {
				return nil, apitrail.Errorf(apitrail.EEXTRACT, "no %s symbols found", family)
			}
			if !strings.HasPrefix(document, string(family)+"@") {
				return nil, apitrail.Errorf(apitrail.EEXTRACT, "wrong family document %s", document)
			}
			return apitrail.NewSymbolSet(w.symbols[document]...), nil
		},
	}
}

// fetchCount returns the number of fetches made.
func (w *world) fetchCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.fetchList)
}

// maxFetchesPerKey returns the highest number of fetches of any one document.
func (w *world) maxFetchesPerKey() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	m := 0
	for _, n := range w.fetches {
		m = max(m, n)
	}
	return m
}

func mustCatalog(t *testing.T, versions ...string) *apitrail.Catalog {
	t.Helper()
	c, err := apitrail.NewCatalog(versions...)
	require.NoError(t, err)
	return c
}
