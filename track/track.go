// Package track follows API symbols across the releases of a catalog.
// It locates the releases where a symbol appeared and disappeared and
// builds per-release changelogs over a range.
package track

import (
	"context"
	"sync"

	"github.com/fwojciec/apitrail"
	"golang.org/x/sync/errgroup"
)

// ReleaseFunc is called after the symbols of a release have been collected.
// done counts releases completed so far out of total.
type ReleaseFunc func(done, total int, release apitrail.Release, symbols *apitrail.SymbolSet)

// probe fetches the document of family at release and extracts its symbols.
// Any failure is reported as a ProbeError naming the release.
func probe(ctx context.Context, source apitrail.DocumentSource, extractor apitrail.SymbolExtractor, release apitrail.Release, family apitrail.Family) (*apitrail.SymbolSet, error) {
	doc, err := source.Fetch(ctx, release, family)
	if err != nil {
		return nil, &apitrail.ProbeError{Release: release, Family: family, Err: err}
	}
	set, err := extractor.Extract(doc, family)
	if err != nil {
		return nil, &apitrail.ProbeError{Release: release, Family: family, Err: err}
	}
	return set, nil
}

// probeFamilies returns the union of the symbols of every family at release.
func probeFamilies(ctx context.Context, source apitrail.DocumentSource, extractor apitrail.SymbolExtractor, release apitrail.Release, families []apitrail.Family) (*apitrail.SymbolSet, error) {
	sets := make([]*apitrail.SymbolSet, 0, len(families))
	for _, f := range families {
		set, err := probe(ctx, source, extractor, release, f)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return apitrail.NewSymbolSet().Union(sets...), nil
}

// collector gathers the symbol sets of a sequence of releases, fetching
// each (release, family) document exactly once.
type collector struct {
	source      apitrail.DocumentSource
	extractor   apitrail.SymbolExtractor
	concurrency int
	progress    ReleaseFunc
}

// collect returns the symbol sets of releases in the same order.
// Releases are processed in order unless concurrency is above one.
func (c *collector) collect(ctx context.Context, releases []apitrail.Release, families []apitrail.Family) ([]*apitrail.SymbolSet, error) {
	sets := make([]*apitrail.SymbolSet, len(releases))

	if c.concurrency <= 1 {
		for i, r := range releases {
			set, err := probeFamilies(ctx, c.source, c.extractor, r, families)
			if err != nil {
				return nil, err
			}
			sets[i] = set
			if c.progress != nil {
				c.progress(i+1, len(releases), r, set)
			}
		}
		return sets, nil
	}

	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, r := range releases {
		g.Go(func() error {
			set, err := probeFamilies(gctx, c.source, c.extractor, r, families)
			if err != nil {
				return err
			}
			sets[i] = set

			mu.Lock()
			defer mu.Unlock()
			done++
			if c.progress != nil {
				c.progress(done, len(releases), r, set)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sets, nil
}

// normalizeFamilies defaults to every family and validates the rest.
func normalizeFamilies(families []apitrail.Family) ([]apitrail.Family, error) {
	if len(families) == 0 {
		return apitrail.Families(), nil
	}
	out := make([]apitrail.Family, 0, len(families))
	seen := make(map[apitrail.Family]bool)
	for _, f := range families {
		pf, err := apitrail.ParseFamily(string(f))
		if err != nil {
			return nil, err
		}
		if seen[pf] {
			continue
		}
		seen[pf] = true
		out = append(out, pf)
	}
	return out, nil
}
