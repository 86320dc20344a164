package track

import (
	"context"

	"github.com/fwojciec/apitrail"
)

// LifecycleBuilder reports, for every symbol seen in a range, when it
// first appeared and when it was removed.
type LifecycleBuilder struct {
	Catalog     *apitrail.Catalog
	Source      apitrail.DocumentSource
	Extractor   apitrail.SymbolExtractor
	Concurrency int
	Progress    ReleaseFunc
}

// Build returns the lifecycle of every symbol of families documented in
// any release between since and until.
//
// A symbol present in the first release of the range has no Introduced
// release since its real introduction lies outside the range. Removed is
// the first release lacking the symbol after it had been present, even if
// it returns later; Status reflects the last release of the range.
func (b *LifecycleBuilder) Build(ctx context.Context, families []apitrail.Family, since, until string) (*apitrail.Lifecycle, error) {
	families, err := normalizeFamilies(families)
	if err != nil {
		return nil, err
	}
	releases, err := b.Catalog.Range(since, until)
	if err != nil {
		return nil, err
	}

	c := &collector{source: b.Source, extractor: b.Extractor, concurrency: b.Concurrency, progress: b.Progress}
	sets, err := c.collect(ctx, releases, families)
	if err != nil {
		return nil, err
	}

	all := apitrail.NewSymbolSet().Union(sets...)
	last := sets[len(sets)-1]

	out := &apitrail.Lifecycle{
		Families: families,
		Since:    releases[0],
		Until:    releases[len(releases)-1],
		Symbols:  make([]apitrail.SymbolLifecycle, 0, all.Len()),
	}
	for _, name := range all.Names() {
		sl := apitrail.SymbolLifecycle{Name: name, Status: apitrail.StatusRemoved}
		for i, set := range sets {
			switch {
			case set.Has(name):
				if len(sl.PresentIn) == 0 && i > 0 {
					introduced := releases[i]
					sl.Introduced = &introduced
				}
				sl.PresentIn = append(sl.PresentIn, releases[i])
			case len(sl.PresentIn) > 0 && sl.Removed == nil:
				removed := releases[i]
				sl.Removed = &removed
			}
		}
		if last.Has(name) {
			sl.Status = apitrail.StatusPresent
		}
		out.Symbols = append(out.Symbols, sl)
	}
	out.Summary = summarizeLifecycle(out.Symbols)
	return out, nil
}

func summarizeLifecycle(symbols []apitrail.SymbolLifecycle) apitrail.LifecycleSummary {
	s := apitrail.LifecycleSummary{Total: len(symbols)}
	for _, sl := range symbols {
		if sl.Status == apitrail.StatusPresent {
			s.Present++
		} else {
			s.Removed++
		}
		if sl.Introduced != nil {
			s.IntroducedInRange++
		} else {
			s.AlreadyPresent++
		}
	}
	return s
}
