package track

import (
	"context"

	"github.com/fwojciec/apitrail"
)

// ChangelogBuilder diffs every adjacent pair of releases in a range.
type ChangelogBuilder struct {
	Catalog   *apitrail.Catalog
	Source    apitrail.DocumentSource
	Extractor apitrail.SymbolExtractor

	// Concurrency is the number of releases fetched at once. Values below
	// two fetch one release at a time, oldest first.
	Concurrency int

	Progress ReleaseFunc
}

// Build returns the changelog of families between since and until. The
// symbols of all families at a release are merged before diffing. An empty
// families slice means every family.
//
// Returns ERANGE if the range holds fewer than two releases.
func (b *ChangelogBuilder) Build(ctx context.Context, families []apitrail.Family, since, until string) (*apitrail.Changelog, error) {
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

	entries := make([]apitrail.ChangelogEntry, 0, len(releases)-1)
	for i := 1; i < len(releases); i++ {
		entries = append(entries, apitrail.ChangelogEntry{
			Release:  releases[i],
			Previous: releases[i-1],
			Total:    sets[i].Len(),
			Delta:    apitrail.Diff(sets[i-1], sets[i]),
		})
	}

	return &apitrail.Changelog{
		Families: families,
		Since:    releases[0],
		Until:    releases[len(releases)-1],
		Entries:  entries,
		Summary:  apitrail.Summarize(entries),
	}, nil
}

// Compare returns the delta of families between two releases. The
// releases may be given in either order; the delta always runs from the
// older to the newer.
func Compare(ctx context.Context, source apitrail.DocumentSource, extractor apitrail.SymbolExtractor, families []apitrail.Family, a, b apitrail.Release) (*apitrail.Comparison, error) {
	families, err := normalizeFamilies(families)
	if err != nil {
		return nil, err
	}
	if b.Before(a) {
		a, b = b, a
	}

	older, err := probeFamilies(ctx, source, extractor, a, families)
	if err != nil {
		return nil, err
	}
	newer, err := probeFamilies(ctx, source, extractor, b, families)
	if err != nil {
		return nil, err
	}

	return &apitrail.Comparison{
		Families:   families,
		Older:      a,
		Newer:      b,
		OlderTotal: older.Len(),
		NewerTotal: newer.Len(),
		Delta:      apitrail.Diff(older, newer),
	}, nil
}
