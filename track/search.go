package track

import (
	"context"
	"strings"

	"github.com/fwojciec/apitrail"
)

// ObservationFunc receives every probe made by a search, in probe order.
type ObservationFunc func(obs apitrail.Observation)

// Searcher locates the releases across which a symbol was documented.
//
// The default search walks backward from the latest release and stops as
// soon as both boundaries are known, assuming a symbol stays present from
// its introduction until its removal. A full scan probes every release and
// derives the boundaries from all observations instead.
type Searcher struct {
	Catalog   *apitrail.Catalog
	Source    apitrail.DocumentSource
	Extractor apitrail.SymbolExtractor
	Progress  ObservationFunc
}

// Locate searches the catalog for symbol in family.
//
// Every probed release is fetched exactly once. If a release cannot be
// probed the search halts and returns the result gathered so far together
// with a *apitrail.ProbeError naming that release.
func (s *Searcher) Locate(ctx context.Context, symbol string, family apitrail.Family, fullScan bool) (*apitrail.BoundaryResult, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, apitrail.Errorf(apitrail.EINVALID, "symbol required")
	}
	family, err := apitrail.ParseFamily(string(family))
	if err != nil {
		return nil, err
	}

	releases := s.Catalog.Releases(apitrail.Descending)
	res := &apitrail.BoundaryResult{
		Symbol:       symbol,
		Family:       family,
		Status:       apitrail.StatusNotFound,
		FullScan:     fullScan,
		Observations: []apitrail.Observation{},
		CatalogSize:  len(releases),
	}

	present := func(i int) (bool, error) {
		set, err := probe(ctx, s.Source, s.Extractor, releases[i], family)
		if err != nil {
			return false, err
		}
		obs := apitrail.Observation{Release: releases[i], Present: set.Has(symbol)}
		res.Observations = append(res.Observations, obs)
		res.Probed++
		if s.Progress != nil {
			s.Progress(obs)
		}
		return obs.Present, nil
	}

	if fullScan {
		for i := range releases {
			if _, err := present(i); err != nil {
				return res, err
			}
		}
		deriveBoundaries(res, releases)
		return res, nil
	}

	// Newest release documenting the symbol.
	newest := -1
	for i := range releases {
		ok, err := present(i)
		if err != nil {
			return res, err
		}
		if ok {
			newest = i
			break
		}
	}
	if newest < 0 {
		return res, nil
	}
	setRemoval(res, releases, newest)

	// Oldest release of the run ending at newest.
	oldest := newest
	for i := newest + 1; i < len(releases); i++ {
		ok, err := present(i)
		if err != nil {
			return res, err
		}
		if !ok {
			break
		}
		oldest = i
	}
	setIntroduction(res, releases, oldest)
	return res, nil
}

// deriveBoundaries fills res from the observations of a full scan, which
// hold one entry per release of releases (newest first).
func deriveBoundaries(res *apitrail.BoundaryResult, releases []apitrail.Release) {
	newest, oldest, count := -1, -1, 0
	for i, o := range res.Observations {
		if !o.Present {
			continue
		}
		if newest < 0 {
			newest = i
		}
		oldest = i
		count++
	}
	if newest < 0 {
		return
	}
	setRemoval(res, releases, newest)
	setIntroduction(res, releases, oldest)
	res.Reintroduced = count != oldest-newest+1
}

// setRemoval records newest (an index into the newest-first releases) as
// the newest release documenting the symbol.
func setRemoval(res *apitrail.BoundaryResult, releases []apitrail.Release, newest int) {
	if newest == 0 {
		res.Status = apitrail.StatusPresent
		return
	}
	res.Status = apitrail.StatusRemoved
	removedAfter, firstMissing := releases[newest], releases[newest-1]
	res.RemovedAfter = &removedAfter
	res.FirstMissingIn = &firstMissing
}

func setIntroduction(res *apitrail.BoundaryResult, releases []apitrail.Release, oldest int) {
	introduced := releases[oldest]
	res.IntroducedAt = &introduced
	res.IntroducedAtOldest = oldest == len(releases)-1
}
