package apitrail

import "slices"

// ChangelogEntry is the delta between one release and the release before it.
type ChangelogEntry struct {
	Release  Release `json:"release"`
	Previous Release `json:"previous"`
	Total    int     `json:"total"`
	Delta
}

// Summary aggregates the entries of a changelog.
type Summary struct {
	TotalAdded   int      `json:"totalAdded"`
	TotalRemoved int      `json:"totalRemoved"`
	Net          int      `json:"net"`
	NetNew       []string `json:"netNew"`
	NetRemoved   []string `json:"netRemoved"`
}

// Changelog lists symbol changes for every adjacent pair of releases in a range.
type Changelog struct {
	Families []Family         `json:"families"`
	Since    Release          `json:"since"`
	Until    Release          `json:"until"`
	Entries  []ChangelogEntry `json:"entries"`
	Summary  Summary          `json:"summary"`
}

// Summarize computes the summary of entries. Totals count every per-entry
// change; NetNew and NetRemoved hold names added but never removed in the
// range and vice versa.
func Summarize(entries []ChangelogEntry) Summary {
	s := Summary{NetNew: []string{}, NetRemoved: []string{}}
	added := make(map[string]struct{})
	removed := make(map[string]struct{})
	for _, e := range entries {
		s.TotalAdded += len(e.Added)
		s.TotalRemoved += len(e.Removed)
		for _, n := range e.Added {
			added[n] = struct{}{}
		}
		for _, n := range e.Removed {
			removed[n] = struct{}{}
		}
	}
	s.Net = s.TotalAdded - s.TotalRemoved
	for n := range added {
		if _, ok := removed[n]; !ok {
			s.NetNew = append(s.NetNew, n)
		}
	}
	for n := range removed {
		if _, ok := added[n]; !ok {
			s.NetRemoved = append(s.NetRemoved, n)
		}
	}
	slices.Sort(s.NetNew)
	slices.Sort(s.NetRemoved)
	return s
}

// SymbolLifecycle describes one symbol across a range of releases.
type SymbolLifecycle struct {
	Name string `json:"name"`

	// Introduced is the first release in range documenting the symbol, or
	// nil when it was already present at the start of the range.
	Introduced *Release `json:"introduced,omitempty"`

	// Removed is the first release without the symbol after it was present.
	Removed *Release `json:"removed,omitempty"`

	Status    Status    `json:"status"`
	PresentIn []Release `json:"presentIn"`
}

// LifecycleSummary counts symbols of a lifecycle report by status.
type LifecycleSummary struct {
	Total             int `json:"total"`
	Present           int `json:"present"`
	Removed           int `json:"removed"`
	IntroducedInRange int `json:"introducedInRange"`
	AlreadyPresent    int `json:"alreadyPresent"`
}

// Lifecycle lists every symbol seen in a range with when it came and went.
type Lifecycle struct {
	Families []Family          `json:"families"`
	Since    Release           `json:"since"`
	Until    Release           `json:"until"`
	Symbols  []SymbolLifecycle `json:"symbols"`
	Summary  LifecycleSummary  `json:"summary"`
}

func sortReleases(rs []Release) {
	slices.SortFunc(rs, CompareReleases)
}

// Comparison is the delta between two releases that need not be adjacent.
type Comparison struct {
	Families   []Family `json:"families"`
	Older      Release  `json:"older"`
	Newer      Release  `json:"newer"`
	OlderTotal int      `json:"olderTotal"`
	NewerTotal int      `json:"newerTotal"`
	Delta
}
