package apitrail

// Status summarises where a symbol stands relative to the latest release.
type Status string

// Status values for BoundaryResult and SymbolLifecycle.
const (
	StatusPresent  Status = "present"
	StatusRemoved  Status = "removed"
	StatusNotFound Status = "not_found"
)

// Observation records whether a symbol was documented in a probed release.
type Observation struct {
	Release Release `json:"release"`
	Present bool    `json:"present"`
}

// BoundaryResult describes the releases across which a symbol existed.
//
// Without a full scan the boundaries assume contiguous presence: once a
// symbol appears it is taken to remain until a disappearance is observed.
// A symbol removed and later re-added is only detected by a full scan.
type BoundaryResult struct {
	Symbol string `json:"symbol"`
	Family Family `json:"family"`
	Status Status `json:"status"`

	// IntroducedAt is the oldest release of the contiguous run containing
	// the newest observed presence (or, on a full scan, the oldest release
	// where the symbol is present).
	IntroducedAt *Release `json:"introducedAt,omitempty"`

	// IntroducedAtOldest is set when IntroducedAt is the oldest catalog
	// entry; the real introduction may predate the catalog.
	IntroducedAtOldest bool `json:"introducedAtOldest,omitempty"`

	// RemovedAfter is the newest release documenting the symbol when the
	// latest release does not.
	RemovedAfter *Release `json:"removedAfter,omitempty"`

	// FirstMissingIn is the release right after RemovedAfter.
	FirstMissingIn *Release `json:"firstMissingIn,omitempty"`

	// Reintroduced is set by a full scan when presence is not one
	// contiguous run of releases.
	Reintroduced bool `json:"reintroduced,omitempty"`

	FullScan     bool          `json:"fullScan"`
	Observations []Observation `json:"observations"`
	Probed       int           `json:"probed"`
	CatalogSize  int           `json:"catalogSize"`
}

// Found reports whether the symbol was present in any probed release.
func (r *BoundaryResult) Found() bool {
	return r.Status == StatusPresent || r.Status == StatusRemoved
}

// PresentIn returns the probed releases documenting the symbol, oldest first.
func (r *BoundaryResult) PresentIn() []Release {
	var out []Release
	for _, o := range r.Observations {
		if o.Present {
			out = append(out, o.Release)
		}
	}
	sortReleases(out)
	return out
}
