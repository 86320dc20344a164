package apitrail

import (
	"slices"
	"strings"

	"github.com/hashicorp/go-version"
)

// Order selects the direction in which a Catalog lists its releases.
type Order int

// Order constants for Catalog.Releases.
const (
	Ascending Order = iota
	Descending
)

// cudaReleases lists the toolkit releases that have online API
// documentation, oldest first.
var cudaReleases = []string{
	"8.0",
	"9.0", "9.1", "9.2",
	"10.0", "10.1", "10.2",
	"11.0",
	"11.1.0", "11.1.1",
	"11.2.0", "11.2.1", "11.2.2",
	"11.3.0", "11.3.1",
	"11.4.0", "11.4.1", "11.4.2", "11.4.3", "11.4.4",
	"11.5.0", "11.5.1", "11.5.2",
	"11.6.0", "11.6.1", "11.6.2",
	"11.7.0", "11.7.1",
	"11.8.0",
	"12.0.0", "12.0.1",
	"12.1.0", "12.1.1",
	"12.2.0", "12.2.1", "12.2.2",
	"12.3.0", "12.3.1", "12.3.2",
	"12.4.0", "12.4.1",
	"12.5.0", "12.5.1",
	"12.6.0", "12.6.1", "12.6.2", "12.6.3",
	"12.8.0", "12.8.1",
	"12.9.0", "12.9.1",
	"13.0.0", "13.0.1", "13.0.2",
	"13.1.0", "13.1.1",
}

// Catalog is the ordered, immutable list of known releases of a product.
// The newest release is marked Latest.
type Catalog struct {
	releases []Release // oldest first
}

// NewCatalog builds a Catalog from version strings in any order.
// Returns EINVALID if the list is empty, a version does not parse, or two
// versions compare equal.
func NewCatalog(versions ...string) (*Catalog, error) {
	if len(versions) == 0 {
		return nil, Errorf(EINVALID, "catalog requires at least one release")
	}

	releases := make([]Release, 0, len(versions))
	for _, v := range versions {
		r, err := ParseRelease(v)
		if err != nil {
			return nil, err
		}
		releases = append(releases, r)
	}

	slices.SortFunc(releases, CompareReleases)
	for i := 1; i < len(releases); i++ {
		if CompareReleases(releases[i-1], releases[i]) == 0 {
			return nil, Errorf(EINVALID, "duplicate release %q and %q", releases[i-1].Version, releases[i].Version)
		}
	}
	releases[len(releases)-1].Latest = true

	return &Catalog{releases: releases}, nil
}

// DefaultCatalog returns the catalog of CUDA toolkit releases with online
// API documentation.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(cudaReleases...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of releases in the catalog.
func (c *Catalog) Len() int {
	return len(c.releases)
}

// Releases returns a copy of the releases in the requested order.
func (c *Catalog) Releases(order Order) []Release {
	out := slices.Clone(c.releases)
	if order == Descending {
		slices.Reverse(out)
	}
	return out
}

// Latest returns the newest release.
func (c *Catalog) Latest() Release {
	return c.releases[len(c.releases)-1]
}

// Oldest returns the oldest release.
func (c *Catalog) Oldest() Release {
	return c.releases[0]
}

// Index returns the ascending position of r, or -1 if r is not in the catalog.
func (c *Catalog) Index(r Release) int {
	for i, cr := range c.releases {
		if cr.Version == r.Version {
			return i
		}
	}
	return -1
}

// Lookup returns the catalog entry whose version string is exactly v.
func (c *Catalog) Lookup(v string) (Release, bool) {
	for _, r := range c.releases {
		if r.Version == v {
			return r, true
		}
	}
	return Release{}, false
}

// Range returns the releases between since and until inclusive, oldest
// first. An empty since means the oldest release and an empty until the
// latest. Bounds that do not name a catalog entry resolve to the nearest
// entry inside the range: "12.2" as since means 12.2.0, as until 12.2.2;
// a version between entries snaps inward.
//
// Returns ENOTFOUND if a bound resolves to nothing and ERANGE if fewer than
// two releases remain.
func (c *Catalog) Range(since, until string) ([]Release, error) {
	start := 0
	if since != "" {
		i, err := c.resolve(since, false)
		if err != nil {
			return nil, err
		}
		start = i
	}

	end := len(c.releases) - 1
	if until != "" {
		i, err := c.resolve(until, true)
		if err != nil {
			return nil, err
		}
		end = i
	}

	if end-start+1 < 2 {
		return nil, Errorf(ERANGE, "range %s..%s holds fewer than two releases", c.label(since, start), c.label(until, end))
	}
	return slices.Clone(c.releases[start : end+1]), nil
}

func (c *Catalog) label(requested string, i int) string {
	if requested != "" {
		return requested
	}
	if i >= 0 && i < len(c.releases) {
		return c.releases[i].Version
	}
	return "?"
}

// resolve maps a requested bound to a catalog index. Upper bounds pick the
// newest matching entry, lower bounds the oldest.
func (c *Catalog) resolve(requested string, upper bool) (int, error) {
	requested = strings.TrimSpace(requested)

	if r, ok := c.Lookup(requested); ok {
		return c.Index(r), nil
	}

	// Dotted prefix: "11.4" covers 11.4.0 through 11.4.4.
	match := -1
	for i, r := range c.releases {
		if strings.HasPrefix(r.Version, requested+".") {
			match = i
			if !upper {
				break
			}
		}
	}
	if match >= 0 {
		return match, nil
	}

	want, err := version.NewVersion(requested)
	if err != nil {
		return -1, Errorf(EINVALID, "invalid release version %q", requested)
	}

	if upper {
		for i := len(c.releases) - 1; i >= 0; i-- {
			if v, err := version.NewVersion(c.releases[i].Version); err == nil && v.LessThanOrEqual(want) {
				return i, nil
			}
		}
	} else {
		for i, r := range c.releases {
			if v, err := version.NewVersion(r.Version); err == nil && v.GreaterThanOrEqual(want) {
				return i, nil
			}
		}
	}
	return -1, Errorf(ENOTFOUND, "no release matches %q", requested)
}
