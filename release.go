package apitrail

import (
	"strings"

	"github.com/hashicorp/go-version"
)

// Release identifies one published version of the CUDA toolkit.
// Older releases use a patch-less form ("10.2"); newer ones carry all
// three components ("12.4.1").
type Release struct {
	Version string `json:"version"`
	Latest  bool   `json:"latest,omitempty"`
}

// String returns the version string.
func (r Release) String() string {
	return r.Version
}

// ParseRelease validates v and returns it as a Release.
func ParseRelease(v string) (Release, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return Release{}, Errorf(EINVALID, "release version required")
	}
	if _, err := version.NewVersion(v); err != nil {
		return Release{}, Errorf(EINVALID, "invalid release version %q", v)
	}
	return Release{Version: v}, nil
}

// CompareReleases orders releases by semantic version. It returns -1, 0 or
// +1. A patch-less version compares equal to its ".0" form. Unparsable
// versions sort before parsable ones and are compared as strings.
func CompareReleases(a, b Release) int {
	va, errA := version.NewVersion(a.Version)
	vb, errB := version.NewVersion(b.Version)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a.Version, b.Version)
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return va.Compare(vb)
}

// Before reports whether r is older than other.
func (r Release) Before(other Release) bool {
	return CompareReleases(r, other) < 0
}
