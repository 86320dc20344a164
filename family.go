package apitrail

import "strings"

// Family selects one of the documented CUDA API surfaces. It determines
// which document is fetched for a release and which symbol prefix is
// expected in it.
type Family string

// Supported API families.
const (
	FamilyRuntime Family = "runtime"
	FamilyDriver  Family = "driver"
)

// Families lists every supported family.
func Families() []Family {
	return []Family{FamilyRuntime, FamilyDriver}
}

// ParseFamily returns the family named s.
// Returns EINVALID for unknown names.
func ParseFamily(s string) (Family, error) {
	switch f := Family(strings.ToLower(strings.TrimSpace(s))); f {
	case FamilyRuntime, FamilyDriver:
		return f, nil
	}
	return "", Errorf(EINVALID, "unknown API family %q (want runtime or driver)", s)
}

// ParseFamilies accepts a family name or "both".
func ParseFamilies(s string) ([]Family, error) {
	if strings.EqualFold(strings.TrimSpace(s), "both") {
		return Families(), nil
	}
	f, err := ParseFamily(s)
	if err != nil {
		return nil, err
	}
	return []Family{f}, nil
}

// Prefix returns the symbol prefix used by the family.
func (f Family) Prefix() string {
	if f == FamilyDriver {
		return "cu"
	}
	return "cuda"
}

// DocPath returns the documentation directory for the family.
func (f Family) DocPath() string {
	if f == FamilyDriver {
		return "cuda-driver-api"
	}
	return "cuda-runtime-api"
}

// Title returns a human-readable family name.
func (f Family) Title() string {
	if f == FamilyDriver {
		return "Driver"
	}
	return "Runtime"
}

// DetectFamily guesses the family from a symbol's naming convention.
// Driver API symbols start with "cu" but not "cuda". The fallback is
// returned for anything else.
func DetectFamily(symbol string, fallback Family) Family {
	if strings.HasPrefix(symbol, "cu") && !strings.HasPrefix(symbol, "cuda") {
		return FamilyDriver
	}
	return fallback
}

// JoinFamilies renders families for display, e.g. "runtime + driver".
func JoinFamilies(families []Family) string {
	parts := make([]string, len(families))
	for i, f := range families {
		parts[i] = string(f)
	}
	return strings.Join(parts, " + ")
}
