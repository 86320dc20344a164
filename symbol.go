package apitrail

import (
	"maps"
	"slices"
)

// SymbolSet is an immutable set of API symbol names extracted from one
// release's documentation. Names match exactly and case-sensitively.
type SymbolSet struct {
	names map[string]struct{}
}

// NewSymbolSet returns a set holding the distinct names given.
func NewSymbolSet(names ...string) *SymbolSet {
	s := &SymbolSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.names[n] = struct{}{}
	}
	return s
}

// Has reports whether name is in the set.
func (s *SymbolSet) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.names[name]
	return ok
}

// Len returns the number of names in the set.
func (s *SymbolSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Names returns the names in sorted order.
func (s *SymbolSet) Names() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.names))
}

// Union returns a new set holding the names of s and every other set.
func (s *SymbolSet) Union(others ...*SymbolSet) *SymbolSet {
	out := &SymbolSet{names: make(map[string]struct{}, s.Len())}
	for _, set := range append([]*SymbolSet{s}, others...) {
		if set == nil {
			continue
		}
		for n := range set.names {
			out.names[n] = struct{}{}
		}
	}
	return out
}

// Delta is the symbol difference between an older and a newer set.
// A name appears in at most one of Added and Removed.
type Delta struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
}

// Empty reports whether the delta holds no changes.
func (d Delta) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// Diff returns the names added in newer and removed from older. Callers
// pass sets in chronological order. Both slices are sorted and non-nil.
func Diff(older, newer *SymbolSet) Delta {
	d := Delta{Added: []string{}, Removed: []string{}}
	for _, n := range newer.Names() {
		if !older.Has(n) {
			d.Added = append(d.Added, n)
		}
	}
	for _, n := range older.Names() {
		if !newer.Has(n) {
			d.Removed = append(d.Removed, n)
		}
	}
	return d
}
