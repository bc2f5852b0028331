package facts

import (
	"sort"
)

// StrSet is a sorted string set used for roles and linked endpoint IDs.
// Serialized as a plain sorted array.
type StrSet []string

// NewStrSet builds a set from the given values, dropping empties.
func NewStrSet(values ...string) StrSet {
	var s StrSet
	for _, v := range values {
		s = s.Add(v)
	}
	return s
}

// Add returns a set containing v. The receiver is not modified.
func (s StrSet) Add(v string) StrSet {
	if v == "" || s.Has(v) {
		return s
	}
	out := make(StrSet, len(s), len(s)+1)
	copy(out, s)
	out = append(out, v)
	sort.Strings(out)
	return out
}

// Has reports membership.
func (s StrSet) Has(v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// Union returns the sorted union of both sets.
func (s StrSet) Union(other StrSet) StrSet {
	out := s
	for _, v := range other {
		out = out.Add(v)
	}
	return out
}
