package facts

import (
	"sort"
)

// Flag marks a heuristic annotation on a locator or endpoint. Flags carry
// uncertainty that confidence scoring and downstream consumers act on.
type Flag string

const (
	// Locator flags.
	FlagDynamicTestID      Flag = "DYNAMIC_TESTID"
	FlagBrittle            Flag = "BRITTLE"
	FlagConditionalElement Flag = "CONDITIONAL_ELEMENT"
	FlagDynamicList        Flag = "DYNAMIC_LIST"
	FlagDynamicProp        Flag = "DYNAMIC_PROP"

	// Endpoint flags.
	FlagUnresolvedPathPrefix Flag = "UNRESOLVED_PATH_PREFIX"
	FlagDynamicPath          Flag = "DYNAMIC_PATH"
	FlagConditionalRoute     Flag = "CONDITIONAL_ROUTE"
	FlagReturnsHTML          Flag = "RETURNS_HTML"
	FlagBodyUnvalidated      Flag = "BODY_UNVALIDATED"
)

// FlagSet is a set of flags serialized as a sorted array so that output is
// byte-stable regardless of insertion order.
type FlagSet []Flag

// NewFlagSet builds a set from the given flags.
func NewFlagSet(flags ...Flag) FlagSet {
	var s FlagSet
	for _, f := range flags {
		s = s.Add(f)
	}
	return s
}

// Add returns a set containing f. The receiver is not modified.
func (s FlagSet) Add(f Flag) FlagSet {
	if s.Has(f) {
		return s
	}
	out := make(FlagSet, len(s), len(s)+1)
	copy(out, s)
	out = append(out, f)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Has reports membership.
func (s FlagSet) Has(f Flag) bool {
	for _, x := range s {
		if x == f {
			return true
		}
	}
	return false
}

// Union returns the sorted union of both sets.
func (s FlagSet) Union(other FlagSet) FlagSet {
	out := s
	for _, f := range other {
		out = out.Add(f)
	}
	return out
}
