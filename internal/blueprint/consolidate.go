package blueprint

import (
	"strings"

	"golang.org/x/text/cases"

	"surveyor/internal/diag"
	"surveyor/internal/facts"
	"surveyor/internal/markup"
	"surveyor/internal/source"
)

var fold = cases.Fold()

// mergeKey reduces a component title or route segment to the case-folded,
// "Page"-suffix-stripped form both sides of a SPA merge are compared in.
func mergeKey(s string) string {
	s = strings.TrimSuffix(s, "Page")
	s = strings.TrimSuffix(s, "page")
	return fold.String(s)
}

// lastStaticSegment returns the last non-parameter segment of a route, or ""
// when the route has none.
func lastStaticSegment(route string) string {
	segs := Segments(route)
	for i := len(segs) - 1; i >= 0; i-- {
		if !IsDynamicSegment(segs[i]) {
			return segs[i]
		}
	}
	return ""
}

// looksLikeWidgetRoute reports whether any route segment is a component name
// rather than a URL token. Such routes come from filename-derived component
// pages that never matched a router declaration.
func looksLikeWidgetRoute(route string) bool {
	for _, seg := range Segments(route) {
		if markup.IsPascalCase(seg) {
			return true
		}
	}
	return false
}

// ConsolidateSPA folds component-extracted locator pages into the
// router-declared pages describing the same screen. A router page without
// locators adopts the locators (and, when it has none of its own, the form
// flows) of the component page whose title matches its last static route
// segment. Consumed donors are dropped, as are leftover component pages
// whose derived route is a widget name rather than a URL.
//
// The title-to-segment match is a heuristic and can pick the wrong donor
// when unrelated screens share a final segment; an AmbiguousPageMerge
// warning is emitted whenever more than one donor matched.
func ConsolidateSPA(pages []facts.Page, reporter diag.Reporter) []facts.Page {
	consumed := make(map[string]bool)
	for i := range pages {
		recv := &pages[i]
		if len(recv.Locators) > 0 {
			continue
		}
		seg := lastStaticSegment(recv.NormalizedRoute)
		if seg == "" {
			continue
		}
		key := mergeKey(seg)
		matches := 0
		for j := range pages {
			donor := &pages[j]
			if i == j || len(donor.Locators) == 0 || donor.Title == "" {
				continue
			}
			if consumed[donor.NormalizedRoute] {
				continue
			}
			if mergeKey(donor.Title) != key {
				continue
			}
			matches++
			if matches > 1 {
				diag.ReportWarning(reporter, diag.AmbiguousPageMerge, source.Span{},
					"route "+recv.NormalizedRoute+" matches component page "+donor.Title+" by final segment; keeping first match")
				continue
			}
			recv.Locators = UnionLocators(recv.Locators, donor.Locators)
			if len(recv.FormFlows) == 0 {
				recv.FormFlows = donor.FormFlows
			}
			recv.NavigationLinks = unionStrings(recv.NavigationLinks, donor.NavigationLinks)
			recv.LinkedEndpointIDs = recv.LinkedEndpointIDs.Union(donor.LinkedEndpointIDs)
			if recv.Title == "" {
				recv.Title = donor.Title
			}
			consumed[donor.NormalizedRoute] = true
		}
	}

	out := make([]facts.Page, 0, len(pages))
	for i := range pages {
		p := &pages[i]
		if consumed[p.NormalizedRoute] {
			continue
		}
		if looksLikeWidgetRoute(p.NormalizedRoute) {
			diag.ReportInfo(reporter, diag.PhantomPageDropped, source.Span{},
				"dropped phantom route "+p.NormalizedRoute+" derived from component name")
			continue
		}
		out = append(out, *p)
	}
	return out
}
