// Package locator implements the strategy-cascade resolution engine: one
// stable, unambiguous selector per UI element, with component templates
// resolved against call-site prop values.
package locator

import (
	"sort"

	"surveyor/internal/facts"
	"surveyor/internal/markup"
	"surveyor/internal/registry"
)

// PageResult is everything locator resolution extracts from one page tree.
type PageResult struct {
	Locators        []facts.Locator
	FormFlows       []facts.FormFlow
	NavigationLinks []string
}

// ResolveOptions configures page resolution.
type ResolveOptions struct {
	TestIDAttrs []string
	IDGen       facts.IDGen
}

type pageEntry struct {
	cand      *candidate
	docOrder  int
	component bool
}

// ResolvePage walks a page tree and resolves every element through the
// cascade. Locators are deduplicated by selector-string identity; when a
// native element and a resolved component produce byte-identical selector
// text, the component one is discarded.
func ResolvePage(tree *facts.TreeFact, pageRoute string, reg *registry.Registry, opts ResolveOptions) PageResult {
	res := &Resolver{
		HTMLFor:     BuildHTMLForMap(tree.Root),
		TestIDAttrs: opts.TestIDAttrs,
		Registry:    reg,
	}

	var entries []pageEntry
	order := 0
	markup.WalkElements(tree.Root, func(n *markup.Node) bool {
		order++
		if n.IsCustom() {
			if c, known := res.resolveWidget(n); known {
				if c != nil {
					applyContext(c, n)
					entries = append(entries, pageEntry{cand: c, docOrder: order, component: true})
				}
				return true
			}
			for _, c := range res.resolveComponent(n) {
				applyContext(c, n)
				entries = append(entries, pageEntry{cand: c, docOrder: order, component: true})
			}
			return true
		}
		if c := res.resolveNative(n); c != nil {
			applyContext(c, n)
			entries = append(entries, pageEntry{cand: c, docOrder: order, component: false})
		}
		return true
	})

	out := PageResult{
		Locators:        dedupe(entries, pageRoute, opts.IDGen),
		NavigationLinks: collectNavLinks(tree.Root),
	}
	out.FormFlows = extractFormFlows(tree, pageRoute, res, opts.IDGen)
	return out
}

// applyContext folds the element's rendering context into the candidate:
// conditional branches and mapping callbacks both reduce confidence and are
// propagated as flags.
func applyContext(c *candidate, n *markup.Node) {
	conditional, dynamic := markup.EffectiveContext(n)
	if conditional {
		c.flags = c.flags.Add(facts.FlagConditionalElement)
		c.confidence = facts.Clamp01(c.confidence - penaltyConditional)
	}
	if dynamic {
		c.flags = c.flags.Add(facts.FlagDynamicList)
		c.confidence = facts.Clamp01(c.confidence - penaltyDynamicList)
	}
}

// dedupe enforces per-page selector uniqueness. Native resolutions win over
// component ones; ties break on document order. Output keeps document order.
func dedupe(entries []pageEntry, pageRoute string, gen facts.IDGen) []facts.Locator {
	best := make(map[string]int) // selector -> index into entries
	for i, e := range entries {
		prev, ok := best[e.cand.selector]
		if !ok {
			best[e.cand.selector] = i
			continue
		}
		// Component locators are discarded when a native one produced the
		// same selector text, regardless of which came first.
		if entries[prev].component && !e.component {
			best[e.cand.selector] = i
		}
	}

	kept := make([]int, 0, len(best))
	for _, idx := range best {
		kept = append(kept, idx)
	}
	sort.Ints(kept)

	out := make([]facts.Locator, 0, len(kept))
	for _, idx := range kept {
		c := entries[idx].cand
		out = append(out, facts.Locator{
			ID:            gen.Locator(pageRoute, c.selector),
			Name:          c.name,
			Selector:      c.selector,
			Strategy:      c.strategy,
			ElementKind:   c.kind,
			IsInteractive: facts.InteractiveKinds[c.kind],
			IsConditional: c.flags.Has(facts.FlagConditionalElement),
			IsDynamic:     c.flags.Has(facts.FlagDynamicList) || c.flags.Has(facts.FlagDynamicTestID) || c.flags.Has(facts.FlagDynamicProp),
			Confidence:    facts.Clamp01(c.confidence),
			Flags:         c.flags,
		})
	}
	return out
}

// collectNavLinks gathers literal hrefs of anchor elements, deduped in
// document order. Only in-app paths are interesting.
func collectNavLinks(root *markup.Node) []string {
	var out []string
	seen := map[string]bool{}
	markup.WalkElements(root, func(n *markup.Node) bool {
		if n.Tag != "a" {
			return true
		}
		href, ok := n.LiteralAttr("href")
		if !ok {
			href, ok = n.LiteralAttr("to")
		}
		if !ok || href == "" || href[0] != '/' || seen[href] {
			return true
		}
		seen[href] = true
		out = append(out, href)
		return true
	})
	return out
}
