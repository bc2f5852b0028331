package blueprint

import (
	"sort"

	"surveyor/internal/facts"
)

// MergeEndpoints groups endpoint facts by (method, normalized path) and
// collapses each group into one endpoint. Input order never leaks into the
// result: facts are pre-sorted by the documented tie-break before merging.
func MergeEndpoints(in []facts.Endpoint, gen facts.IDGen) []facts.Endpoint {
	sorted := make([]facts.Endpoint, len(in))
	copy(sorted, in)
	for i := range sorted {
		sorted[i].NormalizedPath = NormalizePath(sorted[i].Path)
	}
	// Tie-break: source file, then line, then higher confidence first.
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := &sorted[i], &sorted[j]
		if a.SourceFile != b.SourceFile {
			return a.SourceFile < b.SourceFile
		}
		if a.SourceLine != b.SourceLine {
			return a.SourceLine < b.SourceLine
		}
		return a.Confidence > b.Confidence
	})

	type key struct{ method, path string }
	merged := make(map[key]*facts.Endpoint)
	var order []key
	for i := range sorted {
		e := &sorted[i]
		k := key{e.Method, e.NormalizedPath}
		cur, ok := merged[k]
		if !ok {
			cp := *e
			merged[k] = &cp
			order = append(order, k)
			continue
		}
		mergeInto(cur, e)
	}

	out := make([]facts.Endpoint, 0, len(merged))
	for _, k := range order {
		e := merged[k]
		e.ID = gen.Endpoint(e.Method, e.NormalizedPath)
		out = append(out, *e)
	}
	// Final order is by identity, not arrival.
	sort.Slice(out, func(i, j int) bool {
		if out[i].NormalizedPath != out[j].NormalizedPath {
			return out[i].NormalizedPath < out[j].NormalizedPath
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// mergeInto folds a colliding fact into the accumulated endpoint: max
// confidence, OR'd auth, unioned roles and flags, first non-null schemas.
func mergeInto(dst, src *facts.Endpoint) {
	if src.Confidence > dst.Confidence {
		dst.Confidence = src.Confidence
	}
	dst.AuthRequired = dst.AuthRequired || src.AuthRequired
	if dst.AuthType == "" {
		dst.AuthType = src.AuthType
	}
	dst.Roles = dst.Roles.Union(src.Roles)
	dst.Flags = dst.Flags.Union(src.Flags)
	if dst.RequestBody == nil {
		dst.RequestBody = src.RequestBody
	}
	if dst.ResponseSchema == nil {
		dst.ResponseSchema = src.ResponseSchema
	}
	if len(dst.PathParams) == 0 {
		dst.PathParams = src.PathParams
	}
	if len(dst.QueryParams) == 0 {
		dst.QueryParams = src.QueryParams
	}
	if dst.Framework == "" {
		dst.Framework = src.Framework
	}
}

// MergePages groups page facts by route. A page merged from multiple sources
// unions its locators, never replaces them.
func MergePages(in []facts.Page, gen facts.IDGen) []facts.Page {
	sorted := make([]facts.Page, len(in))
	copy(sorted, in)
	for i := range sorted {
		sorted[i].NormalizedRoute = NormalizePath(sorted[i].Route)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := &sorted[i], &sorted[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		return a.Confidence > b.Confidence
	})

	merged := make(map[string]*facts.Page)
	var order []string
	for i := range sorted {
		p := &sorted[i]
		k := p.NormalizedRoute
		cur, ok := merged[k]
		if !ok {
			cp := *p
			merged[k] = &cp
			order = append(order, k)
			continue
		}
		mergePageInto(cur, p)
	}

	out := make([]facts.Page, 0, len(merged))
	for _, k := range order {
		p := merged[k]
		p.ID = gen.Page(p.NormalizedRoute)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].NormalizedRoute < out[j].NormalizedRoute
	})
	return out
}

func mergePageInto(dst, src *facts.Page) {
	if src.Confidence > dst.Confidence {
		dst.Confidence = src.Confidence
	}
	dst.AuthRequired = dst.AuthRequired || src.AuthRequired
	dst.Roles = dst.Roles.Union(src.Roles)
	dst.IsDynamic = dst.IsDynamic || src.IsDynamic
	if dst.Title == "" {
		dst.Title = src.Title
	}
	if dst.FilePath == "" {
		dst.FilePath = src.FilePath
	}
	if len(dst.RouteParams) == 0 {
		dst.RouteParams = src.RouteParams
	}
	dst.Locators = UnionLocators(dst.Locators, src.Locators)
	if len(dst.FormFlows) == 0 {
		dst.FormFlows = src.FormFlows
	}
	dst.NavigationLinks = unionStrings(dst.NavigationLinks, src.NavigationLinks)
	dst.LinkedEndpointIDs = dst.LinkedEndpointIDs.Union(src.LinkedEndpointIDs)
}

// UnionLocators appends locators whose selector text the page does not
// already own. Existing locators always win; union, not replace.
func UnionLocators(dst, src []facts.Locator) []facts.Locator {
	seen := make(map[string]bool, len(dst))
	for i := range dst {
		seen[dst[i].Selector] = true
	}
	for i := range src {
		if seen[src[i].Selector] {
			continue
		}
		seen[src[i].Selector] = true
		dst = append(dst, src[i])
	}
	return dst
}

func unionStrings(dst, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, s := range dst {
		seen[s] = true
	}
	for _, s := range src {
		if seen[s] {
			continue
		}
		seen[s] = true
		dst = append(dst, s)
	}
	return dst
}
