package blueprint

import (
	"regexp"

	"surveyor/internal/diag"
	"surveyor/internal/facts"
	"surveyor/internal/source"
)

// literalURLRe pulls quoted absolute paths out of raw source text. It accepts
// single, double, and backtick quoting and the common parameter decorations.
var literalURLRe = regexp.MustCompile("[\"'`](/[A-Za-z0-9_.:{}\\[\\]$/-]*)[\"'`]")

// LinkEndpoints cross-links pages to endpoints in place. Three rules apply,
// unioned: literal HTTP-call URLs found in the page's source text, a
// convention match on the first meaningful segment, and form submission
// targets. Form targets additionally record the endpoint on the flow itself.
func LinkEndpoints(endpoints []facts.Endpoint, pages []facts.Page, sources map[string]string, reporter diag.Reporter) {
	for i := range pages {
		p := &pages[i]
		linkLiteralURLs(endpoints, p, sources[p.FilePath])
		linkByConvention(endpoints, p)
		linkFormTargets(endpoints, p, reporter)
	}
}

func linkLiteralURLs(endpoints []facts.Endpoint, p *facts.Page, src string) {
	if src == "" {
		return
	}
	for _, m := range literalURLRe.FindAllStringSubmatch(src, -1) {
		url := NormalizePath(m[1])
		if url == "/" {
			continue
		}
		for j := range endpoints {
			e := &endpoints[j]
			if e.NormalizedPath == url || WildcardEqual(e.NormalizedPath, url) {
				p.LinkedEndpointIDs = p.LinkedEndpointIDs.Add(e.ID)
			}
		}
	}
}

func linkByConvention(endpoints []facts.Endpoint, p *facts.Page) {
	seg := FirstMeaningfulSegment(p.NormalizedRoute)
	if seg == "" {
		return
	}
	for j := range endpoints {
		if FirstMeaningfulSegment(endpoints[j].NormalizedPath) == seg {
			p.LinkedEndpointIDs = p.LinkedEndpointIDs.Add(endpoints[j].ID)
		}
	}
}

func linkFormTargets(endpoints []facts.Endpoint, p *facts.Page, reporter diag.Reporter) {
	for i := range p.FormFlows {
		ff := &p.FormFlows[i]
		if ff.TargetPath == "" {
			continue
		}
		target := NormalizePath(ff.TargetPath)
		method := ff.TargetMethod
		if method == "" {
			method = "POST"
		}
		var hit *facts.Endpoint
		for j := range endpoints {
			e := &endpoints[j]
			if e.Method != method {
				continue
			}
			if e.NormalizedPath == target || WildcardEqual(e.NormalizedPath, target) {
				hit = e
				break
			}
		}
		if hit == nil {
			diag.ReportWarning(reporter, diag.UnlinkedFormTarget, source.Span{},
				"form "+ff.Name+" on "+p.NormalizedRoute+" targets "+method+" "+target+" but no endpoint matches")
			continue
		}
		ff.LinkedEndpointID = hit.ID
		p.LinkedEndpointIDs = p.LinkedEndpointIDs.Add(hit.ID)
	}
}
