package blueprint

import (
	"time"

	"surveyor/internal/diag"
	"surveyor/internal/facts"
)

// AssembleOptions carries everything assembly needs besides the facts.
type AssembleOptions struct {
	IDGen facts.IDGen
	// SourceTexts maps a page's file path to its raw source, used for
	// literal URL linking. May be nil.
	SourceTexts map[string]string
	SourceDir   string
	Reporter    diag.Reporter
	// Now overrides the metadata timestamp in tests.
	Now func() time.Time
}

// Assemble merges, consolidates, scores, and links raw facts into the final
// blueprint. Inputs are not mutated; every stage works on its own copy.
func Assemble(endpoints []facts.Endpoint, pages []facts.Page, auth *facts.AuthFact, opts AssembleOptions) *Blueprint {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}

	eps := MergeEndpoints(endpoints, opts.IDGen)
	for i := range eps {
		eps[i].Confidence = ScoreEndpoint(&eps[i])
	}

	pgs := MergePages(pages, opts.IDGen)
	pgs = ConsolidateSPA(pgs, reporter)
	LinkEndpoints(eps, pgs, opts.SourceTexts, reporter)
	for i := range pgs {
		pgs[i].Confidence = ScorePage(&pgs[i])
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	locators := 0
	for i := range pgs {
		locators += len(pgs[i].Locators)
	}
	return &Blueprint{
		Endpoints: eps,
		Pages:     pgs,
		Auth:      auth,
		Meta: Meta{
			GeneratedAt:   now().UTC(),
			SourceDir:     opts.SourceDir,
			EndpointCount: len(eps),
			PageCount:     len(pgs),
			LocatorCount:  locators,
		},
	}
}
