package blueprint

import (
	"surveyor/internal/facts"
)

// Endpoint confidence penalties. Applied to a fresh base of 1.0 after
// merging; the result is clamped to [0, 1].
const (
	penaltyUnresolvedPrefix = 0.20
	penaltyDynamicPath      = 0.15
	penaltyConditionalRoute = 0.10
	penaltyNoBody           = 0.25
	penaltyInferredBody     = 0.15
	penaltyTypedBody        = 0.10
	penaltyUnknownAuth      = 0.10
)

// Page confidence penalties, applied to the base extraction confidence.
const (
	penaltyDynamicRoute = 0.05
	penaltyNoLocators   = 0.20
)

// ScoreEndpoint recomputes a merged endpoint's confidence from its flags,
// body source, and auth classification.
func ScoreEndpoint(e *facts.Endpoint) float64 {
	score := 1.0
	if e.Flags.Has(facts.FlagUnresolvedPathPrefix) {
		score -= penaltyUnresolvedPrefix
	}
	if e.Flags.Has(facts.FlagDynamicPath) {
		score -= penaltyDynamicPath
	}
	if e.Flags.Has(facts.FlagConditionalRoute) {
		score -= penaltyConditionalRoute
	}
	// Body-source penalty only where a body is conventionally expected;
	// a GET without a body is not a weaker extraction.
	if e.ExpectsBody() {
		switch e.BodyKindOf() {
		case facts.BodyNone:
			score -= penaltyNoBody
		case facts.BodyInferred:
			score -= penaltyInferredBody
		case facts.BodyTyped:
			score -= penaltyTypedBody
		case facts.BodyValidated:
			// схема подтверждена валидатором, штрафа нет
		}
	}
	if e.AuthRequired && e.AuthType == "" {
		score -= penaltyUnknownAuth
	}
	return facts.Clamp01(score)
}

// ScorePage recomputes a page's confidence from its base extraction
// confidence, route shape, and locator coverage.
func ScorePage(p *facts.Page) float64 {
	score := p.Confidence
	if score == 0 {
		score = 1.0
	}
	if HasDynamicSegments(p.NormalizedRoute) {
		score -= penaltyDynamicRoute
	}
	if len(p.Locators) == 0 {
		score -= penaltyNoLocators
	}
	return facts.Clamp01(score)
}
