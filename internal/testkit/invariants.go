package testkit

import (
	"fmt"

	"surveyor/internal/blueprint"
	"surveyor/internal/chunker"
)

// CheckBlueprintInvariants runs the structural invariants every assembled
// blueprint must satisfy:
// 1) no two endpoints share (method, normalizedPath)
// 2) selector expressions are unique within each page
// 3) every confidence lies in [0, 1]
// 4) linked endpoint IDs on pages and form flows refer to real endpoints
func CheckBlueprintInvariants(bp *blueprint.Blueprint) error {
	if bp == nil {
		return fmt.Errorf("nil blueprint")
	}

	// 1) endpoint key uniqueness
	epKeys := make(map[string]bool, len(bp.Endpoints))
	epIDs := make(map[string]bool, len(bp.Endpoints))
	for i := range bp.Endpoints {
		e := &bp.Endpoints[i]
		k := e.Method + " " + e.NormalizedPath
		if epKeys[k] {
			return fmt.Errorf("duplicate endpoint key %q", k)
		}
		epKeys[k] = true
		epIDs[e.ID] = true
		if e.Confidence < 0 || e.Confidence > 1 {
			return fmt.Errorf("endpoint %s confidence %v out of [0,1]", k, e.Confidence)
		}
	}

	// 2) selector uniqueness per page; 3) confidence bounds; 4) link targets
	for i := range bp.Pages {
		p := &bp.Pages[i]
		if p.Confidence < 0 || p.Confidence > 1 {
			return fmt.Errorf("page %s confidence %v out of [0,1]", p.NormalizedRoute, p.Confidence)
		}
		selectors := make(map[string]bool, len(p.Locators))
		for j := range p.Locators {
			l := &p.Locators[j]
			if selectors[l.Selector] {
				return fmt.Errorf("page %s has duplicate selector %q", p.NormalizedRoute, l.Selector)
			}
			selectors[l.Selector] = true
			if l.Confidence < 0 || l.Confidence > 1 {
				return fmt.Errorf("locator %q confidence %v out of [0,1]", l.Selector, l.Confidence)
			}
		}
		for _, id := range p.LinkedEndpointIDs {
			if !epIDs[id] {
				return fmt.Errorf("page %s links unknown endpoint %q", p.NormalizedRoute, id)
			}
		}
		for j := range p.FormFlows {
			ff := &p.FormFlows[j]
			if ff.LinkedEndpointID != "" && !epIDs[ff.LinkedEndpointID] {
				return fmt.Errorf("form %s on %s links unknown endpoint %q",
					ff.Name, p.NormalizedRoute, ff.LinkedEndpointID)
			}
		}
	}
	return nil
}

// CheckChunkInvariants verifies a chunking result against its blueprint:
// a non-empty blueprint yields at least one chunk, no chunk is empty, and
// the chunks' flattened surface equals the blueprint's.
func CheckChunkInvariants(bp *blueprint.Blueprint, chunks []chunker.Chunk) error {
	if !bp.Empty() && len(chunks) == 0 {
		return fmt.Errorf("non-empty blueprint produced zero chunks")
	}
	epTotal, pgTotal := 0, 0
	names := make(map[string]bool, len(chunks))
	for i := range chunks {
		c := &chunks[i]
		if len(c.Endpoints) == 0 && len(c.Pages) == 0 {
			return fmt.Errorf("chunk %s is empty", c.OutputName)
		}
		if names[c.OutputName] {
			return fmt.Errorf("duplicate chunk output name %q", c.OutputName)
		}
		names[c.OutputName] = true
		if len(c.Pages) > 0 && !c.HasPages {
			return fmt.Errorf("chunk %s has pages but hasPages=false", c.OutputName)
		}
		epTotal += len(c.Endpoints)
		pgTotal += len(c.Pages)
	}
	if epTotal != len(bp.Endpoints) {
		return fmt.Errorf("chunks carry %d endpoints, blueprint has %d", epTotal, len(bp.Endpoints))
	}
	if pgTotal != len(bp.Pages) {
		return fmt.Errorf("chunks carry %d pages, blueprint has %d", pgTotal, len(bp.Pages))
	}
	return nil
}
