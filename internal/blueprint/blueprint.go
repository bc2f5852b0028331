// Package blueprint assembles raw endpoint and page facts into the single
// canonical, deduplicated, confidence-scored representation of a target
// application's API and UI surface.
package blueprint

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"surveyor/internal/facts"
)

// Meta records provenance for one assembled blueprint.
type Meta struct {
	GeneratedAt   time.Time `json:"generatedAt"`
	SourceDir     string    `json:"sourceDir,omitempty"`
	EndpointCount int       `json:"endpointCount"`
	PageCount     int       `json:"pageCount"`
	LocatorCount  int       `json:"locatorCount"`
}

// Blueprint is the fully merged, scored, linked intermediate representation.
// It is immutable once assembled; the chunker and generator only read it.
type Blueprint struct {
	Endpoints []facts.Endpoint `json:"endpoints"`
	Pages     []facts.Page     `json:"pages"`
	Auth      *facts.AuthFact  `json:"auth,omitempty"`
	Meta      Meta             `json:"meta"`
}

// Empty reports whether the blueprint carries no surface at all.
func (b *Blueprint) Empty() bool {
	return len(b.Endpoints) == 0 && len(b.Pages) == 0
}

// WriteJSON persists the blueprint; the JSON shape is a direct serialization
// of the data model and round-trips losslessly.
func (b *Blueprint) WriteJSON(path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal blueprint: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write blueprint: %w", err)
	}
	return nil
}

// ReadJSON loads a previously persisted blueprint.
func ReadJSON(path string) (*Blueprint, error) {
	// #nosec G304 -- path comes from the CLI
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read blueprint: %w", err)
	}
	var b Blueprint
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse blueprint %s: %w", path, err)
	}
	return &b, nil
}
