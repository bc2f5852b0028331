package facts

import (
	"surveyor/internal/markup"
)

// Framework identifies a detected framework in the target repository.
type Framework string

// PageFact is a raw page observation before locator resolution. Router
// extractors emit route-only facts (FromRouter=true, no tree); UI extractors
// emit component facts whose route is derived from the file name and whose
// tree carries the renderable elements.
type PageFact struct {
	Route        string
	Title        string
	FilePath     string
	AuthRequired bool
	Roles        StrSet
	FromRouter   bool
	Confidence   float64
	SourceLine   int
}

// TreeFact is one parsed element tree delivered by the external parser,
// keyed by the source file it came from.
type TreeFact struct {
	FilePath   string
	Component  string   // declared component name, when the file defines one
	Props      []string // declared component parameter names
	SourceText string   // raw source, used for literal URL linking
	Root       *markup.Node
}

// Extractor is the closed contract framework-specific fact producers
// implement. Implementations are registered once and dispatched by the
// capability-detection result at pipeline start; this core only consumes
// their output.
type Extractor interface {
	// Name identifies the extractor in diagnostics.
	Name() string
	// CanHandle reports whether the extractor applies to any of the
	// detected frameworks.
	CanHandle(detected []Framework) bool
	// Extract produces endpoint facts from the given source files.
	// Output may contain duplicates and low-confidence entries;
	// assembly dedups and rescores later.
	Extract(files []string) ([]Endpoint, error)
}

// ExtractorSet is the resolved list of applicable extractors for one run.
type ExtractorSet struct {
	extractors []Extractor
}

// SelectExtractors filters registered extractors down to those that can
// handle the detected frameworks. Resolution happens once per pipeline.
func SelectExtractors(registered []Extractor, detected []Framework) ExtractorSet {
	var out []Extractor
	for _, e := range registered {
		if e.CanHandle(detected) {
			out = append(out, e)
		}
	}
	return ExtractorSet{extractors: out}
}

// Extractors returns the selected extractors in registration order.
func (s ExtractorSet) Extractors() []Extractor {
	return s.extractors
}

// Len returns the number of selected extractors.
func (s ExtractorSet) Len() int {
	return len(s.extractors)
}
