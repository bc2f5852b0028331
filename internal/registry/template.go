// Package registry holds the component-template table built by the pre-pass
// over custom-widget definitions. Templates are parsed into literal and
// placeholder segments so a prop named like surrounding literal text can
// never be substituted by accident.
package registry

import (
	"strings"

	"surveyor/internal/facts"
)

// SegmentKind discriminates template segments.
type SegmentKind uint8

const (
	// SegLiteral is verbatim selector text.
	SegLiteral SegmentKind = iota
	// SegPlaceholder is a {{prop}} hole filled at the call site.
	SegPlaceholder
)

// Segment is one piece of a parsed selector template.
type Segment struct {
	Kind SegmentKind
	Text string // literal text, or the prop name for placeholders
}

// Template is a parsed selector template.
type Template struct {
	Segments []Segment
}

// ParseTemplate splits a {{prop}} template string into segments. An unclosed
// "{{" is treated as literal text.
func ParseTemplate(s string) Template {
	var segs []Segment
	for len(s) > 0 {
		open := strings.Index(s, "{{")
		if open < 0 {
			segs = append(segs, Segment{Kind: SegLiteral, Text: s})
			break
		}
		closing := strings.Index(s[open:], "}}")
		if closing < 0 {
			segs = append(segs, Segment{Kind: SegLiteral, Text: s})
			break
		}
		if open > 0 {
			segs = append(segs, Segment{Kind: SegLiteral, Text: s[:open]})
		}
		segs = append(segs, Segment{Kind: SegPlaceholder, Text: s[open+2 : open+closing]})
		s = s[open+closing+2:]
	}
	return Template{Segments: segs}
}

// String reassembles the template's source form.
func (t Template) String() string {
	var b strings.Builder
	for _, seg := range t.Segments {
		if seg.Kind == SegPlaceholder {
			b.WriteString("{{")
			b.WriteString(seg.Text)
			b.WriteString("}}")
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// PropNames returns the placeholder names in first-appearance order, deduped.
func (t Template) PropNames() []string {
	var out []string
	seen := map[string]bool{}
	for _, seg := range t.Segments {
		if seg.Kind == SegPlaceholder && !seen[seg.Text] {
			seen[seg.Text] = true
			out = append(out, seg.Text)
		}
	}
	return out
}

// RenderResult is the outcome of substituting call-site prop values.
type RenderResult struct {
	Selector string
	// Dynamic is true when any placeholder had no literal value and was
	// substituted with a bracketed token.
	Dynamic bool
	// MissingProps lists placeholders that got the bracketed token.
	MissingProps []string
}

// Render substitutes each placeholder with the call site's literal value.
// A prop passed as a non-literal expression, or not passed at all, becomes a
// bracketed "[prop]" token and marks the result dynamic.
func (t Template) Render(literalProps map[string]string) RenderResult {
	var b strings.Builder
	res := RenderResult{}
	for _, seg := range t.Segments {
		if seg.Kind == SegLiteral {
			b.WriteString(seg.Text)
			continue
		}
		if v, ok := literalProps[seg.Text]; ok {
			b.WriteString(v)
			continue
		}
		b.WriteString("[")
		b.WriteString(seg.Text)
		b.WriteString("]")
		res.Dynamic = true
		res.MissingProps = append(res.MissingProps, seg.Text)
	}
	res.Selector = b.String()
	return res
}

// ComponentTemplate is one renderable locator a component definition
// contributes. Many templates may exist per component name.
type ComponentTemplate struct {
	ComponentName string
	PropNames     []string
	Selector      Template
	NameTemplate  Template // human-readable locator name, same placeholders
	Strategy      facts.Strategy
	ElementKind   facts.ElementKind
	IsInteractive bool
	Confidence    float64 // confidence of the cascade step that produced it
}
