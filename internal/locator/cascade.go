package locator

import (
	"strings"

	"surveyor/internal/facts"
	"surveyor/internal/markup"
	"surveyor/internal/registry"
)

// Cascade step confidences. The cascade is strict fallthrough: each step
// either returns a locator or declines, never retrying an earlier step.
const (
	confTestID        = 0.95
	confHTMLFor       = 0.92
	confWrappingLabel = 0.90
	confAriaLabel     = 0.85
	confPassword      = 0.75
	confRole          = 0.75
	confPlaceholder   = 0.70
	confNameAttr      = 0.65
	confBrittle       = 0.50
)

// Context flag penalties applied after the cascade resolves.
const (
	penaltyConditional = 0.10
	penaltyDynamicList = 0.15
	penaltyDynamicProp = 0.20
)

// candidate is an unresolved locator produced by a cascade step.
type candidate struct {
	selector   string
	name       string
	strategy   facts.Strategy
	kind       facts.ElementKind
	confidence float64
	flags      facts.FlagSet
	// templated marks registry-mode results whose selector carries
	// {{prop}} placeholders.
	templated bool
}

// Resolver applies the strategy cascade to one file's elements.
type Resolver struct {
	// HTMLFor maps element id -> label text from the file's
	// <label htmlFor=...> pre-pass.
	HTMLFor map[string]string
	// TestIDAttrs is the ordered list of conventional test-id attributes.
	TestIDAttrs []string
	// Props enables template mode for the registry pre-pass: attribute
	// expressions referencing a declared prop render as {{prop}}
	// placeholders instead of being treated as dynamic.
	Props map[string]bool
	// Registry resolves custom widget tags; nil in template mode to avoid
	// recursion into component resolution.
	Registry *registry.Registry
}

func (r *Resolver) testIDAttrs() []string {
	if len(r.TestIDAttrs) > 0 {
		return r.TestIDAttrs
	}
	return DefaultTestIDAttrs
}

// attrVal is the outcome of reading an attribute in the current mode.
type attrVal struct {
	text      string
	ok        bool // literal, or templated in template mode
	templated bool
	expr      string // raw expression when not ok
	present   bool
}

func (r *Resolver) attr(n *markup.Node, name string) attrVal {
	v, found := n.Attr(name)
	if !found {
		return attrVal{}
	}
	if v.Kind == markup.ValueLiteral {
		return attrVal{text: v.Text, ok: true, present: true}
	}
	if len(r.Props) > 0 {
		if tpl, ok := exprTemplate(v.Text, r.Props); ok {
			return attrVal{text: tpl, ok: true, templated: true, present: true}
		}
	}
	return attrVal{expr: v.Text, present: true}
}

// resolveNative runs the strict fallthrough cascade for a native HTML tag.
func (r *Resolver) resolveNative(n *markup.Node) *candidate {
	steps := []func(*markup.Node) *candidate{
		r.stepTestID,
		r.stepAriaLabel,
		r.stepWrappingLabel,
		r.stepHTMLFor,
		r.stepPassword,
		r.stepRole,
		r.stepPlaceholder,
		r.stepNameAttr,
		r.stepID,
		r.stepClass,
	}
	for _, step := range steps {
		if c := step(n); c != nil {
			return c
		}
	}
	return nil
}

// Step 1: explicit test-id attribute.
func (r *Resolver) stepTestID(n *markup.Node) *candidate {
	for _, attr := range r.testIDAttrs() {
		v := r.attr(n, attr)
		if !v.present {
			continue
		}
		if v.ok {
			return &candidate{
				selector:   selTestID(v.text),
				name:       humanize(v.text),
				strategy:   facts.StrategyTestID,
				kind:       kindFor(n),
				confidence: confTestID,
				templated:  v.templated,
			}
		}
		// Computed value: prefix-match on the static part instead of an
		// exact match that would never hold at runtime.
		prefix := literalPrefix(v.expr)
		name := humanize(prefix)
		if name == "" {
			name = humanize(n.Tag)
		}
		return &candidate{
			selector:   selTestIDPrefix(attr, prefix),
			name:       name,
			strategy:   facts.StrategyTestID,
			kind:       kindFor(n),
			confidence: confTestID,
			flags:      facts.NewFlagSet(facts.FlagDynamicTestID),
		}
	}
	return nil
}

// Step 2: aria-label with literal value.
func (r *Resolver) stepAriaLabel(n *markup.Node) *candidate {
	v := r.attr(n, "aria-label")
	if !v.ok || v.text == "" {
		return nil
	}
	c := &candidate{
		name:       v.text,
		kind:       kindFor(n),
		confidence: confAriaLabel,
		templated:  v.templated,
	}
	if role := roleFor(n); role != "" {
		c.selector = selRoleNamed(role, v.text)
		c.strategy = facts.StrategyRole
	} else {
		c.selector = selLabel(v.text)
		c.strategy = facts.StrategyLabel
	}
	return c
}

// Step 3: immediate parent is a <label> wrapping literal text, for text-entry
// controls other than password.
func (r *Resolver) stepWrappingLabel(n *markup.Node) *candidate {
	if n.Parent == nil || n.Parent.Tag != "label" {
		return nil
	}
	if !isTextEntry(n) || isPassword(n) {
		return nil
	}
	text := n.Parent.LiteralText()
	if text == "" {
		return nil
	}
	return &candidate{
		selector:   selLabel(text),
		name:       text,
		strategy:   facts.StrategyLabel,
		kind:       kindFor(n),
		confidence: confWrappingLabel,
	}
}

// Step 4: label linked via htmlFor to the element's own id.
func (r *Resolver) stepHTMLFor(n *markup.Node) *candidate {
	if len(r.HTMLFor) == 0 {
		return nil
	}
	id, ok := n.LiteralAttr("id")
	if !ok {
		return nil
	}
	text, ok := r.HTMLFor[id]
	if !ok || text == "" {
		return nil
	}
	return &candidate{
		selector:   selLabel(text),
		name:       text,
		strategy:   facts.StrategyLabel,
		kind:       kindFor(n),
		confidence: confHTMLFor,
	}
}

// Step 5: password inputs always use a type-attribute CSS selector. A
// label-based selector would collide with the label text the wrapping-label
// step is forbidden from using.
func (r *Resolver) stepPassword(n *markup.Node) *candidate {
	if !isPassword(n) {
		return nil
	}
	return &candidate{
		selector:   selCSS(`input[type="password"]`),
		name:       "Password",
		strategy:   facts.StrategyCSS,
		kind:       facts.ElemInput,
		confidence: confPassword,
	}
}

// Step 6: semantic role qualified by literal text content.
func (r *Resolver) stepRole(n *markup.Node) *candidate {
	role := roleFor(n)
	if role == "" {
		return nil
	}
	if n.Tag == "img" {
		alt := r.attr(n, "alt")
		if !alt.ok || alt.text == "" {
			return nil
		}
		return &candidate{
			selector:   selAltText(alt.text),
			name:       alt.text,
			strategy:   facts.StrategyAltText,
			kind:       facts.ElemImage,
			confidence: confRole,
			templated:  alt.templated,
		}
	}
	text := n.LiteralText()
	if text == "" {
		// Guard (a): structural roles are useless unnamed. Guard (b):
		// unqualified form-control roles are ambiguous on multi-field
		// forms; both fall through to the attribute steps.
		if namelessUnsafeRoles[role] || formControlRoles[role] {
			return nil
		}
		return &candidate{
			selector:   selRole(role),
			name:       humanize(n.Tag),
			strategy:   facts.StrategyRole,
			kind:       kindFor(n),
			confidence: confRole,
		}
	}
	if role == "heading" && strings.HasSuffix(text, "(") {
		// Suspected dynamic counter suffix, e.g. "Items (3)": match the
		// static prefix instead of the full text.
		prefix := strings.TrimRight(strings.TrimSuffix(text, "("), " ")
		return &candidate{
			selector:   selRolePrefix(role, prefix+" ("),
			name:       prefix,
			strategy:   facts.StrategyRole,
			kind:       facts.ElemHeading,
			confidence: confRole,
		}
	}
	return &candidate{
		selector:   selRoleNamed(role, text),
		name:       text,
		strategy:   facts.StrategyRole,
		kind:       kindFor(n),
		confidence: confRole,
	}
}

// Step 7: placeholder attribute.
func (r *Resolver) stepPlaceholder(n *markup.Node) *candidate {
	v := r.attr(n, "placeholder")
	if !v.ok || v.text == "" {
		return nil
	}
	return &candidate{
		selector:   selPlaceholder(v.text),
		name:       v.text,
		strategy:   facts.StrategyPlaceholder,
		kind:       kindFor(n),
		confidence: confPlaceholder,
		templated:  v.templated,
	}
}

// Step 8: name attribute on form controls. Required for form submission,
// therefore reliably present and unique within the form.
func (r *Resolver) stepNameAttr(n *markup.Node) *candidate {
	switch n.Tag {
	case "input", "select", "textarea":
	default:
		return nil
	}
	name, ok := n.LiteralAttr("name")
	if !ok || name == "" {
		return nil
	}
	return &candidate{
		selector:   selCSS(n.Tag + `[name="` + name + `"]`),
		name:       humanize(name),
		strategy:   facts.StrategyCSS,
		kind:       kindFor(n),
		confidence: confNameAttr,
	}
}

// Step 9: id attribute as a CSS id selector.
func (r *Resolver) stepID(n *markup.Node) *candidate {
	id, ok := n.LiteralAttr("id")
	if !ok || id == "" {
		return nil
	}
	return &candidate{
		selector:   selCSS("#" + id),
		name:       humanize(id),
		strategy:   facts.StrategyCSS,
		kind:       kindFor(n),
		confidence: confBrittle,
		flags:      facts.NewFlagSet(facts.FlagBrittle),
	}
}

// Step 10: first class in className as a CSS class selector.
func (r *Resolver) stepClass(n *markup.Node) *candidate {
	cls, ok := n.LiteralAttr("className")
	if !ok {
		cls, ok = n.LiteralAttr("class")
	}
	if !ok {
		return nil
	}
	fields := strings.Fields(cls)
	if len(fields) == 0 {
		return nil
	}
	return &candidate{
		selector:   selCSS("." + fields[0]),
		name:       humanize(fields[0]),
		strategy:   facts.StrategyCSS,
		kind:       kindFor(n),
		confidence: confBrittle,
		flags:      facts.NewFlagSet(facts.FlagBrittle),
	}
}

// BuildHTMLForMap pre-passes a file tree collecting id -> label text from
// <label htmlFor="id">text</label> pairs.
func BuildHTMLForMap(root *markup.Node) map[string]string {
	out := make(map[string]string)
	markup.WalkElements(root, func(n *markup.Node) bool {
		if n.Tag != "label" {
			return true
		}
		id, ok := n.LiteralAttr("htmlFor")
		if !ok {
			id, ok = n.LiteralAttr("for")
		}
		if !ok || id == "" {
			return true
		}
		if text := n.LiteralText(); text != "" {
			out[id] = text
		}
		return true
	})
	return out
}
