package locator

import (
	"testing"

	"surveyor/internal/facts"
	"surveyor/internal/markup"
)

func el(tag string, attrs map[string]string, children ...*markup.Node) *markup.Node {
	n := &markup.Node{Kind: markup.NodeElement, Tag: tag, Children: children}
	for name, val := range attrs {
		n.Attrs = append(n.Attrs, markup.Attr{Name: name, Value: markup.AttrValue{Kind: markup.ValueLiteral, Text: val}})
	}
	markup.Link(n)
	return n
}

func elExpr(tag string, attr, expr string) *markup.Node {
	return &markup.Node{
		Kind: markup.NodeElement, Tag: tag,
		Attrs: []markup.Attr{{Name: attr, Value: markup.AttrValue{Kind: markup.ValueExpr, Text: expr}}},
	}
}

func text(s string) *markup.Node { return &markup.Node{Kind: markup.NodeText, Text: s} }

func TestStepTestID(t *testing.T) {
	r := &Resolver{}
	c := r.resolveNative(el("button", map[string]string{"data-testid": "save-btn"}, text("Save")))
	if c == nil {
		t.Fatal("no candidate")
	}
	if c.selector != "getByTestId('save-btn')" {
		t.Errorf("selector = %q", c.selector)
	}
	if c.strategy != facts.StrategyTestID || c.confidence != confTestID {
		t.Errorf("strategy/conf = %v/%v", c.strategy, c.confidence)
	}
	if c.name != "Save btn" {
		t.Errorf("name = %q", c.name)
	}
}

func TestStepTestIDDynamic(t *testing.T) {
	r := &Resolver{}
	c := r.resolveNative(elExpr("div", "data-testid", "`item-${id}`"))
	if c == nil {
		t.Fatal("no candidate")
	}
	if !c.flags.Has(facts.FlagDynamicTestID) {
		t.Error("DYNAMIC_TESTID flag missing")
	}
	if c.selector != `locator('[data-testid^="item-"]')` {
		t.Errorf("selector = %q, want prefix match", c.selector)
	}
}

func TestStepTestIDDynamicNoPrefix(t *testing.T) {
	r := &Resolver{}
	c := r.resolveNative(elExpr("div", "data-testid", "rowId"))
	if c == nil {
		t.Fatal("no candidate")
	}
	if c.selector != "locator('[data-testid]')" {
		t.Errorf("selector = %q, want attribute presence", c.selector)
	}
}

func TestStepAriaLabelWithRole(t *testing.T) {
	r := &Resolver{}
	c := r.resolveNative(el("button", map[string]string{"aria-label": "Close"}))
	if c == nil {
		t.Fatal("no candidate")
	}
	if c.selector != "getByRole('button', { name: 'Close' })" {
		t.Errorf("selector = %q", c.selector)
	}
	if c.confidence != confAriaLabel {
		t.Errorf("confidence = %v", c.confidence)
	}
}

func TestStepAriaLabelWithoutRole(t *testing.T) {
	r := &Resolver{}
	c := r.resolveNative(el("div", map[string]string{"aria-label": "Sidebar"}))
	if c == nil {
		t.Fatal("no candidate")
	}
	if c.selector != "getByLabel('Sidebar')" || c.strategy != facts.StrategyLabel {
		t.Errorf("selector/strategy = %q/%v", c.selector, c.strategy)
	}
}

// A label-wrapped email input gets a label locator, the
// password input next to it gets the CSS type selector, never label-based.
func TestWrappingLabelAndPassword(t *testing.T) {
	r := &Resolver{}
	email := el("input", map[string]string{"type": "email"})
	label := el("label", nil, text("Email"), email)
	_ = label

	c := r.resolveNative(email)
	if c == nil {
		t.Fatal("no candidate for email input")
	}
	if c.selector != "getByLabel('Email')" {
		t.Errorf("email selector = %q", c.selector)
	}
	if c.confidence != confWrappingLabel {
		t.Errorf("confidence = %v", c.confidence)
	}

	password := el("input", map[string]string{"type": "password"})
	pwLabel := el("label", nil, text("Password"), password)
	_ = pwLabel
	c = r.resolveNative(password)
	if c == nil {
		t.Fatal("no candidate for password input")
	}
	if c.selector != `locator('input[type="password"]')` {
		t.Errorf("password selector = %q, must be the CSS type selector", c.selector)
	}
	if c.strategy != facts.StrategyCSS || c.confidence != confPassword {
		t.Errorf("strategy/conf = %v/%v", c.strategy, c.confidence)
	}
}

func TestStepHTMLFor(t *testing.T) {
	r := &Resolver{HTMLFor: map[string]string{"email": "Work email"}}
	c := r.resolveNative(el("input", map[string]string{"type": "text", "id": "email"}))
	if c == nil {
		t.Fatal("no candidate")
	}
	if c.selector != "getByLabel('Work email')" || c.confidence != confHTMLFor {
		t.Errorf("selector/conf = %q/%v", c.selector, c.confidence)
	}
}

func TestBuildHTMLForMap(t *testing.T) {
	root := el("div", nil,
		el("label", map[string]string{"htmlFor": "name"}, text("Full name")),
		el("label", map[string]string{"for": "age"}, text("Age")),
		el("label", nil, text("Unlinked")),
	)
	m := BuildHTMLForMap(root)
	if m["name"] != "Full name" || m["age"] != "Age" {
		t.Errorf("map = %v", m)
	}
	if len(m) != 2 {
		t.Errorf("len = %d, want 2", len(m))
	}
}

func TestStepRoleWithText(t *testing.T) {
	r := &Resolver{}
	c := r.resolveNative(el("button", nil, text("Submit order")))
	if c == nil {
		t.Fatal("no candidate")
	}
	if c.selector != "getByRole('button', { name: 'Submit order' })" {
		t.Errorf("selector = %q", c.selector)
	}
}

func TestStepRoleNamelessUnsafeSkipped(t *testing.T) {
	r := &Resolver{}
	// A bare <nav> has a structural role and no text: step 6 must decline,
	// and with no attributes at all the cascade yields nothing.
	if c := r.resolveNative(el("nav", nil)); c != nil {
		t.Errorf("nav resolved to %q, want nothing", c.selector)
	}
	// With an id it falls through to the brittle id step instead.
	c := r.resolveNative(el("nav", map[string]string{"id": "main-nav"}))
	if c == nil {
		t.Fatal("no candidate")
	}
	if c.selector != "locator('#main-nav')" || !c.flags.Has(facts.FlagBrittle) {
		t.Errorf("selector/flags = %q/%v", c.selector, c.flags)
	}
}

func TestStepRoleFormControlUnqualifiedFallsThrough(t *testing.T) {
	r := &Resolver{}
	// Unqualified textbox role is ambiguous; name attribute wins instead.
	c := r.resolveNative(el("input", map[string]string{"type": "text", "name": "city"}))
	if c == nil {
		t.Fatal("no candidate")
	}
	if c.selector != `locator('input[name="city"]')` || c.confidence != confNameAttr {
		t.Errorf("selector/conf = %q/%v", c.selector, c.confidence)
	}
}

func TestStepRoleUnqualifiedButtonAllowed(t *testing.T) {
	r := &Resolver{}
	c := r.resolveNative(el("button", nil))
	if c == nil {
		t.Fatal("no candidate")
	}
	if c.selector != "getByRole('button')" {
		t.Errorf("selector = %q", c.selector)
	}
}

func TestHeadingDynamicCounterPrefix(t *testing.T) {
	r := &Resolver{}
	c := r.resolveNative(el("h2", nil, text("Items (")))
	if c == nil {
		t.Fatal("no candidate")
	}
	if c.selector != `getByRole('heading', { name: /^Items \(/ })` {
		t.Errorf("selector = %q", c.selector)
	}
	if c.name != "Items" {
		t.Errorf("name = %q", c.name)
	}
}

func TestStepAltText(t *testing.T) {
	r := &Resolver{}
	c := r.resolveNative(el("img", map[string]string{"alt": "Company logo"}))
	if c == nil {
		t.Fatal("no candidate")
	}
	if c.selector != "getByAltText('Company logo')" || c.strategy != facts.StrategyAltText {
		t.Errorf("selector/strategy = %q/%v", c.selector, c.strategy)
	}
	if got := r.resolveNative(el("img", nil)); got != nil {
		t.Errorf("alt-less img resolved to %q", got.selector)
	}
}

func TestStepPlaceholder(t *testing.T) {
	r := &Resolver{}
	c := r.resolveNative(el("input", map[string]string{"type": "search", "placeholder": "Search projects"}))
	if c == nil {
		t.Fatal("no candidate")
	}
	if c.selector != "getByPlaceholder('Search projects')" || c.confidence != confPlaceholder {
		t.Errorf("selector/conf = %q/%v", c.selector, c.confidence)
	}
}

func TestStepClassBrittle(t *testing.T) {
	r := &Resolver{}
	c := r.resolveNative(el("div", map[string]string{"className": "card card--wide"}))
	if c == nil {
		t.Fatal("no candidate")
	}
	if c.selector != "locator('.card')" || !c.flags.Has(facts.FlagBrittle) || c.confidence != confBrittle {
		t.Errorf("candidate = %+v", c)
	}
}

func TestCascadeNoMatch(t *testing.T) {
	r := &Resolver{}
	if c := r.resolveNative(el("div", nil)); c != nil {
		t.Errorf("bare div resolved to %q, want nothing", c.selector)
	}
}

func TestCascadeOrderTestIDWins(t *testing.T) {
	r := &Resolver{}
	n := el("button", map[string]string{"data-testid": "submit", "aria-label": "Submit"}, text("Submit"))
	c := r.resolveNative(n)
	if c == nil || c.strategy != facts.StrategyTestID {
		t.Errorf("test-id must win the cascade, got %+v", c)
	}
}
