package locator

import (
	"testing"

	"surveyor/internal/diag"
	"surveyor/internal/facts"
	"surveyor/internal/markup"
)

func pageTree(root *markup.Node) *facts.TreeFact {
	markup.Link(root)
	return &facts.TreeFact{FilePath: "src/pages/checkout.tsx", Root: root}
}

func TestResolvePageUniqueSelectors(t *testing.T) {
	root := el("div", nil,
		el("button", map[string]string{"data-testid": "save"}, text("Save")),
		el("button", map[string]string{"data-testid": "save"}, text("Save")),
		el("input", map[string]string{"type": "text", "placeholder": "Name"}),
	)
	res := ResolvePage(pageTree(root), "/checkout", nil, ResolveOptions{})
	if len(res.Locators) != 2 {
		t.Fatalf("locators = %d, want 2 (duplicate selector collapsed)", len(res.Locators))
	}
	seen := map[string]bool{}
	for _, l := range res.Locators {
		if seen[l.Selector] {
			t.Errorf("duplicate selector %q in page output", l.Selector)
		}
		seen[l.Selector] = true
		if l.ID == "" {
			t.Error("locator without ID")
		}
	}
}

func TestResolvePageComponentDedupedAgainstNative(t *testing.T) {
	reg := BuildRegistry([]facts.TreeFact{iconButtonTree()}, RegistryOptions{}, diag.NopReporter{})
	// The component resolves to the same selector text the native button
	// already produced; the component locator must be the one dropped.
	root := el("div", nil,
		&markup.Node{Kind: markup.NodeElement, Tag: "IconButton",
			Attrs: []markup.Attr{{Name: "label", Value: markup.AttrValue{Kind: markup.ValueLiteral, Text: "Export"}}}},
		el("button", map[string]string{"aria-label": "Export"}),
	)
	res := ResolvePage(pageTree(root), "/reports", reg, ResolveOptions{})
	if len(res.Locators) != 1 {
		t.Fatalf("locators = %d, want 1", len(res.Locators))
	}
	if res.Locators[0].Selector != "getByRole('button', { name: 'Export' })" {
		t.Errorf("selector = %q", res.Locators[0].Selector)
	}
}

func TestResolvePageContextFlags(t *testing.T) {
	btn := el("button", nil, text("Delete"))
	btn.Context = markup.ContextConditional
	item := el("li", nil, el("span", map[string]string{"data-testid": "row"}))
	item.Context = markup.ContextListItem
	root := el("div", nil, btn, item)

	res := ResolvePage(pageTree(root), "/items", nil, ResolveOptions{})
	byName := map[string]facts.Locator{}
	for _, l := range res.Locators {
		byName[l.Selector] = l
	}

	del := byName["getByRole('button', { name: 'Delete' })"]
	if !del.IsConditional || !del.Flags.Has(facts.FlagConditionalElement) {
		t.Errorf("conditional element not flagged: %+v", del)
	}
	if del.Confidence != facts.Clamp01(confRole-penaltyConditional) {
		t.Errorf("conditional confidence = %v", del.Confidence)
	}

	row := byName["getByTestId('row')"]
	if !row.IsDynamic || !row.Flags.Has(facts.FlagDynamicList) {
		t.Errorf("list element not flagged: %+v", row)
	}
}

func TestResolvePageNavLinks(t *testing.T) {
	root := el("nav", nil,
		el("a", map[string]string{"href": "/settings"}, text("Settings")),
		el("a", map[string]string{"href": "/settings"}, text("Settings again")),
		el("a", map[string]string{"href": "https://external.example"}, text("Docs")),
	)
	res := ResolvePage(pageTree(root), "/", nil, ResolveOptions{})
	if len(res.NavigationLinks) != 1 || res.NavigationLinks[0] != "/settings" {
		t.Errorf("nav links = %v", res.NavigationLinks)
	}
}

func TestFormFlowExtraction(t *testing.T) {
	form := el("form", map[string]string{"action": "/api/login", "method": "post", "name": "login"},
		el("label", nil, text("Email"), el("input", map[string]string{"type": "email"})),
		el("input", map[string]string{"type": "password"}),
		el("button", map[string]string{"type": "submit"}, text("Sign in")),
	)
	root := el("main", nil, form)
	res := ResolvePage(pageTree(root), "/login", nil, ResolveOptions{})

	if len(res.FormFlows) != 1 {
		t.Fatalf("flows = %d, want 1", len(res.FormFlows))
	}
	flow := res.FormFlows[0]
	if flow.TargetPath != "/api/login" || flow.TargetMethod != "POST" {
		t.Errorf("target = %s %s", flow.TargetMethod, flow.TargetPath)
	}
	if len(flow.Steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(flow.Steps))
	}
	if flow.Steps[0].Action != facts.ActionFill || flow.Steps[0].Selector != "getByLabel('Email')" {
		t.Errorf("step 1 = %+v", flow.Steps[0])
	}
	if flow.Steps[0].TestValue != "user@example.com" {
		t.Errorf("email test value = %q", flow.Steps[0].TestValue)
	}
	if flow.Steps[1].Selector != `locator('input[type="password"]')` {
		t.Errorf("step 2 = %+v", flow.Steps[1])
	}
	last := flow.Steps[len(flow.Steps)-1]
	if last.Action != facts.ActionClick || last.FieldKind != "submit" {
		t.Errorf("last step = %+v", last)
	}
	for i, s := range flow.Steps {
		if s.Order != i+1 {
			t.Errorf("step %d order = %d", i, s.Order)
		}
	}
}

func TestFormFlowSelectAndCheckbox(t *testing.T) {
	form := el("form", nil,
		el("select", map[string]string{"name": "country"},
			el("option", map[string]string{"value": "us"}, text("United States")),
		),
		el("input", map[string]string{"type": "checkbox", "name": "terms"}),
	)
	root := el("div", nil, form)
	res := ResolvePage(pageTree(root), "/signup", nil, ResolveOptions{})
	if len(res.FormFlows) != 1 {
		t.Fatalf("flows = %d", len(res.FormFlows))
	}
	steps := res.FormFlows[0].Steps
	if steps[0].Action != facts.ActionSelect || steps[0].TestValue != "us" {
		t.Errorf("select step = %+v", steps[0])
	}
	if steps[1].Action != facts.ActionCheck || steps[1].TestValue != "" {
		t.Errorf("checkbox step = %+v", steps[1])
	}
}

func TestExprHelpers(t *testing.T) {
	props := map[string]bool{"label": true, "id": true}
	if got, ok := exprTemplate("label", props); !ok || got != "{{label}}" {
		t.Errorf("exprTemplate ident = %q, %v", got, ok)
	}
	if got, ok := exprTemplate("`row-${id}`", props); !ok || got != "row-{{id}}" {
		t.Errorf("exprTemplate tpl = %q, %v", got, ok)
	}
	if _, ok := exprTemplate("somethingElse", props); ok {
		t.Error("unknown ident must not template")
	}
	if _, ok := exprTemplate("`x-${unknown}`", props); ok {
		t.Error("unknown interpolation must not template")
	}
	if got := literalPrefix("`item-${id}`"); got != "item-" {
		t.Errorf("literalPrefix = %q", got)
	}
	if got := literalPrefix(`"pre" + x`); got != "pre" {
		t.Errorf("literalPrefix concat = %q", got)
	}
	if got := literalPrefix("dynamic"); got != "" {
		t.Errorf("literalPrefix ident = %q", got)
	}
}
