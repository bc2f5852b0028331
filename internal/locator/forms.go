package locator

import (
	"strings"

	"surveyor/internal/facts"
	"surveyor/internal/markup"
)

// testValues maps input types to plausible test data for generated fills.
var testValues = map[string]string{
	"email":    "user@example.com",
	"password": "Str0ng!Passw0rd",
	"tel":      "+15550100",
	"url":      "https://example.com",
	"number":   "42",
	"date":     "2025-01-15",
	"search":   "query",
	"text":     "Test value",
	"":         "Test value",
}

// extractFormFlows builds one fill-and-submit flow per form element in the
// tree. Steps follow document order; the submit click is always last.
func extractFormFlows(tree *facts.TreeFact, pageRoute string, res *Resolver, gen facts.IDGen) []facts.FormFlow {
	forms := markup.FindAll(tree.Root, func(n *markup.Node) bool { return n.Tag == "form" })
	var out []facts.FormFlow
	for i, form := range forms {
		if flow := buildFormFlow(form, pageRoute, i, res, gen); flow != nil {
			out = append(out, *flow)
		}
	}
	return out
}

func buildFormFlow(form *markup.Node, pageRoute string, idx int, res *Resolver, gen facts.IDGen) *facts.FormFlow {
	var steps []facts.FormStep
	var submit *facts.FormStep

	markup.WalkElements(form, func(n *markup.Node) bool {
		if n == form {
			return true
		}
		switch n.Tag {
		case "input", "select", "textarea":
			typ, _ := n.LiteralAttr("type")
			if typ == "hidden" {
				return true
			}
			if typ == "submit" || typ == "button" || typ == "reset" {
				if typ == "submit" && submit == nil {
					if c := res.resolveNative(n); c != nil {
						submit = &facts.FormStep{Action: facts.ActionClick, Selector: c.selector, FieldKind: "submit"}
					}
				}
				return true
			}
			c := res.resolveNative(n)
			if c == nil {
				return true
			}
			steps = append(steps, facts.FormStep{
				Action:    actionFor(n, typ),
				Selector:  c.selector,
				TestValue: valueFor(n, typ),
				FieldKind: fieldKind(n, typ),
			})
		case "button":
			typ, hasType := n.LiteralAttr("type")
			isSubmit := typ == "submit" || !hasType // type defaults to submit inside a form
			if isSubmit && submit == nil {
				if c := res.resolveNative(n); c != nil {
					submit = &facts.FormStep{Action: facts.ActionClick, Selector: c.selector, FieldKind: "submit"}
				}
			}
		}
		return true
	})

	if len(steps) == 0 && submit == nil {
		return nil
	}
	if submit != nil {
		steps = append(steps, *submit)
	}
	for i := range steps {
		steps[i].Order = i + 1
	}

	name := formName(form, pageRoute, idx)
	testID := ""
	for _, attr := range res.testIDAttrs() {
		if v, ok := form.LiteralAttr(attr); ok {
			testID = v
			break
		}
	}

	flow := &facts.FormFlow{
		ID:           gen.FormFlow(pageRoute, name),
		Name:         name,
		TestID:       testID,
		Steps:        steps,
		TargetMethod: "POST",
	}
	if action, ok := form.LiteralAttr("action"); ok && action != "" {
		flow.TargetPath = action
	}
	if method, ok := form.LiteralAttr("method"); ok && method != "" {
		flow.TargetMethod = strings.ToUpper(method)
	}
	if hint, ok := form.LiteralAttr("data-redirect"); ok {
		flow.SuccessRedirectHint = hint
	}
	return flow
}

func actionFor(n *markup.Node, typ string) facts.FormAction {
	switch {
	case n.Tag == "select":
		return facts.ActionSelect
	case typ == "checkbox" || typ == "radio":
		return facts.ActionCheck
	default:
		return facts.ActionFill
	}
}

func valueFor(n *markup.Node, typ string) string {
	if n.Tag == "select" {
		// First literal option value, if any.
		for _, c := range n.Children {
			if c.Kind == markup.NodeElement && c.Tag == "option" {
				if v, ok := c.LiteralAttr("value"); ok && v != "" {
					return v
				}
				if t := c.LiteralText(); t != "" {
					return t
				}
			}
		}
		return ""
	}
	if typ == "checkbox" || typ == "radio" {
		return ""
	}
	if v, ok := testValues[typ]; ok {
		return v
	}
	return testValues["text"]
}

func fieldKind(n *markup.Node, typ string) string {
	if n.Tag != "input" {
		return n.Tag
	}
	if typ == "" {
		return "text"
	}
	return typ
}

func formName(form *markup.Node, pageRoute string, idx int) string {
	for _, attr := range []string{"name", "id", "aria-label"} {
		if v, ok := form.LiteralAttr(attr); ok && v != "" {
			return humanize(v)
		}
	}
	base := strings.Trim(pageRoute, "/")
	if base == "" {
		base = "root"
	}
	name := humanize(strings.ReplaceAll(base, "/", " ")) + " form"
	if idx > 0 {
		return name + " " + string(rune('1'+idx))
	}
	return name
}
