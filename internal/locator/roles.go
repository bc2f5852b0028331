package locator

import (
	"surveyor/internal/facts"
	"surveyor/internal/markup"
)

// DefaultTestIDAttrs is the fixed set of conventional test-id attribute
// names, checked in order. Overridable via the project manifest.
var DefaultTestIDAttrs = []string{
	"data-testid",
	"data-test-id",
	"data-test",
	"data-cy",
	"data-qa",
}

// tagRoles maps native tags to their implicit ARIA role.
var tagRoles = map[string]string{
	"button":   "button",
	"a":        "link",
	"select":   "combobox",
	"textarea": "textbox",
	"nav":      "navigation",
	"main":     "main",
	"form":     "form",
	"ul":       "list",
	"ol":       "list",
	"li":       "listitem",
	"table":    "table",
	"tbody":    "rowgroup",
	"thead":    "rowgroup",
	"dialog":   "dialog",
	"img":      "img",
	"option":   "option",
	"header":   "banner",
	"footer":   "contentinfo",
	"aside":    "complementary",
	"section":  "region",
	"h1":       "heading",
	"h2":       "heading",
	"h3":       "heading",
	"h4":       "heading",
	"h5":       "heading",
	"h6":       "heading",
}

// inputTypeRoles maps input type attributes to roles. Password is absent on
// purpose; it never resolves through a role or label.
var inputTypeRoles = map[string]string{
	"text":     "textbox",
	"email":    "textbox",
	"tel":      "textbox",
	"url":      "textbox",
	"search":   "searchbox",
	"number":   "spinbutton",
	"checkbox": "checkbox",
	"radio":    "radio",
	"range":    "slider",
	"submit":   "button",
	"button":   "button",
	"reset":    "button",
}

// namelessUnsafeRoles are structural roles that are ambiguous or useless when
// no qualifying text exists; step 6 skips them entirely in that case.
var namelessUnsafeRoles = map[string]bool{
	"main":          true,
	"navigation":    true,
	"list":          true,
	"listitem":      true,
	"form":          true,
	"table":         true,
	"rowgroup":      true,
	"banner":        true,
	"contentinfo":   true,
	"complementary": true,
	"region":        true,
}

// formControlRoles need a qualifying name: an unqualified role match on a
// multi-field form is ambiguous at runtime, so step 6 falls through to the
// attribute-based steps instead.
var formControlRoles = map[string]bool{
	"textbox":    true,
	"combobox":   true,
	"checkbox":   true,
	"radio":      true,
	"spinbutton": true,
	"switch":     true,
	"slider":     true,
	"searchbox":  true,
}

// textEntryTypes are input types fillable as text; password is excluded so a
// wrapping label can never produce a password locator.
var textEntryTypes = map[string]bool{
	"text":   true,
	"email":  true,
	"tel":    true,
	"url":    true,
	"search": true,
	"number": true,
	"":       true, // type defaults to text
}

// roleFor derives the semantic role for a native element, or "" when the tag
// has none.
func roleFor(n *markup.Node) string {
	if n.Tag == "input" {
		typ, _ := n.LiteralAttr("type")
		return inputTypeRoles[typ]
	}
	return tagRoles[n.Tag]
}

// kindFor classifies a native element.
func kindFor(n *markup.Node) facts.ElementKind {
	switch n.Tag {
	case "button":
		return facts.ElemButton
	case "a":
		return facts.ElemLink
	case "select":
		return facts.ElemSelect
	case "textarea":
		return facts.ElemTextarea
	case "img":
		return facts.ElemImage
	case "form":
		return facts.ElemForm
	case "dialog":
		return facts.ElemDialog
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return facts.ElemHeading
	case "input":
		typ, _ := n.LiteralAttr("type")
		switch typ {
		case "checkbox":
			return facts.ElemCheckbox
		case "radio":
			return facts.ElemRadio
		case "submit", "button", "reset":
			return facts.ElemButton
		default:
			return facts.ElemInput
		}
	case "p", "span", "label":
		return facts.ElemText
	}
	return facts.ElemGeneric
}

// isTextEntry reports whether the element accepts typed text and is not a
// password field.
func isTextEntry(n *markup.Node) bool {
	if n.Tag == "textarea" {
		return true
	}
	if n.Tag != "input" {
		return false
	}
	typ, ok := n.LiteralAttr("type")
	if !ok {
		typ = ""
	}
	return textEntryTypes[typ]
}

func isPassword(n *markup.Node) bool {
	if n.Tag != "input" {
		return false
	}
	typ, _ := n.LiteralAttr("type")
	return typ == "password"
}
