package locator

import (
	"surveyor/internal/facts"
	"surveyor/internal/markup"
)

// widgetShape classifies well-known higher-level widgets by convention.
type widgetShape uint8

const (
	shapeHeading widgetShape = iota
	shapeTab
	shapeButton
	shapeLabeledInput
	shapeMenuItem
	shapeLink
	shapeAlert
	shapeDialog
)

// wellKnownWidgets is the fixed table of widget name -> extraction rule,
// consulted before the component registry. Names follow the common UI-kit
// conventions for each shape.
var wellKnownWidgets = map[string]widgetShape{
	"Heading":      shapeHeading,
	"Title":        shapeHeading,
	"PageHeader":   shapeHeading,
	"SectionTitle": shapeHeading,
	"CardTitle":    shapeHeading,

	"Tab":     shapeTab,
	"TabItem": shapeTab,

	"Button":       shapeButton,
	"IconButton":   shapeButton,
	"SubmitButton": shapeButton,
	"ActionButton": shapeButton,
	"Fab":          shapeButton,

	"TextField": shapeLabeledInput,
	"TextInput": shapeLabeledInput,
	"Input":     shapeLabeledInput,
	"FormField": shapeLabeledInput,
	"Select":    shapeLabeledInput,
	"Checkbox":  shapeLabeledInput,

	"MenuItem":     shapeMenuItem,
	"DropdownItem": shapeMenuItem,

	"Link":    shapeLink,
	"NavLink": shapeLink,

	"Alert":  shapeAlert,
	"Toast":  shapeAlert,
	"Banner": shapeAlert,

	"Modal":  shapeDialog,
	"Dialog": shapeDialog,
	"Drawer": shapeDialog,
}

// resolveWidget derives a role- or text-based locator directly from a
// well-known widget's call-site attributes and children. Returns nil when the
// tag is not in the table or the required text is not literal; registry
// resolution is the caller's next step only for unknown tags.
func (r *Resolver) resolveWidget(n *markup.Node) (*candidate, bool) {
	shape, known := wellKnownWidgets[n.Tag]
	if !known {
		return nil, false
	}

	text := n.LiteralText()
	labelAttr := func(names ...string) string {
		for _, a := range names {
			if v, ok := n.LiteralAttr(a); ok && v != "" {
				return v
			}
		}
		return ""
	}

	switch shape {
	case shapeHeading:
		name := text
		if name == "" {
			name = labelAttr("title", "text")
		}
		if name == "" {
			return nil, true
		}
		return &candidate{
			selector:   selRoleNamed("heading", name),
			name:       name,
			strategy:   facts.StrategyRole,
			kind:       facts.ElemHeading,
			confidence: confRole,
		}, true

	case shapeTab:
		if text == "" {
			return nil, true
		}
		return &candidate{
			selector:   selRoleNamed("tab", text),
			name:       text,
			strategy:   facts.StrategyRole,
			kind:       facts.ElemTab,
			confidence: confRole,
		}, true

	case shapeButton:
		name := text
		if name == "" {
			name = labelAttr("label", "aria-label", "title", "tooltip")
		}
		if name == "" {
			return nil, true
		}
		return &candidate{
			selector:   selRoleNamed("button", name),
			name:       name,
			strategy:   facts.StrategyRole,
			kind:       facts.ElemButton,
			confidence: confRole,
		}, true

	case shapeLabeledInput:
		label := labelAttr("label", "aria-label")
		if label == "" {
			return nil, true
		}
		return &candidate{
			selector:   selLabel(label),
			name:       label,
			strategy:   facts.StrategyLabel,
			kind:       facts.ElemInput,
			confidence: confAriaLabel,
		}, true

	case shapeMenuItem:
		name := text
		if name == "" {
			name = labelAttr("label")
		}
		if name == "" {
			return nil, true
		}
		return &candidate{
			selector:   selRoleNamed("menuitem", name),
			name:       name,
			strategy:   facts.StrategyRole,
			kind:       facts.ElemMenuItem,
			confidence: confRole,
		}, true

	case shapeLink:
		name := text
		if name == "" {
			name = labelAttr("label", "title")
		}
		if name == "" {
			return nil, true
		}
		return &candidate{
			selector:   selRoleNamed("link", name),
			name:       name,
			strategy:   facts.StrategyRole,
			kind:       facts.ElemLink,
			confidence: confRole,
		}, true

	case shapeAlert:
		if text != "" {
			return &candidate{
				selector:   selText(text),
				name:       text,
				strategy:   facts.StrategyText,
				kind:       facts.ElemAlert,
				confidence: confRole,
			}, true
		}
		return &candidate{
			selector:   selRole("alert"),
			name:       "Alert",
			strategy:   facts.StrategyRole,
			kind:       facts.ElemAlert,
			confidence: confRole,
		}, true

	case shapeDialog:
		if title := labelAttr("title", "header"); title != "" {
			return &candidate{
				selector:   selRoleNamed("dialog", title),
				name:       title,
				strategy:   facts.StrategyRole,
				kind:       facts.ElemDialog,
				confidence: confRole,
			}, true
		}
		return &candidate{
			selector:   selRole("dialog"),
			name:       "Dialog",
			strategy:   facts.StrategyRole,
			kind:       facts.ElemDialog,
			confidence: confRole,
		}, true
	}
	return nil, true
}
