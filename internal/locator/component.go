package locator

import (
	"path/filepath"
	"strings"

	"surveyor/internal/diag"
	"surveyor/internal/facts"
	"surveyor/internal/markup"
	"surveyor/internal/registry"
	"surveyor/internal/source"
)

// DefaultRouteDirs are path segments marking route/page directories. Files
// under them are call sites for the resolution engine, not component
// definitions, even when PascalCase.
var DefaultRouteDirs = []string{"routes", "pages", "app", "views"}

// RegistryOptions configures the component pre-pass.
type RegistryOptions struct {
	RouteDirs   []string // defaults to DefaultRouteDirs
	TestIDAttrs []string
}

func (o RegistryOptions) routeDirs() []string {
	if len(o.RouteDirs) > 0 {
		return o.RouteDirs
	}
	return DefaultRouteDirs
}

// underRouteDir reports whether any path segment names a route directory.
func underRouteDir(path string, routeDirs []string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		for _, rd := range routeDirs {
			if seg == rd {
				return true
			}
		}
	}
	return false
}

// componentName derives the component name from the file name, or from the
// parent directory for index files. Returns "" when the name is not
// PascalCase.
func componentName(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if strings.EqualFold(name, "index") {
		name = filepath.Base(filepath.Dir(path))
	}
	if !markup.IsPascalCase(name) {
		return ""
	}
	return name
}

// BuildRegistry pre-passes component definition trees and returns the
// component-name -> template table. A component with no resolvable
// HTML-native locator contributes no entries; that is an outcome, not an
// error.
func BuildRegistry(trees []facts.TreeFact, opts RegistryOptions, rep diag.Reporter) *registry.Registry {
	reg := registry.New()
	for i := range trees {
		tf := &trees[i]
		name := tf.Component
		if name == "" {
			name = componentName(tf.FilePath)
		}
		if name == "" {
			continue
		}
		if underRouteDir(tf.FilePath, opts.routeDirs()) {
			diag.ReportInfo(rep, diag.RegistryExcludedRoute, source.Span{},
				tf.FilePath+": under a route directory, consumed as call sites")
			continue
		}

		props := make(map[string]bool, len(tf.Props))
		for _, p := range tf.Props {
			props[p] = true
		}
		// Template mode: no Registry, so the cascade cannot recurse into
		// component resolution.
		res := &Resolver{
			HTMLFor:     BuildHTMLForMap(tf.Root),
			TestIDAttrs: opts.TestIDAttrs,
			Props:       props,
		}

		seen := map[string]bool{}
		found := 0
		markup.WalkElements(tf.Root, func(n *markup.Node) bool {
			if n.IsCustom() {
				// Nested custom widgets resolve at their own definition.
				return true
			}
			c := res.resolveNative(n)
			if c == nil {
				return true
			}
			if seen[c.selector] {
				return false
			}
			seen[c.selector] = true
			found++

			selTpl := registry.ParseTemplate(c.selector)
			reg.Add(registry.ComponentTemplate{
				ComponentName: name,
				PropNames:     selTpl.PropNames(),
				Selector:      selTpl,
				NameTemplate:  registry.ParseTemplate(c.name),
				Strategy:      c.strategy,
				ElementKind:   c.kind,
				IsInteractive: facts.InteractiveKinds[c.kind],
				Confidence:    c.confidence,
			})
			// The element resolved; its children belong to it.
			return false
		})
		if found == 0 {
			diag.ReportInfo(rep, diag.RegistryNoLocator, source.Span{},
				name+": no resolvable HTML-native locator")
		}
	}
	return reg
}

// resolveComponent resolves a non-native tag from the registry against the
// call site's literal prop values. Each matching template yields one
// candidate; props passed as non-literal expressions or absent become
// bracketed tokens with a DYNAMIC_PROP flag and reduced confidence.
func (r *Resolver) resolveComponent(n *markup.Node) []*candidate {
	if r.Registry == nil {
		return nil
	}
	templates := r.Registry.Lookup(n.Tag)
	if len(templates) == 0 {
		return nil
	}

	literal := make(map[string]string)
	for _, a := range n.Attrs {
		if a.Value.Kind == markup.ValueLiteral {
			literal[a.Name] = a.Value.Text
		}
	}

	var out []*candidate
	for _, tpl := range templates {
		sel := tpl.Selector.Render(literal)
		nameRes := tpl.NameTemplate.Render(literal)
		c := &candidate{
			selector:   sel.Selector,
			name:       nameRes.Selector,
			strategy:   tpl.Strategy,
			kind:       tpl.ElementKind,
			confidence: tpl.Confidence,
		}
		if sel.Dynamic {
			c.flags = c.flags.Add(facts.FlagDynamicProp)
			c.confidence = facts.Clamp01(c.confidence - penaltyDynamicProp)
		}
		out = append(out, c)
	}
	return out
}
