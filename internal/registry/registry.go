package registry

import (
	"sort"
)

// Registry maps component names to the locator templates their definitions
// produce. A component with no resolvable locator simply has no entry.
type Registry struct {
	byName map[string][]ComponentTemplate
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{byName: make(map[string][]ComponentTemplate)}
}

// Add appends a template under its component name.
func (r *Registry) Add(t ComponentTemplate) {
	r.byName[t.ComponentName] = append(r.byName[t.ComponentName], t)
}

// Lookup returns the templates registered for a component name.
func (r *Registry) Lookup(name string) []ComponentTemplate {
	return r.byName[name]
}

// Len returns the number of registered component names.
func (r *Registry) Len() int {
	return len(r.byName)
}

// Names returns all registered component names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
