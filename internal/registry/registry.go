package registry

import "fmt"

// Registry is an ordered collection of tool descriptors keyed by slug.
type Registry struct {
	order []string
	tools map[string]*ToolDescriptor
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{tools: map[string]*ToolDescriptor{}}
}

// NewWithBuiltins returns a registry pre-populated with the built-in tools.
func NewWithBuiltins() *Registry {
	r := New()
	for _, d := range Builtins() {
		// Builtins are checked for uniqueness by tests; a clash here is a
		// programming error.
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a descriptor, or replaces the existing one for the same
// slug. Re-registering a slug with a different format is an error, as is a
// descriptor whose format has no registered writer semantics (unknown tag).
func (r *Registry) Register(d *ToolDescriptor) error {
	if d.Slug == "" {
		return fmt.Errorf("tool descriptor missing slug")
	}
	switch d.Format {
	case FormatText, FormatJSON, FormatYAML, FormatTOML, FormatMarkdown:
	default:
		return fmt.Errorf("tool %q has unknown format %q", d.Slug, d.Format)
	}
	if existing, ok := r.tools[d.Slug]; ok {
		if existing.Format != d.Format {
			return fmt.Errorf("tool %q already registered with format %q, cannot re-register as %q",
				d.Slug, existing.Format, d.Format)
		}
		r.tools[d.Slug] = d
		return nil
	}
	r.tools[d.Slug] = d
	r.order = append(r.order, d.Slug)
	return nil
}

// Get returns the descriptor for slug, or false when unknown.
func (r *Registry) Get(slug string) (*ToolDescriptor, bool) {
	d, ok := r.tools[slug]
	return d, ok
}

// List returns all descriptors in registration order.
func (r *Registry) List() []*ToolDescriptor {
	out := make([]*ToolDescriptor, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.tools[slug])
	}
	return out
}

// ByCategory returns descriptors in the given category, in registration order.
func (r *Registry) ByCategory(c Category) []*ToolDescriptor {
	var out []*ToolDescriptor
	for _, slug := range r.order {
		if d := r.tools[slug]; d.Category == c {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.order)
}
