package component

import (
	"fmt"
	"sort"
)

// Type couples a descriptor with constructors. New creates a component as
// freshly placed by the user; Restore creates a blank instance whose
// attributes are all unset, ready to be filled from a saved document.
type Type struct {
	Descriptor *TypeDescriptor
	New        func() Component
	Restore    func() Component
}

// Registry of known component types, keyed by descriptor name
var registry = make(map[string]Type)

// Register adds a component type to the registry. Registering the same
// name twice panics.
func Register(t Type) {
	if t.Descriptor == nil || t.New == nil || t.Restore == nil {
		panic("component: Register with incomplete type")
	}
	name := t.Descriptor.Name
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("component: type %q registered twice", name))
	}
	registry[name] = t
}

// Lookup returns a registered type by name.
func Lookup(name string) (Type, bool) {
	t, ok := registry[name]
	return t, ok
}

// Types returns all registered types ordered by category, then name.
func Types() []Type {
	types := make([]Type, 0, len(registry))
	for _, t := range registry {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		a, b := types[i].Descriptor, types[j].Descriptor
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Name < b.Name
	})
	return types
}
