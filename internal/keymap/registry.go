package keymap

import "sort"

// Registry maps keys to bound values. The zero value is not usable; call
// NewRegistry.
type Registry[T any] struct {
	bindings map[Key]T
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{bindings: make(map[Key]T)}
}

// Bind adds or replaces the binding for key.
func (r *Registry[T]) Bind(key Key, v T) {
	r.bindings[key] = v
}

// Unbind removes the binding for key, if any.
func (r *Registry[T]) Unbind(key Key) {
	delete(r.bindings, key)
}

// Lookup returns the value bound to key.
func (r *Registry[T]) Lookup(key Key) (T, bool) {
	v, ok := r.bindings[key]
	return v, ok
}

// Len returns the number of bindings.
func (r *Registry[T]) Len() int {
	return len(r.bindings)
}

// Keys returns the bound keys ordered by their rendered spec.
func (r *Registry[T]) Keys() []Key {
	keys := make([]Key, 0, len(r.bindings))
	for k := range r.bindings {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}
