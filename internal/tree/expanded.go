package tree

import "sort"

// ExpandedPaths is the set of directories the user has expanded. It is kept
// apart from the entries so expansion survives rescans and restarts.
type ExpandedPaths map[string]struct{}

// Contains reports whether path is expanded.
func (s ExpandedPaths) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// Add marks path expanded.
func (s ExpandedPaths) Add(path string) {
	s[path] = struct{}{}
}

// Remove marks path collapsed.
func (s ExpandedPaths) Remove(path string) {
	delete(s, path)
}

// Sorted returns the paths in lexical order.
func (s ExpandedPaths) Sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
