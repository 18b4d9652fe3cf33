// Package tree models a directory as an expandable tree. Entries live in an
// arena addressed by index; an index from path to arena slot is maintained
// as directories are rescanned, so entries for paths that persist across a
// rescan are reused rather than rebuilt.
package tree

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const rootIndex = 0

// Options controls which entries are shown and how labels are built.
type Options struct {
	ShowHidden bool
	// Icon returns a glyph prefix for an entry, or "" for none.
	Icon func(name string, isDir bool) string
}

// DisplayLine is one visible row. Lines are rebuilt on every Update.
type DisplayLine struct {
	Path      string
	Label     string
	Name      string
	Icon      string
	Depth     int
	IsDir     bool
	IsSymlink bool
	Expanded  bool
}

// Marker returns the expansion marker drawn before the label.
func (l DisplayLine) Marker() string {
	switch {
	case l.IsDir && l.Expanded:
		return "▾ "
	case l.IsDir:
		return "▸ "
	}
	return "  "
}

// Tree is the file tree rooted at a directory.
type Tree struct {
	root     string
	entries  []Entry
	free     []int
	index    map[string]int
	expanded ExpandedPaths

	lines    []DisplayLine
	selected int
	offset   int

	logger *slog.Logger
}

// New creates a tree rooted at root. Call Update to read the filesystem.
func New(root string, logger *slog.Logger) *Tree {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	t := &Tree{
		expanded: ExpandedPaths{},
		logger:   logger,
	}
	t.setRoot(root)
	return t
}

func (t *Tree) setRoot(root string) {
	abs := absolute(root)
	isDir := true
	if fi, err := os.Stat(abs); err == nil {
		isDir = fi.IsDir()
	}

	t.root = abs
	t.entries = []Entry{{Path: abs, IsDir: isDir, Expanded: true, live: true}}
	t.free = nil
	t.index = map[string]int{abs: rootIndex}
	t.lines = nil
	t.selected = 0
	t.offset = 0
}

// Root returns the absolute root path.
func (t *Tree) Root() string {
	return t.root
}

// ChangeRoot re-roots the tree at path and rescans. Expanded paths are kept.
func (t *Tree) ChangeRoot(path string, opts Options) {
	t.setRoot(path)
	t.Update(opts)
}

// Update rescans every expanded directory, rebuilds the display lines and
// restores the selection by path. If the selected path vanished the
// selection index is kept, clamped to the new line count.
func (t *Tree) Update(opts Options) {
	prev, hadSelection := t.Selected()

	t.reconcile(rootIndex)
	t.lines = t.flatten(opts)

	if hadSelection && t.selectExact(prev.Path) {
		return
	}
	t.clamp()
}

// reconcile merges a fresh directory listing into the entry at idx,
// keeping previous children whose paths persist.
func (t *Tree) reconcile(idx int) {
	e := &t.entries[idx]
	e.Expanded = idx == rootIndex || t.expanded.Contains(e.Path)

	if !e.IsDir {
		t.releaseChildren(idx)
		return
	}
	if !e.Expanded {
		t.syncExpanded(idx)
		return
	}

	path := e.Path
	listings, err := readDir(path)
	if err != nil {
		t.logger.Debug("read dir failed", "path", path, "err", err)
		listings = nil
	}

	prev := make(map[string]int, len(e.Children))
	for _, c := range e.Children {
		prev[t.entries[c].Path] = c
	}

	next := make([]int, 0, len(listings))
	for _, l := range listings {
		if c, ok := prev[l.path]; ok {
			delete(prev, l.path)
			t.entries[c].IsDir = l.isDir
			t.entries[c].IsSymlink = l.isSymlink
			next = append(next, c)
			continue
		}
		next = append(next, t.alloc(l))
	}
	for _, c := range prev {
		t.release(c)
	}

	t.entries[idx].Children = next
	for _, c := range next {
		t.reconcile(c)
	}
}

// syncExpanded refreshes the Expanded flag below a collapsed directory
// without touching the filesystem.
func (t *Tree) syncExpanded(idx int) {
	for _, c := range t.entries[idx].Children {
		t.entries[c].Expanded = t.expanded.Contains(t.entries[c].Path)
		t.syncExpanded(c)
	}
}

func (t *Tree) alloc(l listing) int {
	e := Entry{Path: l.path, IsDir: l.isDir, IsSymlink: l.isSymlink, live: true}

	var idx int
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
		t.entries[idx] = e
	} else {
		idx = len(t.entries)
		t.entries = append(t.entries, e)
	}
	t.index[l.path] = idx
	return idx
}

func (t *Tree) release(idx int) {
	t.releaseChildren(idx)
	if i, ok := t.index[t.entries[idx].Path]; ok && i == idx {
		delete(t.index, t.entries[idx].Path)
	}
	t.entries[idx] = Entry{}
	t.free = append(t.free, idx)
}

func (t *Tree) releaseChildren(idx int) {
	for _, c := range t.entries[idx].Children {
		t.release(c)
	}
	t.entries[idx].Children = nil
}

func (t *Tree) flatten(opts Options) []DisplayLine {
	var lines []DisplayLine
	var walk func(idx, depth int)
	walk = func(idx, depth int) {
		for _, c := range t.entries[idx].Children {
			e := &t.entries[c]
			name := e.Name()
			if isSystemFile(name) || (!opts.ShowHidden && isHidden(name)) {
				continue
			}

			line := DisplayLine{
				Path:      e.Path,
				Name:      name,
				Depth:     depth,
				IsDir:     e.IsDir,
				IsSymlink: e.IsSymlink,
				Expanded:  e.Expanded,
			}
			if opts.Icon != nil {
				line.Icon = opts.Icon(name, e.IsDir)
			}
			line.Label = line.Marker() + line.Icon + name
			lines = append(lines, line)

			if e.IsDir && e.Expanded {
				walk(c, depth+1)
			}
		}
	}
	walk(rootIndex, 0)
	return lines
}

// Lines returns the current display lines.
func (t *Tree) Lines() []DisplayLine {
	return t.lines
}

// Find returns the live entry for path.
func (t *Tree) Find(path string) (*Entry, bool) {
	idx, ok := t.index[absolute(path)]
	if !ok || !t.entries[idx].live {
		return nil, false
	}
	return &t.entries[idx], true
}

// Entry returns the selected entry, or the root when nothing is selected.
func (t *Tree) Entry() *Entry {
	if line, ok := t.Selected(); ok {
		if e, ok := t.Find(line.Path); ok {
			return e
		}
	}
	return &t.entries[rootIndex]
}

// CurrentDir returns the selected directory, or the parent of the selected
// file.
func (t *Tree) CurrentDir() string {
	e := t.Entry()
	if e.IsDir {
		return e.Path
	}
	return filepath.Dir(e.Path)
}

// Expand marks path expanded. The change is applied by the next Update.
func (t *Tree) Expand(path string) {
	t.expanded.Add(absolute(path))
}

// Collapse marks path collapsed.
func (t *Tree) Collapse(path string) {
	t.expanded.Remove(absolute(path))
}

// ToggleExpanded flips the expansion of path.
func (t *Tree) ToggleExpanded(path string) {
	p := absolute(path)
	if t.expanded.Contains(p) {
		t.expanded.Remove(p)
	} else {
		t.expanded.Add(p)
	}
}

// IsExpanded reports whether path is marked expanded.
func (t *Tree) IsExpanded(path string) bool {
	return t.expanded.Contains(absolute(path))
}

// ExtendExpanded marks every path in paths expanded.
func (t *Tree) ExtendExpanded(paths []string) {
	for _, p := range paths {
		t.expanded.Add(absolute(p))
	}
}

// MoveExpanded rebases the expanded state of src and its descendants onto
// dst, following a rename on disk.
func (t *Tree) MoveExpanded(src, dst string) {
	src, dst = absolute(src), absolute(dst)
	prefix := src + string(filepath.Separator)
	for _, p := range t.expanded.Sorted() {
		switch {
		case p == src:
			t.expanded.Remove(p)
			t.expanded.Add(dst)
		case strings.HasPrefix(p, prefix):
			t.expanded.Remove(p)
			t.expanded.Add(filepath.Join(dst, p[len(prefix):]))
		}
	}
}

// ExpandedPaths returns a sorted snapshot of the expanded set.
func (t *Tree) ExpandedPaths() []string {
	return t.expanded.Sorted()
}

// ExpandedDirs returns the directories currently expanded and visible in
// the arena, root first.
func (t *Tree) ExpandedDirs() []string {
	dirs := []string{t.root}
	var walk func(idx int)
	walk = func(idx int) {
		for _, c := range t.entries[idx].Children {
			if e := &t.entries[c]; e.IsDir && e.Expanded {
				dirs = append(dirs, e.Path)
				walk(c)
			}
		}
	}
	walk(rootIndex)
	return dirs
}

// ExpandToPath expands every ancestor of path that lies inside the root.
func (t *Tree) ExpandToPath(path string) {
	dir := filepath.Dir(absolute(path))
	for within(t.root, dir) {
		t.expanded.Add(dir)
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// SelectPath selects the line showing path. It reports whether one was found.
func (t *Tree) SelectPath(path string) bool {
	return t.selectExact(absolute(path))
}

func (t *Tree) selectExact(path string) bool {
	for i, l := range t.lines {
		if l.Path == path {
			t.selected = i
			return true
		}
	}
	return false
}

// Selected returns the selected line.
func (t *Tree) Selected() (DisplayLine, bool) {
	if t.selected < 0 || t.selected >= len(t.lines) {
		return DisplayLine{}, false
	}
	return t.lines[t.selected], true
}

// SelectedIndex returns the selected line index.
func (t *Tree) SelectedIndex() int {
	return t.selected
}

// SelectIndex selects line i, clamped to the valid range.
func (t *Tree) SelectIndex(i int) {
	t.selected = i
	t.clamp()
}

// MoveBy moves the selection by n lines, clamped.
func (t *Tree) MoveBy(n int) {
	t.SelectIndex(t.selected + n)
}

// SelectNext moves the selection down one line.
func (t *Tree) SelectNext() { t.MoveBy(1) }

// SelectPrev moves the selection up one line.
func (t *Tree) SelectPrev() { t.MoveBy(-1) }

// SelectFirst selects the first line.
func (t *Tree) SelectFirst() { t.SelectIndex(0) }

// SelectLast selects the last line.
func (t *Tree) SelectLast() { t.SelectIndex(len(t.lines) - 1) }

// SelectUp moves to the nearest preceding line that is shallower than the
// selected one, which is its parent directory.
func (t *Tree) SelectUp() {
	if len(t.lines) == 0 {
		return
	}
	depth := t.lines[t.selected].Depth
	i := t.selected
	for i > 0 {
		i--
		if t.lines[i].Depth < depth {
			break
		}
	}
	t.selected = i
}

// Window returns the range of lines to draw in a viewport of height rows,
// scrolling just enough to keep the selection visible.
func (t *Tree) Window(height int) (start, end int) {
	if height <= 0 {
		return 0, 0
	}
	if t.selected < t.offset {
		t.offset = t.selected
	}
	if t.selected >= t.offset+height {
		t.offset = t.selected - height + 1
	}
	if maxOffset := len(t.lines) - height; t.offset > maxOffset {
		t.offset = max(maxOffset, 0)
	}
	return t.offset, min(t.offset+height, len(t.lines))
}

// Offset returns the scroll offset of the last Window call.
func (t *Tree) Offset() int {
	return t.offset
}

func (t *Tree) clamp() {
	if t.selected >= len(t.lines) {
		t.selected = len(t.lines) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}
}

func absolute(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// within reports whether path is root or below it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
