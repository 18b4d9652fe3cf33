package tree

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// makeTree creates files and directories under a temp dir. Names ending in
// "/" are directories.
func makeTree(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range names {
		p := filepath.Join(root, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			if err := os.MkdirAll(p, 0755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func paths(lines []DisplayLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Path
	}
	return out
}

func TestIsSystemFile(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"macOS DS_Store", ".DS_Store", true},
		{"macOS Trashes", ".Trashes", true},
		{"Windows Thumbs.db", "Thumbs.db", true},
		{"Windows desktop.ini", "desktop.ini", true},
		{"macOS resource fork", "._something", true},
		{"regular file", "main.go", false},
		{"dotfile", ".gitignore", false},
		{"similar but not system", ".DS_Store2", false},
		{"case sensitive Thumbs", "thumbs.db", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSystemFile(tt.input); got != tt.expected {
				t.Errorf("isSystemFile(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTree_SortAndDepth(t *testing.T) {
	root := makeTree(t, "b.txt", "a.txt", "zdir/", "adir/inner.go")
	tr := New(root, nil)
	tr.Expand(filepath.Join(root, "adir"))
	tr.Update(Options{})

	want := []string{
		filepath.Join(root, "adir"),
		filepath.Join(root, "adir", "inner.go"),
		filepath.Join(root, "zdir"),
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "b.txt"),
	}
	if got := paths(tr.Lines()); !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %v, want %v", got, want)
	}

	lines := tr.Lines()
	if lines[0].Depth != 0 || lines[1].Depth != 1 {
		t.Errorf("depths = %d,%d, want 0,1", lines[0].Depth, lines[1].Depth)
	}
	if lines[0].Label != "▾ adir" || lines[2].Label != "▸ zdir" || lines[3].Label != "  a.txt" {
		t.Errorf("labels = %q %q %q", lines[0].Label, lines[2].Label, lines[3].Label)
	}
}

func TestTree_HiddenAndSystemFiles(t *testing.T) {
	root := makeTree(t, "main.go", ".gitignore", ".DS_Store", "Thumbs.db", "._resource", ".hidden/inside")
	tr := New(root, nil)
	tr.Expand(filepath.Join(root, ".hidden"))

	tr.Update(Options{})
	if got := paths(tr.Lines()); !reflect.DeepEqual(got, []string{filepath.Join(root, "main.go")}) {
		t.Errorf("hidden lines = %v", got)
	}

	tr.Update(Options{ShowHidden: true})
	want := []string{
		filepath.Join(root, ".hidden"),
		filepath.Join(root, ".hidden", "inside"),
		filepath.Join(root, ".gitignore"),
		filepath.Join(root, "main.go"),
	}
	if got := paths(tr.Lines()); !reflect.DeepEqual(got, want) {
		t.Errorf("lines with hidden = %v, want %v", got, want)
	}
}

func TestTree_UpdateIdempotent(t *testing.T) {
	root := makeTree(t, "a/b/c.txt", "a/d.txt", "e.txt")
	tr := New(root, nil)
	tr.Expand(filepath.Join(root, "a"))
	tr.Expand(filepath.Join(root, "a", "b"))

	tr.Update(Options{})
	first := append([]DisplayLine(nil), tr.Lines()...)
	tr.SelectIndex(2)

	tr.Update(Options{})
	if !reflect.DeepEqual(tr.Lines(), first) {
		t.Errorf("second update changed lines:\n%v\n%v", first, tr.Lines())
	}
	if tr.SelectedIndex() != 2 {
		t.Errorf("selection moved to %d", tr.SelectedIndex())
	}
}

func TestTree_SelectionFollowsPath(t *testing.T) {
	root := makeTree(t, "b.txt", "c.txt")
	tr := New(root, nil)
	tr.Update(Options{})

	target := filepath.Join(root, "c.txt")
	if !tr.SelectPath(target) {
		t.Fatal("SelectPath should find c.txt")
	}

	// A new entry sorting before the selection shifts its index.
	if err := os.WriteFile(filepath.Join(root, "a.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	tr.Update(Options{})

	line, ok := tr.Selected()
	if !ok || line.Path != target {
		t.Errorf("selected %q, want %q", line.Path, target)
	}
	if tr.SelectedIndex() != 2 {
		t.Errorf("selected index = %d, want 2", tr.SelectedIndex())
	}
}

func TestTree_SelectionSurvivesOtherExpand(t *testing.T) {
	root := makeTree(t, "a/x.txt", "a/y.txt", "b.txt", "c.txt")
	tr := New(root, nil)
	tr.Update(Options{})

	target := filepath.Join(root, "c.txt")
	if !tr.SelectPath(target) {
		t.Fatal("SelectPath should find c.txt")
	}

	steps := []struct {
		name    string
		mutate  func(path string)
		wantIdx int
	}{
		{"initial", func(string) {}, 2},
		{"expand a", tr.Expand, 4},
		{"collapse a", tr.Collapse, 2},
	}
	for _, step := range steps {
		step.mutate(filepath.Join(root, "a"))
		tr.Update(Options{})

		line, ok := tr.Selected()
		if !ok || line.Path != target {
			t.Errorf("%s: selected %q, want %q", step.name, line.Path, target)
		}
		if tr.SelectedIndex() != step.wantIdx {
			t.Errorf("%s: selected index = %d, want %d", step.name, tr.SelectedIndex(), step.wantIdx)
		}
	}
}

func TestTree_MoveExpanded(t *testing.T) {
	tr := New("/r", nil)
	for _, p := range []string{"/r/d", "/r/d/sub", "/r/dd", "/r/other"} {
		tr.Expand(p)
	}
	tr.MoveExpanded("/r/d", "/r/e")

	want := []string{"/r/dd", "/r/e", "/r/e/sub", "/r/other"}
	if got := tr.ExpandedPaths(); !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandedPaths() = %v, want %v", got, want)
	}

	// A collapsed source moves nothing.
	tr.MoveExpanded("/r/x", "/r/y")
	if got := tr.ExpandedPaths(); !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandedPaths() = %v, want %v", got, want)
	}
}

func TestTree_VanishedSelectionClamps(t *testing.T) {
	root := makeTree(t, "a.txt", "b.txt")
	tr := New(root, nil)
	tr.Update(Options{})
	tr.SelectLast()

	if err := os.Remove(filepath.Join(root, "b.txt")); err != nil {
		t.Fatal(err)
	}
	tr.Update(Options{})

	if tr.SelectedIndex() != 0 {
		t.Errorf("selected index = %d, want 0", tr.SelectedIndex())
	}
	if _, ok := tr.Find(filepath.Join(root, "b.txt")); ok {
		t.Error("vanished entry should be released")
	}
}

func TestTree_ReconcileReusesEntries(t *testing.T) {
	root := makeTree(t, "d/x/deep.txt", "d/y.txt")
	tr := New(root, nil)
	d := filepath.Join(root, "d")
	x := filepath.Join(d, "x")
	tr.Expand(d)
	tr.Expand(x)
	tr.Update(Options{})

	before := tr.index[x]

	if err := os.WriteFile(filepath.Join(d, "z.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	tr.Update(Options{})

	if after := tr.index[x]; after != before {
		t.Errorf("entry for %s moved from slot %d to %d", x, before, after)
	}
	e, ok := tr.Find(x)
	if !ok || !e.Expanded || len(e.Children) != 1 {
		t.Fatalf("nested expansion lost: %+v", e)
	}
	if _, ok := tr.Find(filepath.Join(d, "z.txt")); !ok {
		t.Error("new file should have an entry")
	}
}

func TestTree_CollapsedDirNotRead(t *testing.T) {
	root := makeTree(t, "d/a.txt")
	tr := New(root, nil)
	d := filepath.Join(root, "d")
	tr.Expand(d)
	tr.Update(Options{})
	tr.Collapse(d)
	tr.Update(Options{})

	late := filepath.Join(d, "late.txt")
	if err := os.WriteFile(late, nil, 0644); err != nil {
		t.Fatal(err)
	}
	tr.Update(Options{})
	if _, ok := tr.Find(late); ok {
		t.Error("collapsed directory should not be rescanned")
	}
	if e, _ := tr.Find(d); e.Expanded {
		t.Error("collapsed directory should have Expanded=false")
	}

	tr.Expand(d)
	tr.Update(Options{})
	if _, ok := tr.Find(late); !ok {
		t.Error("expanded directory should pick up new files")
	}
}

func TestTree_ExpandedInvariant(t *testing.T) {
	root := makeTree(t, "a/b/c/d.txt", "e/f.txt")
	tr := New(root, nil)
	tr.ExtendExpanded([]string{filepath.Join(root, "a"), filepath.Join(root, "a", "b"), filepath.Join(root, "e")})
	tr.Update(Options{})
	tr.Collapse(filepath.Join(root, "a"))
	tr.Update(Options{})

	for _, e := range tr.entries {
		if !e.live || e.Path == tr.Root() {
			continue
		}
		if e.Expanded != tr.expanded.Contains(e.Path) {
			t.Errorf("%s: Expanded=%v, set contains=%v", e.Path, e.Expanded, tr.expanded.Contains(e.Path))
		}
	}
}

func TestTree_SelectUp(t *testing.T) {
	root := makeTree(t, "a/b/c.txt", "a/d.txt", "e.txt")
	tr := New(root, nil)
	tr.Expand(filepath.Join(root, "a"))
	tr.Expand(filepath.Join(root, "a", "b"))
	tr.Update(Options{})

	// a, a/b, a/b/c.txt, a/d.txt, e.txt
	tr.SelectPath(filepath.Join(root, "a", "d.txt"))
	tr.SelectUp()
	if line, _ := tr.Selected(); line.Path != filepath.Join(root, "a") {
		t.Errorf("SelectUp from a/d.txt selected %s, want a", line.Path)
	}

	tr.SelectPath(filepath.Join(root, "a", "b", "c.txt"))
	tr.SelectUp()
	if line, _ := tr.Selected(); line.Path != filepath.Join(root, "a", "b") {
		t.Errorf("SelectUp from c.txt selected %s, want a/b", line.Path)
	}

	tr.SelectPath(filepath.Join(root, "e.txt"))
	tr.SelectUp()
	if tr.SelectedIndex() != 0 {
		t.Errorf("SelectUp at depth 0 should stop at index 0, got %d", tr.SelectedIndex())
	}
}

func TestTree_ExpandToPath(t *testing.T) {
	root := makeTree(t, "a/b/c/target.txt")
	tr := New(root, nil)
	target := filepath.Join(root, "a", "b", "c", "target.txt")

	tr.ExpandToPath(target)
	tr.Update(Options{})

	if !tr.SelectPath(target) {
		t.Fatalf("target not visible after ExpandToPath; lines = %v", paths(tr.Lines()))
	}
	for _, dir := range []string{"a", "a/b", "a/b/c"} {
		if !tr.IsExpanded(filepath.Join(root, filepath.FromSlash(dir))) {
			t.Errorf("%s should be expanded", dir)
		}
	}
	if tr.IsExpanded(filepath.Dir(root)) {
		t.Error("ExpandToPath must not expand above the root")
	}
}

func TestTree_ReadErrorIsEmpty(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")
	tr := New(root, nil)
	tr.Update(Options{})

	if len(tr.Lines()) != 0 {
		t.Errorf("lines = %v, want none", tr.Lines())
	}
	if _, ok := tr.Selected(); ok {
		t.Error("nothing should be selected")
	}
	if tr.Entry().Path != root {
		t.Errorf("Entry() = %s, want root", tr.Entry().Path)
	}
}

func TestTree_CurrentDir(t *testing.T) {
	root := makeTree(t, "d/f.txt")
	tr := New(root, nil)
	d := filepath.Join(root, "d")
	tr.Expand(d)
	tr.Update(Options{})

	tr.SelectPath(d)
	if got := tr.CurrentDir(); got != d {
		t.Errorf("CurrentDir on dir = %s, want %s", got, d)
	}
	tr.SelectPath(filepath.Join(d, "f.txt"))
	if got := tr.CurrentDir(); got != d {
		t.Errorf("CurrentDir on file = %s, want %s", got, d)
	}
}

func TestTree_ChangeRootKeepsExpansion(t *testing.T) {
	root := makeTree(t, "sub/d/f.txt")
	tr := New(root, nil)
	d := filepath.Join(root, "sub", "d")
	tr.Expand(d)
	tr.ChangeRoot(filepath.Join(root, "sub"), Options{})

	if tr.Root() != filepath.Join(root, "sub") {
		t.Errorf("Root() = %s", tr.Root())
	}
	if !tr.SelectPath(filepath.Join(d, "f.txt")) {
		t.Errorf("expanded dir should survive re-rooting; lines = %v", paths(tr.Lines()))
	}
}

func TestTree_Window(t *testing.T) {
	root := makeTree(t, "1", "2", "3", "4", "5", "6")
	tr := New(root, nil)
	tr.Update(Options{})

	if s, e := tr.Window(3); s != 0 || e != 3 {
		t.Errorf("Window = %d,%d, want 0,3", s, e)
	}
	tr.SelectIndex(4)
	if s, e := tr.Window(3); s != 2 || e != 5 {
		t.Errorf("Window after move = %d,%d, want 2,5", s, e)
	}
	tr.Update(Options{})
	if tr.Offset() != 2 {
		t.Errorf("offset lost across update: %d", tr.Offset())
	}
	tr.SelectFirst()
	if s, _ := tr.Window(3); s != 0 {
		t.Errorf("Window start = %d, want 0", s)
	}
}

func TestTree_Icons(t *testing.T) {
	root := makeTree(t, "main.go")
	tr := New(root, nil)
	tr.Update(Options{Icon: func(name string, isDir bool) string { return "* " }})

	if got := tr.Lines()[0].Label; got != "  * main.go" {
		t.Errorf("label = %q", got)
	}
}
