package tree

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one filesystem path in the tree arena.
type Entry struct {
	Path      string
	IsDir     bool
	IsSymlink bool
	// Expanded mirrors membership in the tree's ExpandedPaths as of the
	// last Update.
	Expanded bool
	// Children are arena indices, directories first, then by path.
	Children []int

	live bool
}

// Name returns the last element of the entry's path.
func (e *Entry) Name() string {
	return filepath.Base(e.Path)
}

// listing is one child found while reading a directory.
type listing struct {
	path      string
	isDir     bool
	isSymlink bool
}

// readDir lists dir sorted directories first, then by path. Symlinks are
// classified by their target.
func readDir(dir string) ([]listing, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	out := make([]listing, 0, len(dirents))
	for _, d := range dirents {
		l := listing{
			path:      filepath.Join(dir, d.Name()),
			isDir:     d.IsDir(),
			isSymlink: d.Type()&fs.ModeSymlink != 0,
		}
		if l.isSymlink {
			if fi, err := os.Stat(l.path); err == nil {
				l.isDir = fi.IsDir()
			}
		}
		out = append(out, l)
	}
	sortListings(out)
	return out, nil
}

func sortListings(ls []listing) {
	sort.SliceStable(ls, func(i, j int) bool {
		if ls[i].isDir != ls[j].isDir {
			return ls[i].isDir
		}
		return ls[i].path < ls[j].path
	})
}

// systemFiles are OS metadata files that never show in the tree.
var systemFiles = map[string]bool{
	".DS_Store":               true,
	".Spotlight-V100":         true,
	".Trashes":                true,
	".fseventsd":              true,
	".TemporaryItems":         true,
	".DocumentRevisions-V100": true,
	"Thumbs.db":               true,
	"desktop.ini":             true,
	"$RECYCLE.BIN":            true,
}

func isSystemFile(name string) bool {
	return systemFiles[name] || strings.HasPrefix(name, "._")
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
