package styles

import (
	"path/filepath"
	"strings"
)

const (
	dirIcon  = "🗀 "
	fileIcon = "🖺 "
)

var extIcons = map[string]string{
	".go":   " ",
	".rs":   " ",
	".py":   " ",
	".js":   " ",
	".ts":   " ",
	".md":   " ",
	".json": " ",
	".toml": " ",
	".yaml": " ",
	".yml":  " ",
	".sh":   " ",
	".c":    " ",
	".h":    " ",
	".lua":  " ",
	".html": " ",
	".css":  " ",
}

// Icon returns the glyph prefix for an entry name.
func Icon(name string, isDir bool) string {
	if isDir {
		return dirIcon
	}
	if icon, ok := extIcons[strings.ToLower(filepath.Ext(name))]; ok {
		return icon
	}
	return fileIcon
}
