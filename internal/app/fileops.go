package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var errOutsideRoot = errors.New("path is outside the tree root")

// validateFilename checks for invalid filename characters and patterns.
// Separators are allowed when allowSep is set so new entries can be
// created in subdirectories.
func validateFilename(name string, allowSep bool) error {
	if name == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid filename")
	}
	if !allowSep && strings.ContainsRune(name, '/') {
		return fmt.Errorf("rename cannot move to another directory")
	}
	// Check for null bytes and control characters
	for _, r := range name {
		if r == 0 || (r < 32 && r != '\t') {
			return fmt.Errorf("filename contains invalid characters")
		}
	}
	return nil
}

// insideRoot reports whether path is root or below it.
func insideRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// renameEntry renames src to name within its directory and returns the
// new path.
func renameEntry(src, name string) (string, error) {
	if err := validateFilename(name, false); err != nil {
		return "", err
	}
	dst := filepath.Join(filepath.Dir(src), name)
	if src == dst {
		return "", fmt.Errorf("source and destination are the same")
	}

	if dfi, err := os.Lstat(dst); err == nil {
		sfi, serr := os.Lstat(src)
		if serr != nil || !os.SameFile(sfi, dfi) {
			return "", fmt.Errorf("already exists: %s", name)
		}
		// Case-only rename on a case-insensitive filesystem: go through a
		// temp name.
		tmp := src + ".sidetree-rename-tmp"
		if err := os.Rename(src, tmp); err != nil {
			return "", fmt.Errorf("rename failed: %w", err)
		}
		if err := os.Rename(tmp, dst); err != nil {
			_ = os.Rename(tmp, src)
			return "", fmt.Errorf("rename failed: %w", err)
		}
		return dst, nil
	}
	if err := os.Rename(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// createEntry creates a file or directory called name below dir. A name
// ending in a slash always creates a directory.
func createEntry(root, dir, name string, isDir bool) (string, error) {
	if err := validateFilename(name, true); err != nil {
		return "", err
	}
	if strings.HasSuffix(name, "/") {
		isDir = true
	}

	fullPath := filepath.Join(dir, name)
	if !insideRoot(root, fullPath) {
		return "", errOutsideRoot
	}

	// Check if already exists
	if _, err := os.Lstat(fullPath); err == nil {
		return "", fmt.Errorf("already exists: %s", name)
	}

	if isDir {
		if err := os.MkdirAll(fullPath, 0755); err != nil {
			return "", err
		}
		return fullPath, nil
	}

	// Create parent directories if needed
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", err
	}
	return fullPath, f.Close()
}

// deleteEntry removes path, recursively for directories. The root itself
// and anything outside it are refused.
func deleteEntry(root, path string) error {
	if !insideRoot(root, path) {
		return errOutsideRoot
	}
	if filepath.Clean(path) == filepath.Clean(root) {
		return fmt.Errorf("cannot delete the tree root")
	}
	fi, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}
