package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	appDir     = "sidetree"
	scriptFile = "sidetreerc"
	cacheFile  = "sidetreecache.json"
	logFile    = "sidetree.log"
)

// xdgDir returns $env, or ~/fallback when it is unset or relative.
func xdgDir(env, fallback string) (string, error) {
	if dir := os.Getenv(env); dir != "" && filepath.IsAbs(dir) {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback), nil
}

// ScriptPath returns the default startup script location,
// $XDG_CONFIG_HOME/sidetree/sidetreerc.
func ScriptPath() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, scriptFile), nil
}

// CachePath returns the cache file location,
// $XDG_CACHE_HOME/sidetree/sidetreecache.json.
func CachePath() (string, error) {
	dir, err := xdgDir("XDG_CACHE_HOME", ".cache")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, cacheFile), nil
}

// LogPath returns the debug log location,
// $XDG_STATE_HOME/sidetree/sidetree.log.
func LogPath() (string, error) {
	dir, err := xdgDir("XDG_STATE_HOME", ".local/state")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, logFile), nil
}

// EnsureFile creates an empty file at path, and its parent directories,
// if it does not exist yet.
func EnsureFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}

// DefaultScript returns the default script path, creating an empty script
// there on first run.
func DefaultScript() (string, error) {
	path, err := ScriptPath()
	if err != nil {
		return "", err
	}
	if err := EnsureFile(path); err != nil {
		return "", err
	}
	return path, nil
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
