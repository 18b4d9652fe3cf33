// Package state persists the tree state between runs: the selected path
// and the set of expanded directories.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Cache is the persisted tree state.
type Cache struct {
	SelectedPath  string   `json:"selected_path"`
	ExpandedPaths []string `json:"expanded_paths"`
}

// Store reads and writes a Cache file. It remembers the digest of the
// last content read or written so unchanged state is not rewritten.
type Store struct {
	path string

	mu  sync.Mutex
	sum uint64
	has bool
}

// NewStore returns a store for the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the cache file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the cache. A missing file is created empty; a missing or
// empty file yields an empty Cache.
func (s *Store) Load() (*Cache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &Cache{}
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(s.path, nil, 0644); err != nil {
			return nil, err
		}
		return c, nil
	}
	if err != nil {
		return nil, err
	}

	s.sum, s.has = xxhash.Sum64(data), true
	if len(data) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return c, nil
}

// Save writes the cache through a temp file and rename. It does nothing
// when the encoded content matches what was last read or written.
func (s *Store) Save(c *Cache) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	sum := xxhash.Sum64(data)
	if s.has && sum == s.sum {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".sidetreecache-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	s.sum, s.has = sum, true
	return nil
}
