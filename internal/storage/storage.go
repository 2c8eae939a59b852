// Package storage provides the key-value persistence medium for daily.
//
// Each key maps to one file under a .daily/ directory, so a value is a
// single named blob that is replaced wholesale on every write.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const (
	// dataDir is the name of the daily data directory.
	dataDir = ".daily"
	// blobExt is the file extension used for stored values.
	blobExt = ".yaml"
)

// keyRegex restricts keys to names that are safe as file names.
var keyRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Storage provides access to a .daily/ directory.
type Storage struct {
	root string // path to directory containing .daily/
}

// Open returns a Storage for the given directory.
// The .daily/ directory is created lazily on the first write.
// Returns error if dir exists but is not a directory.
func Open(dir string) (*Storage, error) {
	if dir == "" {
		dir = "."
	}
	info, err := os.Stat(dir)
	if err == nil && !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to access %s: %w", dir, err)
	}

	dataPath := filepath.Join(dir, dataDir)
	if info, err := os.Stat(dataPath); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dataPath)
	}

	return &Storage{root: dir}, nil
}

// Root returns the root directory containing .daily/.
func (s *Storage) Root() string {
	return s.root
}

// DataPath returns the path to the .daily/ directory.
func (s *Storage) DataPath() string {
	return filepath.Join(s.root, dataDir)
}

// keyPath returns the path of the file holding key.
func (s *Storage) keyPath(key string) (string, error) {
	if !keyRegex.MatchString(key) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.root, dataDir, key+blobExt), nil
}

// Get returns the value stored under key.
// The boolean is false if nothing is stored under key.
func (s *Storage) Get(key string) ([]byte, bool, error) {
	path, err := s.keyPath(key)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Set stores value under key, replacing any previous value.
// The value is written to a temporary file and renamed into place so a
// failed write never leaves a truncated blob behind.
func (s *Storage) Set(key string, value []byte) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.DataPath(), 0755); err != nil {
		return fmt.Errorf("failed to create %s/: %w", dataDir, err)
	}

	tmp, err := os.CreateTemp(s.DataPath(), key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	return nil
}

// Remove deletes the value stored under key.
// Removing a missing key is not an error.
func (s *Storage) Remove(key string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Keys returns all stored keys in sorted order.
func (s *Storage) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.DataPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s/: %w", dataDir, err)
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, blobExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, blobExt))
	}
	sort.Strings(keys)

	return keys, nil
}
