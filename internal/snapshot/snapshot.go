package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const fileSuffix = ".tree"

// Store resolves named layout snapshots to files under the user's config
// directory. The files themselves hold serialized workspace trees.
type Store struct {
	dir string
}

// NewStore returns a store rooted at <config>/planewm/snapshots.
func NewStore() (*Store, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("snapshot: no config directory: %w", err)
	}
	return &Store{dir: filepath.Join(base, "planewm", "snapshots")}, nil
}

// ValidateName rejects empty names and names that would escape the snapshot
// directory.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("snapshot name is required")
	}
	if name != filepath.Base(name) || name == "." || strings.Contains(name, "..") {
		return fmt.Errorf("invalid snapshot name %q", name)
	}
	return nil
}

// Path maps a snapshot name to its file path.
func (s *Store) Path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, strings.TrimSpace(name)+fileSuffix), nil
}

// Ensure creates the snapshot directory.
func (s *Store) Ensure() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("snapshot: create directory: %w", err)
	}
	return nil
}

// List returns every stored snapshot name, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("snapshot: list: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), fileSuffix))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a stored snapshot.
func (s *Store) Delete(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("snapshot: delete %q: %w", name, err)
	}
	return nil
}
