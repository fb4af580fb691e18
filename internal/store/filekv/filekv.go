// Package filekv persists each key as a JSON document on a filesystem. The
// afero abstraction lets tests run against an in-memory fs.
package filekv

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"gemba.tools/internal/store"
)

// Store writes <dir>/<key>.json per entry.
type Store struct {
	fs  afero.Fs
	dir string
}

// New creates the data directory if needed. Pass afero.NewOsFs() for real
// disk or afero.NewMemMapFs() in tests.
func New(fsys afero.Fs, dir string) (*Store, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if err := fsys.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("filekv: create %s: %w", dir, err)
	}
	return &Store{fs: fsys, dir: dir}, nil
}

func (s *Store) path(key string) string {
	// Keys are fixed namespaces, but sanitize anyway so a hostile key cannot
	// escape the data directory.
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(s.dir, safe+".json")
}

func (s *Store) Read(key string) ([]byte, error) {
	raw, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("filekv: read %s: %w", key, err)
	}
	return raw, nil
}

func (s *Store) Write(key string, value []byte) error {
	if err := afero.WriteFile(s.fs, s.path(key), value, 0o600); err != nil {
		return fmt.Errorf("filekv: write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	err := s.fs.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("filekv: delete %s: %w", key, err)
	}
	return nil
}
