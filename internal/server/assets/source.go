// Package assets abstracts the pre-built web bundle the server fronts.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrNotFound reports a lookup miss, as opposed to a read failure.
var ErrNotFound = errors.New("asset not found")

// Source serves whole files from the bundle.
type Source interface {
	ReadFile(name string) ([]byte, error)
}

const DefaultCacheSize = 256

// DirSource reads the bundle from a local directory. File contents go
// through an LRU so hot assets skip the disk. The bundle is immutable
// for the lifetime of the process, so cached entries never expire.
type DirSource struct {
	root  string
	cache *lru.Cache[string, []byte]
}

func NewDirSource(root string) (*DirSource, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve asset dir %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("asset dir %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset dir %q is not a directory", root)
	}

	cache, err := lru.New[string, []byte](DefaultCacheSize)
	if err != nil {
		return nil, err
	}

	return &DirSource{root: abs, cache: cache}, nil
}

func (s *DirSource) ReadFile(name string) ([]byte, error) {
	// Cleaning with a leading slash pins traversal attempts inside
	// the bundle root.
	clean := strings.TrimPrefix(path.Clean("/"+name), "/")
	if clean == "" {
		return nil, fmt.Errorf("read %q: %w", name, ErrNotFound)
	}

	if data, ok := s.cache.Get(clean); ok {
		return data, nil
	}

	full := filepath.Join(s.root, filepath.FromSlash(clean))
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %q: %w", clean, ErrNotFound)
		}
		return nil, fmt.Errorf("stat %q: %w", clean, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("read %q: %w", clean, ErrNotFound)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", clean, err)
	}

	s.cache.Add(clean, data)
	return data, nil
}
