// Package storage is the client-side key/value store that backs the cart,
// wishlist and auth session. Each key is a JSON document in its own file.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/spf13/afero"
)

// Keys used by the storefront client.
const (
	KeyCart     = "voguemen_cart"
	KeyWishlist = "voguemen_wishlist"
	KeyToken    = "voguemen_token"
	KeyUser     = "voguemen_user"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Storage persists raw values by key.
type Storage interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	// Remove deletes the key. Removing a missing key is not an error.
	Remove(key string) error
}

// Local stores every key as a file named after it inside dir.
type Local struct {
	fs  afero.Fs
	dir string
	mu  sync.RWMutex
}

// NewLocal creates the directory if needed and returns a Local storage on fs.
func NewLocal(fs afero.Fs, dir string) (*Local, error) {
	if err := fs.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return &Local{fs: fs, dir: dir}, nil
}

// NewMemory returns a Local storage over an in-memory filesystem.
func NewMemory() *Local {
	return &Local{fs: afero.NewMemMapFs(), dir: "/"}
}

func (s *Local) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Get reads the value stored under key.
func (s *Local) Get(key string) ([]byte, bool, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Set replaces the value stored under key. The write goes to a temporary file
// that is renamed into place.
func (s *Local) Set(key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := p + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := s.fs.Rename(tmp, p); err != nil {
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	return nil
}

// Remove deletes the value stored under key.
func (s *Local) Remove(key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
