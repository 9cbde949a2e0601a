package site

import (
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// Store holds the active manifest. Reads never block a reload.
type Store struct {
	path    string
	current atomic.Pointer[Manifest]

	mu  sync.Mutex
	sum uint64
}

// NewStore loads the manifest at path.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Manifest returns the active manifest.
func (s *Store) Manifest() *Manifest {
	return s.current.Load()
}

// Reload re-reads the manifest file and reports whether its content changed.
// An unchanged file is not parsed again. On error the previous manifest
// stays active.
func (s *Store) Reload() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, err := os.ReadFile(s.path)
	if err != nil {
		err = fmt.Errorf("failed to read site manifest %s: %w", s.path, err)
		log.Printf("site: reload failed, keeping previous manifest: %v", err)
		return false, err
	}
	sum := xxhash.Sum64(src)
	if s.current.Load() != nil && sum == s.sum {
		return false, nil
	}
	m, err := Parse(src, s.path)
	if err != nil {
		log.Printf("site: reload of %s failed, keeping previous manifest: %v", s.path, err)
		return false, err
	}
	s.current.Store(m)
	s.sum = sum
	return true, nil
}
