// Package cas implements the content-addressed index of derived artifacts.
// The enclosing build system addresses relinked libraries and symbol files by
// content; this store is its stand-in, a flat JSON file of path records.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/xdso/internal/core/domain"
	"go.trai.ch/xdso/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactStore = (*Store)(nil)

// Store implements ports.ArtifactStore using a flat JSON file.
type Store struct {
	path   string
	hasher ports.Hasher
	mu     sync.RWMutex
	cache  map[string]domain.ArtifactInfo
}

// NewStore creates an ArtifactStore backed by the file at the given path.
func NewStore(path string, hasher ports.Hasher) (*Store, error) {
	s := &Store{
		path:   filepath.Clean(path),
		hasher: hasher,
		cache:  make(map[string]domain.ArtifactInfo),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read artifact index")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal artifact index")
	}

	return nil
}

func (s *Store) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal artifact index")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for artifact index")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write artifact index")
	}

	return nil
}

// Get retrieves the record for a given artifact path.
func (s *Store) Get(path string) (*domain.ArtifactInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.cache[path]
	if !ok {
		return nil, nil
	}
	return &info, nil
}

// Put stores the record.
func (s *Store) Put(info domain.ArtifactInfo) error {
	s.mu.Lock()
	s.cache[info.Path] = info
	s.mu.Unlock()

	return s.save()
}

// Register digests the file at path and stores its record.
func (s *Store) Register(path string) (domain.ArtifactInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return domain.ArtifactInfo{}, zerr.With(zerr.Wrap(err, "failed to stat artifact"), "path", path)
	}

	digest, err := s.hasher.FileDigest(path)
	if err != nil {
		return domain.ArtifactInfo{}, err
	}

	info := domain.ArtifactInfo{
		Path:      path,
		Digest:    digest,
		Size:      stat.Size(),
		Timestamp: time.Now(),
	}
	if err := s.Put(info); err != nil {
		return domain.ArtifactInfo{}, err
	}
	return info, nil
}
