package fs

import (
	"os"

	"go.trai.ch/zerr"
)

// ScopedDir is a temporary directory whose lifetime is bound to the action
// that created it. Close removes it on every exit path.
type ScopedDir struct {
	Path string
}

// NewScopedDir creates a temporary directory under parent.
func NewScopedDir(parent, pattern string) (*ScopedDir, error) {
	if err := os.MkdirAll(parent, 0o750); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create parent directory"), "path", parent)
	}
	path, err := os.MkdirTemp(parent, pattern)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create scoped directory"), "path", parent)
	}
	return &ScopedDir{Path: path}, nil
}

// Close removes the directory and everything under it.
func (d *ScopedDir) Close() error {
	if err := os.RemoveAll(d.Path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove scoped directory"), "path", d.Path)
	}
	return nil
}
