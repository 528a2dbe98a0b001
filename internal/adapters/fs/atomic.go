// Package fs provides file system adapters: atomic artifact writes, scoped
// temporary directories, symbol-file serialization and content hashing.
package fs

import (
	"bytes"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/xdso/internal/core/domain"
	"go.trai.ch/zerr"
)

// WriteFileAtomic writes data to path via a temporary file in the same
// directory followed by a rename, so a cancelled or failed write never leaves
// a half-formed artifact visible.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create artifact directory"), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create temp file"), "path", path)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, "failed to write artifact"), "path", path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, "failed to close artifact"), "path", path)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, "failed to chmod artifact"), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, "failed to publish artifact"), "path", path)
	}
	return nil
}

// CopyFileAtomic copies src to dst with the same rename discipline, preserving
// the source's permission bits.
func CopyFileAtomic(dst, src string) error {
	in, err := os.Open(src) //nolint:gosec // Path is controlled by the plan
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open source library"), "path", src)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	info, err := in.Stat()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat source library"), "path", src)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, in); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read source library"), "path", src)
	}

	return WriteFileAtomic(dst, buf.Bytes(), info.Mode().Perm())
}

// WriteSymbolsAtomic serializes the set to path in canonical form, atomically.
func WriteSymbolsAtomic(path string, set *domain.SymbolSet) error {
	var buf bytes.Buffer
	if _, err := set.WriteTo(&buf); err != nil {
		return err
	}
	return WriteFileAtomic(path, buf.Bytes(), 0o644)
}

// ReadSymbolsFile deserializes a symbol set from path. An absent file yields
// domain.ErrMissingSymbolArtifact.
func ReadSymbolsFile(path string) (*domain.SymbolSet, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by the plan
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrMissingSymbolArtifact, "failed to open symbols file"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to open symbols file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	set, err := domain.ReadSymbolSet(f)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return set, nil
}
