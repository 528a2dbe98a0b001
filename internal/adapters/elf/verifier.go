// Package elf audits relinked shared objects via the standard ELF reader.
// It is the second opinion next to the toolchain's own symbol dumper: after a
// relink the dynamic symbol table and the soname are checked against what the
// version script was supposed to produce.
package elf

import (
	"debug/elf"
	"strings"

	"go.trai.ch/xdso/internal/core/domain"
	"go.trai.ch/xdso/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LinkVerifier = (*Verifier)(nil)

// Verifier implements ports.LinkVerifier using debug/elf.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Soname reads the DT_SONAME entry of the shared object at path. Objects
// without a soname return the empty string.
func (v *Verifier) Soname(path string) (string, error) {
	f, err := elf.Open(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open shared object"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	sonames, err := f.DynString(elf.DT_SONAME)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to read dynamic section"), "path", path)
	}
	if len(sonames) == 0 {
		return "", nil
	}
	return sonames[0], nil
}

// VerifyExports checks that the object at path exports exactly the symbols in
// want. Comparison is on unversioned names: the demanded set can carry
// version suffixes the ELF symbol table stores out of band.
func (v *Verifier) VerifyExports(path string, want *domain.SymbolSet) error {
	f, err := elf.Open(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open shared object"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	exported, err := exportedSymbols(f)
	if err != nil {
		return zerr.With(err, "path", path)
	}

	wanted := domain.NewSymbolSet()
	for _, name := range want.Names() {
		wanted.Insert(baseName(name))
	}

	var missing, unexpected []string
	for _, name := range wanted.Names() {
		if !exported.Contains(name) {
			missing = append(missing, name)
		}
	}
	for _, name := range exported.Names() {
		if !wanted.Contains(name) {
			unexpected = append(unexpected, name)
		}
	}

	if len(missing) > 0 || len(unexpected) > 0 {
		lerr := zerr.With(zerr.Wrap(domain.ErrLink, "export set mismatch"), "path", path)
		lerr = zerr.With(lerr, "missing", strings.Join(missing, ","))
		return zerr.With(lerr, "unexpected", strings.Join(unexpected, ","))
	}
	return nil
}

// exportedSymbols collects the dynamic symbols with non-LOCAL binding and a
// defined section.
func exportedSymbols(f *elf.File) (*domain.SymbolSet, error) {
	syms, err := f.DynamicSymbols()
	if err != nil {
		if err == elf.ErrNoSymbols {
			return domain.NewSymbolSet(), nil
		}
		return nil, zerr.Wrap(err, "failed to read dynamic symbols")
	}

	out := domain.NewSymbolSet()
	for _, sym := range syms {
		if elf.ST_BIND(sym.Info) == elf.STB_LOCAL {
			continue
		}
		if sym.Section == elf.SHN_UNDEF {
			continue
		}
		out.Insert(sym.Name)
	}
	return out, nil
}

// baseName strips the "@VER" / "@@VER" suffix from a symbol name.
func baseName(name string) string {
	if i := strings.Index(name, "@"); i >= 0 {
		return name[:i]
	}
	return name
}
