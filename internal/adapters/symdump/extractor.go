// Package symdump extracts dynamic symbol tables by invoking the toolchain's
// symbol dumper (an nm-style tool) and parsing its output.
package symdump

import (
	"context"
	"slices"

	"go.trai.ch/xdso/internal/core/domain"
	"go.trai.ch/xdso/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SymbolExtractor = (*Extractor)(nil)

// Extractor implements ports.SymbolExtractor on top of a CommandRunner.
type Extractor struct {
	runner ports.CommandRunner
}

// NewExtractor creates a new Extractor.
func NewExtractor(runner ports.CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// Extract runs the dumper for the library's cpu and splits its symbol listing
// into exported definitions and undefined references.
func (e *Extractor) Extract(ctx context.Context, libraryPath string, tc domain.Toolchain) (*domain.SymbolSet, *domain.SymbolSet, error) {
	args := append(slices.Clone(tc.DumperFlags), libraryPath)
	stdout, stderr, err := e.runner.Run(ctx, tc.SymbolDumper, args...)
	if err != nil {
		terr := zerr.With(zerr.Wrap(domain.ErrToolchain, "symbol dumper failed"), "tool", tc.SymbolDumper)
		terr = zerr.With(terr, "library", libraryPath)
		return nil, nil, zerr.With(terr, "stderr", string(stderr))
	}
	defined, undefined := parseSymbols(stdout)
	return defined, undefined, nil
}
