package ports

import (
	"context"

	"go.trai.ch/xdso/internal/core/domain"
)

// SymbolExtractor lists the dynamic symbols of a shared object.
//
//go:generate go run go.uber.org/mock/mockgen -source=extractor.go -destination=mocks/mock_extractor.go -package=mocks
type SymbolExtractor interface {
	// Extract returns the symbols the library exports (non-LOCAL binding with
	// a defined section) and the symbols it references undefined. Weak symbols
	// land on either side according to their defined state; version suffixes
	// are preserved verbatim. A failing dumper yields domain.ErrToolchain.
	Extract(ctx context.Context, libraryPath string, tc domain.Toolchain) (defined, undefined *domain.SymbolSet, err error)
}
