package ports

import "go.trai.ch/xdso/internal/core/domain"

// LinkVerifier audits a freshly relinked shared object.
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type LinkVerifier interface {
	// Soname reads the DT_SONAME entry of the shared object at path.
	// Objects without a soname return the empty string.
	Soname(path string) (string, error)

	// VerifyExports checks that the object at path exports exactly the given
	// symbol set. A mismatch yields domain.ErrLink.
	VerifyExports(path string, want *domain.SymbolSet) error
}
