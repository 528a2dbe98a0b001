package ports

import "go.trai.ch/xdso/internal/core/domain"

// ManifestLoader reads the relink manifest: the library set, the per-cpu
// toolchains, and the build-graph edges backing the dependency oracle.
//
//go:generate go run go.uber.org/mock/mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type ManifestLoader interface {
	// Load parses the manifest at path.
	Load(path string) (*domain.RelinkRequest, ToolchainProvider, DependencyOracle, error)
}
