package ports

import "go.trai.ch/xdso/internal/core/domain"

// ArtifactStore is the content-addressed index of derived artifacts.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// Get retrieves the record for a given artifact path.
	// Returns nil, nil if not found.
	Get(path string) (*domain.ArtifactInfo, error)

	// Put stores the record.
	Put(info domain.ArtifactInfo) error

	// Register digests the file at path and stores its record.
	Register(path string) (domain.ArtifactInfo, error)
}
