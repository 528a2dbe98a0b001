package ports

// Hasher computes content digests of artifact files.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// FileDigest returns the hex digest of the file's content.
	FileDigest(path string) (string, error)
}
