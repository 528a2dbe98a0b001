// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/xdso/internal/core/domain"

// DependencyOracle is the host build system's view of its rule graph.
//
//go:generate go run go.uber.org/mock/mockgen -source=buildgraph.go -destination=mocks/mock_buildgraph.go -package=mocks
type DependencyOracle interface {
	// IncomingEdges returns the nodes that directly depend on the given node.
	IncomingEdges(node domain.NodeID) []domain.NodeID

	// NodeForLibrary resolves a library source path to its producing node.
	// The second return is false for libraries of unknown provenance.
	NodeForLibrary(path string) (domain.NodeID, bool)
}
