// Package buildgraph provides an in-memory dependency oracle: the host build
// system's rule graph, materialized from the manifest.
package buildgraph

import (
	"go.trai.ch/xdso/internal/core/domain"
	"go.trai.ch/xdso/internal/core/ports"
)

var _ ports.DependencyOracle = (*Graph)(nil)

// Graph implements ports.DependencyOracle over literal edge and producer maps.
type Graph struct {
	incoming  map[domain.NodeID][]domain.NodeID
	edgeSeen  map[[2]domain.NodeID]struct{}
	producers map[string]domain.NodeID
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		incoming:  make(map[domain.NodeID][]domain.NodeID),
		edgeSeen:  make(map[[2]domain.NodeID]struct{}),
		producers: make(map[string]domain.NodeID),
	}
}

// AddEdge records that dependent depends on dependency. Duplicate edges are
// ignored.
func (g *Graph) AddEdge(dependent, dependency domain.NodeID) {
	key := [2]domain.NodeID{dependent, dependency}
	if _, ok := g.edgeSeen[key]; ok {
		return
	}
	g.edgeSeen[key] = struct{}{}
	g.incoming[dependency] = append(g.incoming[dependency], dependent)
}

// SetProducer records that the library at path is produced by node.
func (g *Graph) SetProducer(path string, node domain.NodeID) {
	g.producers[path] = node
}

// IncomingEdges returns the nodes that directly depend on the given node.
func (g *Graph) IncomingEdges(node domain.NodeID) []domain.NodeID {
	return g.incoming[node]
}

// NodeForLibrary resolves a library source path to its producing node.
func (g *Graph) NodeForLibrary(path string) (domain.NodeID, bool) {
	n, ok := g.producers[path]
	return n, ok
}
