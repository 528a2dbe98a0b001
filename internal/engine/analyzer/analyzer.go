// Package analyzer computes transitive dependent sets over the host build graph.
package analyzer

import (
	"sort"

	"go.trai.ch/xdso/internal/core/domain"
	"go.trai.ch/xdso/internal/core/ports"
	"go.trai.ch/zerr"
)

// Analyzer answers the reverse-dependency question the planner needs: for each
// owned input library, which other owned inputs could reference its symbols.
type Analyzer struct {
	oracle ports.DependencyOracle
}

// New creates an Analyzer backed by the given oracle.
func New(oracle ports.DependencyOracle) *Analyzer {
	return &Analyzer{oracle: oracle}
}

// DependentsOf computes, for every node in owned, the set of other owned
// nodes that transitively depend on it. The walk spans the subgraph of the
// owned nodes and all their ancestors along dependent-edges, which may pass
// through intermediate nodes that are not libraries; only owned inputs appear
// in the returned sets. A cycle yields domain.ErrCyclicLibraryGraph.
func (a *Analyzer) DependentsOf(owned []domain.NodeID) (map[domain.NodeID][]domain.NodeID, error) {
	ownedSet := make(map[domain.NodeID]struct{}, len(owned))
	for _, n := range owned {
		ownedSet[n] = struct{}{}
	}

	// DFS over dependent-edges. Postorder appends a node only after every
	// node that depends on it, so iterating the order directly processes
	// dependents before dependencies.
	order := make([]domain.NodeID, 0, len(owned))
	visited := make(map[domain.NodeID]int, len(owned)) // 0: unvisited, 1: visiting, 2: visited
	var path []domain.NodeID

	var visit func(u domain.NodeID) error
	visit = func(u domain.NodeID) error {
		visited[u] = 1
		path = append(path, u)

		for _, dependent := range a.oracle.IncomingEdges(u) {
			if visited[dependent] == 1 {
				return cycleError(path, dependent)
			}
			if visited[dependent] == 0 {
				if err := visit(dependent); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		order = append(order, u)
		return nil
	}

	// Sorted start order keeps the traversal deterministic.
	starts := make([]domain.NodeID, len(owned))
	copy(starts, owned)
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })
	for _, n := range starts {
		if visited[n] == 0 {
			if err := visit(n); err != nil {
				return nil, err
			}
		}
	}

	allDependents := make(map[domain.NodeID]map[domain.NodeID]struct{}, len(order))
	for _, u := range order {
		deps := make(map[domain.NodeID]struct{})
		for _, m := range a.oracle.IncomingEdges(u) {
			for d := range allDependents[m] {
				deps[d] = struct{}{}
			}
			if _, ok := ownedSet[m]; ok {
				deps[m] = struct{}{}
			}
		}
		allDependents[u] = deps
	}

	out := make(map[domain.NodeID][]domain.NodeID, len(owned))
	for _, n := range owned {
		deps := make([]domain.NodeID, 0, len(allDependents[n]))
		for d := range allDependents[n] {
			deps = append(deps, d)
		}
		sort.Slice(deps, func(i, j int) bool { return deps[i] < deps[j] })
		out[n] = deps
	}
	return out, nil
}

// cycleError constructs an error carrying the cycle path as metadata.
func cycleError(path []domain.NodeID, dep domain.NodeID) error {
	cyclePath := ""
	startIdx := -1
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i >= 0 && i < len(path); i++ {
		cyclePath += string(path[i]) + " -> "
	}
	cyclePath += string(dep)
	return zerr.With(zerr.Wrap(domain.ErrCyclicLibraryGraph, "cycle detected"), "cycle", cyclePath)
}
