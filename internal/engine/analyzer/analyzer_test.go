package analyzer_test

import (
	"errors"
	"testing"

	"go.trai.ch/xdso/internal/core/domain"
	"go.trai.ch/xdso/internal/engine/analyzer"
)

// graphStub implements ports.DependencyOracle over a literal edge map.
type graphStub struct {
	// incoming maps a node to the nodes that depend on it.
	incoming map[domain.NodeID][]domain.NodeID
	// producers maps a library path to its producing node.
	producers map[string]domain.NodeID
}

func (g *graphStub) IncomingEdges(node domain.NodeID) []domain.NodeID {
	return g.incoming[node]
}

func (g *graphStub) NodeForLibrary(path string) (domain.NodeID, bool) {
	n, ok := g.producers[path]
	return n, ok
}

func TestAnalyzer_LinearChain(t *testing.T) {
	// A depends on B depends on C.
	g := &graphStub{incoming: map[domain.NodeID][]domain.NodeID{
		"B": {"A"},
		"C": {"B"},
	}}

	deps, err := analyzer.New(g).DependentsOf([]domain.NodeID{"A", "B", "C"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertDependents(t, deps, "A", nil)
	assertDependents(t, deps, "B", []domain.NodeID{"A"})
	assertDependents(t, deps, "C", []domain.NodeID{"A", "B"})
}

func TestAnalyzer_Diamond(t *testing.T) {
	// Top depends on L and R; both depend on Bot.
	g := &graphStub{incoming: map[domain.NodeID][]domain.NodeID{
		"L":   {"Top"},
		"R":   {"Top"},
		"Bot": {"L", "R"},
	}}

	deps, err := analyzer.New(g).DependentsOf([]domain.NodeID{"Top", "L", "R", "Bot"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertDependents(t, deps, "Bot", []domain.NodeID{"L", "R", "Top"})
	assertDependents(t, deps, "L", []domain.NodeID{"Top"})
	assertDependents(t, deps, "R", []domain.NodeID{"Top"})
	assertDependents(t, deps, "Top", nil)
}

func TestAnalyzer_IntermediateNonLibraryNodes(t *testing.T) {
	// The path from the owned dependent to the owned dependency passes
	// through a non-library intermediate (e.g. a cc_object rule). The
	// intermediate must not appear in any dependent set.
	g := &graphStub{incoming: map[domain.NodeID][]domain.NodeID{
		"lib":          {"intermediate"},
		"intermediate": {"app"},
	}}

	deps, err := analyzer.New(g).DependentsOf([]domain.NodeID{"app", "lib"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertDependents(t, deps, "lib", []domain.NodeID{"app"})
	if _, ok := deps["intermediate"]; ok {
		t.Error("intermediate node must not appear in the result map")
	}
}

func TestAnalyzer_CycleDetection(t *testing.T) {
	g := &graphStub{incoming: map[domain.NodeID][]domain.NodeID{
		"A": {"B"},
		"B": {"A"},
	}}

	_, err := analyzer.New(g).DependentsOf([]domain.NodeID{"A", "B"})
	if err == nil {
		t.Fatal("expected cycle error, got nil")
	}
	if !errors.Is(err, domain.ErrCyclicLibraryGraph) {
		t.Errorf("expected ErrCyclicLibraryGraph, got %v", err)
	}
}

func assertDependents(t *testing.T, deps map[domain.NodeID][]domain.NodeID, node domain.NodeID, want []domain.NodeID) {
	t.Helper()
	got, ok := deps[node]
	if !ok {
		t.Fatalf("no entry for node %s", node)
	}
	if len(got) != len(want) {
		t.Fatalf("dependents of %s: expected %v, got %v", node, want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dependents of %s: expected %v, got %v", node, want, got)
		}
	}
}
