package domain

// RelinkNode is one planned relink. Nodes are created during planning and
// immutable thereafter.
//
// Invariant: every element of UpstreamDeps targets the same cpu as the node
// itself; copied nodes appear as upstream of every owned node of matching cpu.
type RelinkNode struct {
	// Key identifies the library this node relinks.
	Key LibraryKey

	// Input points at the original library file.
	Input LibraryHandle

	// UpstreamDeps are the nodes whose symbol demands constrain this relink.
	// Each upstream's SymbolsNeededPath must exist before this node runs.
	UpstreamDeps []*RelinkNode

	// OutputPath is where the relinked library is written.
	OutputPath string

	// SymbolsNeededPath is where this node's own symbol demands are written.
	SymbolsNeededPath string
}

// ActionID returns the stable human-readable identifier for this relink,
// e.g. "xdso-dce/arm64/libfoo.so". It names output directories, telemetry
// vertices and log lines.
func (n *RelinkNode) ActionID() string {
	return "xdso-dce/" + string(n.Key.Cpu) + "/" + n.Key.Name.String()
}

// UpstreamSymbolArtifacts returns the symbols-needed paths of every upstream,
// in upstream order.
func (n *RelinkNode) UpstreamSymbolArtifacts() []string {
	out := make([]string, len(n.UpstreamDeps))
	for i, dep := range n.UpstreamDeps {
		out[i] = dep.SymbolsNeededPath
	}
	return out
}

// RewriteMap maps every original library to its relinked path. It mirrors the
// input partitioning into package libs and asset libs; together the two maps
// are complete over the input set.
type RewriteMap struct {
	RelinkedLibs       map[LibraryKey]string
	RelinkedLibsAssets map[LibraryKey]string
}

// NewRewriteMap creates an empty RewriteMap.
func NewRewriteMap() RewriteMap {
	return RewriteMap{
		RelinkedLibs:       make(map[LibraryKey]string),
		RelinkedLibsAssets: make(map[LibraryKey]string),
	}
}

// Lookup returns the relinked path for a key from either partition.
func (m RewriteMap) Lookup(key LibraryKey) (string, bool) {
	if p, ok := m.RelinkedLibs[key]; ok {
		return p, true
	}
	p, ok := m.RelinkedLibsAssets[key]
	return p, ok
}

// Len returns the total number of entries across both partitions.
func (m RewriteMap) Len() int {
	return len(m.RelinkedLibs) + len(m.RelinkedLibsAssets)
}

// Plan is the output of the planner: the ordered relink DAG plus the
// plan-scoped constants every action reads.
type Plan struct {
	// Nodes lists every RelinkNode with dependents strictly before their
	// dependencies, suitable for a downstream scheduler.
	Nodes []*RelinkNode

	// Rewrites maps each input library to its relinked output path.
	Rewrites RewriteMap

	// KnownSymbols is, per cpu, the union of symbols defined by every input
	// library of that cpu. Computed once at plan time and read-only afterwards.
	KnownSymbols map[TargetCpu]*SymbolSet
}
