// Package planner turns an input library set into an ordered relink plan.
//
// Relinking works in the reverse order of the original link: as each library
// is relinked, the set of symbols it still needs from its dependencies is
// known, so every library can be reduced to exactly what its (already
// relinked) dependents demand.
package planner

import (
	"context"
	"path/filepath"
	"sort"
	"strconv"

	"go.trai.ch/xdso/internal/core/domain"
	"go.trai.ch/xdso/internal/core/ports"
	"go.trai.ch/xdso/internal/engine/analyzer"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Planner builds relink plans. Planning is single-threaded apart from the
// read-only symbol extraction of the inputs.
type Planner struct {
	extractor ports.SymbolExtractor
	logger    ports.Logger
}

// New creates a Planner.
func New(extractor ports.SymbolExtractor, logger ports.Logger) *Planner {
	return &Planner{extractor: extractor, logger: logger}
}

// libEntry is one input library with its partition tag resolved.
type libEntry struct {
	key    domain.LibraryKey
	handle domain.LibraryHandle
	asset  bool
}

// Plan partitions the request per cpu, computes dependent sets for the owned
// libraries, and emits the relink DAG with copied libraries upstream of every
// owned node of their cpu. Outputs land under outDir.
func (p *Planner) Plan(
	ctx context.Context,
	req *domain.RelinkRequest,
	oracle ports.DependencyOracle,
	toolchains ports.ToolchainProvider,
	outDir string,
) (*domain.Plan, error) {
	if req.Empty() {
		return nil, domain.ErrEmptyInput
	}

	byCpu := p.partition(req, oracle)

	cpus := make([]domain.TargetCpu, 0, len(byCpu))
	for cpu := range byCpu {
		cpus = append(cpus, cpu)
	}
	sort.Slice(cpus, func(i, j int) bool { return cpus[i] < cpus[j] })

	plan := &domain.Plan{
		Rewrites:     domain.NewRewriteMap(),
		KnownSymbols: make(map[domain.TargetCpu]*domain.SymbolSet, len(cpus)),
	}

	for _, cpu := range cpus {
		tc, err := toolchains.For(cpu)
		if err != nil {
			return nil, err
		}

		entries := byCpu[cpu]
		known, err := p.knownSymbols(ctx, entries, tc)
		if err != nil {
			return nil, err
		}
		plan.KnownSymbols[cpu] = known

		if err := p.planCpu(plan, entries, oracle, outDir); err != nil {
			return nil, err
		}
	}

	p.logger.Info("planned " + strconv.Itoa(len(plan.Nodes)) + " relink actions across " +
		strconv.Itoa(len(cpus)) + " cpus")
	return plan, nil
}

// partition resolves each input library to an owned or copied handle and
// groups the entries by cpu. Libraries whose source cannot be traced to a
// build-graph node are sealed inputs with unknowable dependents.
func (p *Planner) partition(req *domain.RelinkRequest, oracle ports.DependencyOracle) map[domain.TargetCpu][]libEntry {
	byCpu := make(map[domain.TargetCpu][]libEntry)

	add := func(key domain.LibraryKey, path string, asset bool) {
		var handle domain.LibraryHandle
		if node, ok := oracle.NodeForLibrary(path); ok {
			handle = domain.OwnedHandle(path, node)
		} else {
			handle = domain.CopiedHandle(path)
		}
		byCpu[key.Cpu] = append(byCpu[key.Cpu], libEntry{key: key, handle: handle, asset: asset})
	}

	for key, path := range req.Libs {
		add(key, path, false)
	}
	for key, path := range req.AssetLibs {
		add(key, path, true)
	}

	// Map iteration above is unordered; sort for a deterministic plan.
	for cpu := range byCpu {
		entries := byCpu[cpu]
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].key.Name.String() < entries[j].key.Name.String()
		})
	}
	return byCpu
}

// knownSymbols unions the defined symbols of every input library of one cpu.
// Each library is read-only here, so extraction runs in parallel.
func (p *Planner) knownSymbols(ctx context.Context, entries []libEntry, tc domain.Toolchain) (*domain.SymbolSet, error) {
	results := make([]*domain.SymbolSet, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range entries {
		g.Go(func() error {
			defined, _, err := p.extractor.Extract(gctx, entry.handle.Path(), tc)
			if err != nil {
				return err
			}
			results[i] = defined
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	known := domain.NewSymbolSet()
	for _, defined := range results {
		known = known.Union(defined)
	}
	return known, nil
}

// planCpu emits the RelinkNodes for one cpu: copied libraries first (no
// upstreams), then the owned libraries with dependents strictly before their
// dependencies.
func (p *Planner) planCpu(
	plan *domain.Plan,
	entries []libEntry,
	oracle ports.DependencyOracle,
	outDir string,
) error {
	var owned, copied []libEntry
	for _, entry := range entries {
		if entry.handle.Owned() {
			owned = append(owned, entry)
		} else {
			copied = append(copied, entry)
		}
	}

	// Copied libraries become upstream of every owned node of this cpu: we
	// cannot know which symbols they will demand, so every symbol they use
	// must stay exported wherever it is defined.
	copiedNodes := make([]*domain.RelinkNode, 0, len(copied))
	for _, entry := range copied {
		node := p.newNode(entry, nil, outDir)
		copiedNodes = append(copiedNodes, node)
		plan.Nodes = append(plan.Nodes, node)
		p.record(plan, entry, node)
	}

	ownedNodes := make([]domain.NodeID, 0, len(owned))
	for _, entry := range owned {
		node, _ := entry.handle.Producer()
		ownedNodes = append(ownedNodes, node)
	}
	dependentsOf, err := analyzer.New(oracle).DependentsOf(ownedNodes)
	if err != nil {
		return err
	}

	// Dependents before dependencies: in an acyclic graph, a dependency's
	// dependent set strictly contains each of its dependents' sets plus the
	// dependent itself, so ascending set size is a valid processing order.
	sort.SliceStable(owned, func(i, j int) bool {
		ni, _ := owned[i].handle.Producer()
		nj, _ := owned[j].handle.Producer()
		return len(dependentsOf[ni]) < len(dependentsOf[nj])
	})

	planned := make(map[domain.NodeID]*domain.RelinkNode, len(owned))
	for _, entry := range owned {
		producer, _ := entry.handle.Producer()

		upstream := make([]*domain.RelinkNode, 0, len(copiedNodes)+len(dependentsOf[producer]))
		upstream = append(upstream, copiedNodes...)
		for _, dependent := range dependentsOf[producer] {
			dependentNode, ok := planned[dependent]
			if !ok {
				// Cannot happen for an acyclic graph; guard against a
				// miscounting oracle anyway.
				return zerr.With(zerr.Wrap(domain.ErrCyclicLibraryGraph, "dependent not yet planned"), "node", string(dependent))
			}
			upstream = append(upstream, dependentNode)
		}

		node := p.newNode(entry, upstream, outDir)
		planned[producer] = node
		plan.Nodes = append(plan.Nodes, node)
		p.record(plan, entry, node)
	}

	return nil
}

// newNode materializes one RelinkNode with its unique output directory.
func (p *Planner) newNode(entry libEntry, upstream []*domain.RelinkNode, outDir string) *domain.RelinkNode {
	name := entry.key.Name.String()
	actionDir := filepath.Join(outDir, string(entry.key.Cpu), name)
	return &domain.RelinkNode{
		Key:               entry.key,
		Input:             entry.handle,
		UpstreamDeps:      upstream,
		OutputPath:        filepath.Join(actionDir, name),
		SymbolsNeededPath: filepath.Join(actionDir, name+".symbols"),
	}
}

// record publishes the node's output path in the partition-mirroring rewrite map.
func (p *Planner) record(plan *domain.Plan, entry libEntry, node *domain.RelinkNode) {
	if entry.asset {
		plan.Rewrites.RelinkedLibsAssets[entry.key] = node.OutputPath
		return
	}
	plan.Rewrites.RelinkedLibs[entry.key] = node.OutputPath
}
