// Package app implements the application layer for xdso.
package app

import (
	"context"
	"encoding/json"
	"path/filepath"
	"runtime"
	"strconv"

	"go.trai.ch/xdso/internal/adapters/fs" //nolint:depguard // Rewrite map publication uses the fs adapter
	"go.trai.ch/xdso/internal/core/domain"
	"go.trai.ch/xdso/internal/core/ports"
	"go.trai.ch/xdso/internal/engine/planner"
	"go.trai.ch/xdso/internal/engine/relink"
	"go.trai.ch/xdso/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// RunOptions are the per-invocation knobs of a relink run.
type RunOptions struct {
	// ManifestPath is the xdso.yaml location.
	ManifestPath string
	// OutDir is where relinked libraries and symbol artifacts land.
	OutDir string
	// RewriteMapPath is where the rewrite map is published. Empty means
	// OutDir/rewrite_map.json.
	RewriteMapPath string
	// Parallelism bounds concurrent relink actions; zero means NumCPU.
	Parallelism int
}

// App represents the main application logic: plan, execute, publish.
type App struct {
	loader    ports.ManifestLoader
	planner   *planner.Planner
	scheduler *scheduler.Scheduler
	extractor ports.SymbolExtractor
	runner    ports.CommandRunner
	verifier  ports.LinkVerifier
	store     ports.ArtifactStore
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ManifestLoader,
	plnr *planner.Planner,
	sched *scheduler.Scheduler,
	extractor ports.SymbolExtractor,
	runner ports.CommandRunner,
	verifier ports.LinkVerifier,
	store ports.ArtifactStore,
	logger ports.Logger,
) *App {
	return &App{
		loader:    loader,
		planner:   plnr,
		scheduler: sched,
		extractor: extractor,
		runner:    runner,
		verifier:  verifier,
		store:     store,
		logger:    logger,
	}
}

// Run executes one full relink: load the manifest, plan, run the action DAG,
// register the derived artifacts and publish the rewrite map.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	req, toolchains, oracle, err := a.loader.Load(opts.ManifestPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	plan, err := a.planner.Plan(ctx, req, oracle, toolchains, opts.OutDir)
	if err != nil {
		return zerr.Wrap(err, "planning failed")
	}

	executor := relink.NewExecutor(a.extractor, a.runner, a.verifier, toolchains, plan.KnownSymbols, a.logger)

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	if err := a.scheduler.Run(ctx, plan, executor, parallelism); err != nil {
		return zerr.Wrap(err, "relink execution failed")
	}

	if err := a.registerArtifacts(plan); err != nil {
		return err
	}

	mapPath := opts.RewriteMapPath
	if mapPath == "" {
		mapPath = defaultRewriteMapPath(opts.OutDir)
	}
	if err := a.publishRewriteMap(mapPath, plan.Rewrites); err != nil {
		return err
	}

	a.logger.Info("relinked " + strconv.Itoa(plan.Rewrites.Len()) + " libraries, rewrite map at " + mapPath)
	return nil
}

// registerArtifacts records every produced artifact in the content-addressed
// index.
func (a *App) registerArtifacts(plan *domain.Plan) error {
	for _, node := range plan.Nodes {
		if _, err := a.store.Register(node.OutputPath); err != nil {
			return err
		}
		if _, err := a.store.Register(node.SymbolsNeededPath); err != nil {
			return err
		}
	}
	return nil
}

// rewriteMapDTO is the serialized form of the rewrite map, mirroring the
// input partitioning.
type rewriteMapDTO struct {
	Libs      map[string]string `json:"libs"`
	AssetLibs map[string]string `json:"asset_libs"`
}

func (a *App) publishRewriteMap(path string, rewrites domain.RewriteMap) error {
	dto := rewriteMapDTO{
		Libs:      make(map[string]string, len(rewrites.RelinkedLibs)),
		AssetLibs: make(map[string]string, len(rewrites.RelinkedLibsAssets)),
	}
	for key, out := range rewrites.RelinkedLibs {
		dto.Libs[key.String()] = out
	}
	for key, out := range rewrites.RelinkedLibsAssets {
		dto.AssetLibs[key.String()] = out
	}

	data, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal rewrite map")
	}
	return fs.WriteFileAtomic(path, append(data, '\n'), 0o644)
}

func defaultRewriteMapPath(outDir string) string {
	return filepath.Join(outDir, "rewrite_map.json")
}
