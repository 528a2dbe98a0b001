package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/xdso/internal/adapters/cas"     //nolint:depguard // Wired in app layer
	"go.trai.ch/xdso/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/xdso/internal/adapters/elf"     //nolint:depguard // Wired in app layer
	"go.trai.ch/xdso/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/xdso/internal/adapters/shell"   //nolint:depguard // Wired in app layer
	"go.trai.ch/xdso/internal/adapters/symdump" //nolint:depguard // Wired in app layer
	"go.trai.ch/xdso/internal/core/ports"
	"go.trai.ch/xdso/internal/engine/planner"
	"go.trai.ch/xdso/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components needed by the
// CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			planner.NodeID,
			scheduler.NodeID,
			symdump.NodeID,
			shell.NodeID,
			elf.NodeID,
			cas.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: application, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}

	plnr, err := graft.Dep[*planner.Planner](ctx)
	if err != nil {
		return nil, err
	}

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	extractor, err := graft.Dep[ports.SymbolExtractor](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[ports.CommandRunner](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.LinkVerifier](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ArtifactStore](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, plnr, sched, extractor, runner, verifier, store, log), nil
}
