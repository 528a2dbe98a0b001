package planner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/xdso/internal/adapters/logger"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/xdso/internal/adapters/symdump" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/xdso/internal/core/ports"
)

// NodeID is the unique identifier for the planner Graft node.
const NodeID graft.ID = "engine.planner"

func init() {
	graft.Register(graft.Node[*Planner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			symdump.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Planner, error) {
			extractor, err := graft.Dep[ports.SymbolExtractor](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(extractor, log), nil
		},
	})
}
