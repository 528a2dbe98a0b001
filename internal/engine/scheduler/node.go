package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/xdso/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/xdso/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/xdso/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(log, tracer), nil
		},
	})
}
