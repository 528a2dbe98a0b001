package symdump

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/xdso/internal/adapters/shell" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/xdso/internal/core/ports"
)

// NodeID is the unique identifier for the symbol extractor Graft node.
const NodeID graft.ID = "adapter.symdump.extractor"

func init() {
	graft.Register(graft.Node[ports.SymbolExtractor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.SymbolExtractor, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewExtractor(runner), nil
		},
	})
}
