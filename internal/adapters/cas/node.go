package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/xdso/internal/adapters/fs" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/xdso/internal/core/ports"
)

// NodeID is the unique identifier for the artifact store Graft node.
const NodeID graft.ID = "adapter.cas.store"

// indexFile is where the artifact index lives, relative to the working dir.
const indexFile = "xdso_artifacts.json"

func init() {
	graft.Register(graft.Node[ports.ArtifactStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID},
		Run: func(ctx context.Context) (ports.ArtifactStore, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			store, err := NewStore(indexFile, hasher)
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
