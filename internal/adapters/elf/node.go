package elf

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/xdso/internal/core/ports"
)

// NodeID is the unique identifier for the link verifier Graft node.
const NodeID graft.ID = "adapter.elf.verifier"

func init() {
	graft.Register(graft.Node[ports.LinkVerifier]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.LinkVerifier, error) {
			return NewVerifier(), nil
		},
	})
}
