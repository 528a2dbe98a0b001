package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/xdso/internal/adapters/telemetry/progrock"
	"go.trai.ch/xdso/internal/core/ports"
	"golang.org/x/term"
)

// TracerNodeID is the unique identifier for the tracer Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			// Vertex rendering only makes sense on an interactive terminal;
			// CI logs get the plain slog lines instead.
			if term.IsTerminal(int(os.Stderr.Fd())) {
				return progrock.New(), nil
			}
			return NewNoOpTracer(), nil
		},
	})
}
