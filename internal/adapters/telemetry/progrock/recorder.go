// Package progrock provides the Progrock implementation of the tracer adapter.
package progrock

import (
	"context"
	"fmt"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/xdso/internal/core/ports"
)

// Recorder implements ports.Tracer using the progrock library: one vertex per
// relink action.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a new Recorder with a default tape.
func New() ports.Tracer {
	tape := progrock.NewTape()
	return NewRecorder(tape)
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	rec := progrock.NewRecorder(w)
	return &Recorder{
		w:   w,
		rec: rec,
	}
}

// Start begins recording a new vertex named after the action.
func (r *Recorder) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	if cfg.Cached {
		v.Cached()
	}
	return ctx, &Span{vertex: v}
}

// EmitPlan records the planned action set as a single vertex.
func (r *Recorder) EmitPlan(_ context.Context, actionIDs []string) {
	v := r.rec.Vertex(digest.FromString("xdso-plan"), fmt.Sprintf("plan: %d relink actions", len(actionIDs)))
	for _, id := range actionIDs {
		_, _ = fmt.Fprintln(v.Stdout(), id)
	}
	v.Done(nil)
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
