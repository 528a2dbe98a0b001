// Package scheduler executes a relink plan as a DAG with bounded parallelism.
package scheduler

import (
	"context"
	"errors"
	"sync"

	"go.trai.ch/xdso/internal/core/domain"
	"go.trai.ch/xdso/internal/core/ports"
	"go.trai.ch/zerr"
)

// ActionStatus represents the status of one relink action.
type ActionStatus string

const (
	// StatusPending indicates the action is waiting on upstream artifacts.
	StatusPending ActionStatus = "Pending"
	// StatusRunning indicates the action is currently executing.
	StatusRunning ActionStatus = "Running"
	// StatusCompleted indicates the action finished successfully.
	StatusCompleted ActionStatus = "Completed"
	// StatusFailed indicates the action execution failed.
	StatusFailed ActionStatus = "Failed"
)

// Scheduler runs the actions of a plan, honoring the declared dependency
// edges: an action starts only after every upstream has completed, which
// guarantees its upstream symbols-needed files exist and are complete.
type Scheduler struct {
	logger ports.Logger
	tracer ports.Tracer

	mu     sync.RWMutex
	status map[string]ActionStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(logger ports.Logger, tracer ports.Tracer) *Scheduler {
	return &Scheduler{
		logger: logger,
		tracer: tracer,
		status: make(map[string]ActionStatus),
	}
}

// Status retrieves the status of an action by its id.
func (s *Scheduler) Status(actionID string) ActionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status[actionID]
}

func (s *Scheduler) updateStatus(actionID string, status ActionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[actionID] = status
}

// Run executes the plan's actions with the specified parallelism. Errors of
// individual actions are collected; actions downstream of a failure never
// start.
func (s *Scheduler) Run(ctx context.Context, plan *domain.Plan, relinker ports.Relinker, parallelism int) error {
	ids := make([]string, len(plan.Nodes))
	for i, node := range plan.Nodes {
		ids[i] = node.ActionID()
		s.updateStatus(ids[i], StatusPending)
	}
	s.tracer.EmitPlan(ctx, ids)

	state := s.newRunState(ctx, plan, relinker, parallelism)

	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			return errors.Join(state.errs, state.ctx.Err())
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}

	if state.ctx.Err() != nil {
		state.errs = errors.Join(state.errs, state.ctx.Err())
	}

	return state.errs
}

type result struct {
	node *domain.RelinkNode
	err  error
}

type schedulerRunState struct {
	inDegree    map[*domain.RelinkNode]int
	dependents  map[*domain.RelinkNode][]*domain.RelinkNode
	ready       []*domain.RelinkNode
	active      int
	resultsCh   chan result
	errs        error
	ctx         context.Context
	relinker    ports.Relinker
	parallelism int
	s           *Scheduler
}

func (s *Scheduler) newRunState(ctx context.Context, plan *domain.Plan, relinker ports.Relinker, parallelism int) *schedulerRunState {
	inDegree := make(map[*domain.RelinkNode]int, len(plan.Nodes))
	dependents := make(map[*domain.RelinkNode][]*domain.RelinkNode, len(plan.Nodes))

	for _, node := range plan.Nodes {
		inDegree[node] = len(node.UpstreamDeps)
		for _, up := range node.UpstreamDeps {
			dependents[up] = append(dependents[up], node)
		}
	}

	// Plan order keeps the ready queue deterministic.
	var ready []*domain.RelinkNode
	for _, node := range plan.Nodes {
		if inDegree[node] == 0 {
			ready = append(ready, node)
		}
	}

	return &schedulerRunState{
		inDegree:    inDegree,
		dependents:  dependents,
		ready:       ready,
		resultsCh:   make(chan result, parallelism),
		ctx:         ctx,
		relinker:    relinker,
		parallelism: parallelism,
		s:           s,
	}
}

func (state *schedulerRunState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *schedulerRunState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		node := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.s.updateStatus(node.ActionID(), StatusRunning)

		go func(n *domain.RelinkNode) {
			state.resultsCh <- result{node: n, err: state.executeAction(state.ctx, n)}
		}(node)
	}
}

func (state *schedulerRunState) executeAction(ctx context.Context, node *domain.RelinkNode) error {
	ctx, span := state.s.tracer.Start(ctx, node.ActionID())
	defer span.End()

	if err := state.relinker.Relink(ctx, node); err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttribute("output", node.OutputPath)
	return nil
}

func (state *schedulerRunState) handleResult(res result) {
	state.active--
	if res.err != nil {
		wrappedErr := zerr.With(zerr.Wrap(res.err, "relink action failed"), "action", res.node.ActionID())
		state.errs = errors.Join(state.errs, wrappedErr)
		state.s.updateStatus(res.node.ActionID(), StatusFailed)
		return
	}

	state.s.updateStatus(res.node.ActionID(), StatusCompleted)
	for _, dep := range state.dependents[res.node] {
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}
