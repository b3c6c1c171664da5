package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/folio/pkg/domain"
)

// Engine interprets a Graph against a State.
// It holds no per-run data, so a single Engine serves concurrent runs.
type Engine struct {
	graph      *Graph
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	maxRetries int
	maxSteps   int
	stepsSet   bool
}

// NewEngine creates an engine for the given graph.
func NewEngine(g *Graph, opts ...EngineOption) *Engine {
	e := &Engine{
		graph:      g,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxRetries: DefaultMaxRetries,
		maxSteps:   DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(e)
	}
	// Without an explicit step limit, a larger retry limit raises it.
	if !e.stepsSet && e.maxSteps < MinSteps(e.maxRetries) {
		e.maxSteps = MinSteps(e.maxRetries)
	}
	return e
}

// MaxRetries returns the configured limit on generation attempts.
func (e *Engine) MaxRetries() int { return e.maxRetries }

// MaxSteps returns the configured limit on step invocations.
func (e *Engine) MaxSteps() int { return e.maxSteps }

// Inspect returns the transition table.
func (e *Engine) Inspect() []domain.Transition {
	return e.graph.Transitions()
}

// Run executes the graph from its entry step until the end sink is reached
// or the run fails. Failures are always *domain.RunError.
func (e *Engine) Run(ctx context.Context, s domain.State) (domain.State, error) {
	return e.RunFrom(ctx, s, e.graph.Entry())
}

// RunFrom executes the graph starting at the named step.
func (e *Engine) RunFrom(ctx context.Context, s domain.State, from string) (domain.State, error) {
	if !e.graph.Has(from) {
		return s, fmt.Errorf("%w: unknown step '%s'", ErrInvalidGraph, from)
	}

	started := time.Now()
	steps := 0
	var best *domain.State

	finish := func(st domain.State, err error) (domain.State, error) {
		e.emitRunEnd(ctx, st, steps, started, err)
		if err != nil {
			e.logger.WarnContext(ctx, "run failed", "run_id", st.RunID, "steps", steps, "attempt", st.RetryCount, "error", err)
		} else {
			e.logger.InfoContext(ctx, "run completed", "run_id", st.RunID, "steps", steps, "attempt", st.RetryCount, "duration", time.Since(started))
		}
		return st, err
	}

	cursor := from
	for cursor != domain.StepEnd {
		if err := ctx.Err(); err != nil {
			return finish(s, &domain.RunError{Kind: domain.KindCanceled, Step: cursor, Attempts: s.RetryCount, Err: err})
		}
		if steps >= e.maxSteps {
			return finish(s, &domain.RunError{
				Kind:     domain.KindStepLimit,
				Step:     cursor,
				Reason:   fmt.Sprintf("reached the limit of %d step invocations", e.maxSteps),
				Attempts: s.RetryCount,
			})
		}

		next, err := e.invoke(ctx, s, cursor)
		steps++
		if err != nil {
			return finish(s, err)
		}
		s = next

		route := e.graph.routes[cursor]
		if route.Fork == nil {
			cursor = route.Next
			continue
		}

		if best == nil || len(s.Questions) > len(best.Questions) {
			snapshot := s
			best = &snapshot
		}

		branch := route.Fork.Decide(s, e.maxRetries)
		reason, failed := s.Verdict()

		// The guard holds even when a custom decision keeps asking for retries.
		if s.RetryCount >= e.maxRetries && (failed || branch == domain.BranchRetry) {
			e.logger.InfoContext(ctx, "retries exhausted", "run_id", s.RunID, "step", cursor, "attempt", s.RetryCount, "verdict", reason)
			return finish(s, &domain.RunError{
				Kind:     domain.KindExhaustedRetries,
				Step:     cursor,
				Reason:   reason,
				Attempts: s.RetryCount,
				Best:     best,
			})
		}

		to := route.Fork.Proceed
		if branch == domain.BranchRetry {
			to = route.Fork.Retry
		}
		e.logger.InfoContext(ctx, "branch", "run_id", s.RunID, "step", cursor, "branch", branch, "to", to, "attempt", s.RetryCount)
		e.emitBranch(ctx, s, cursor, branch, to)
		cursor = to
	}

	return finish(s, nil)
}

// invoke runs one step and merges its update.
func (e *Engine) invoke(ctx context.Context, s domain.State, name string) (domain.State, error) {
	step := e.graph.steps[name]

	e.logger.DebugContext(ctx, "entering step", "run_id", s.RunID, "step", name, "attempt", s.RetryCount)
	e.emitStepEnter(ctx, s, name)

	start := time.Now()
	u, err := step.Run(ctx, s)
	if err != nil {
		rerr := e.classify(ctx, s, name, err)
		e.emitStepLeave(ctx, s, name, time.Since(start), rerr)
		return s, rerr
	}

	next, err := s.Apply(u)
	if err != nil {
		rerr := &domain.RunError{Kind: domain.KindContractViolation, Step: name, Reason: err.Error(), Attempts: s.RetryCount, Err: err}
		e.emitStepLeave(ctx, s, name, time.Since(start), rerr)
		return s, rerr
	}
	next.History = append(next.History, name)

	e.emitStepLeave(ctx, next, name, time.Since(start), nil)
	e.logger.DebugContext(ctx, "left step", "run_id", next.RunID, "step", name, "attempt", next.RetryCount, "duration", time.Since(start))
	return next, nil
}

func (e *Engine) classify(ctx context.Context, s domain.State, name string, err error) error {
	var rerr *domain.RunError
	if errors.As(err, &rerr) {
		return rerr
	}

	kind := domain.KindStepFailed
	switch {
	case errors.Is(err, domain.ErrContractViolation):
		kind = domain.KindContractViolation
	case ctx.Err() != nil:
		kind = domain.KindCanceled
	}
	return &domain.RunError{Kind: kind, Step: name, Reason: err.Error(), Attempts: s.RetryCount, Err: err}
}
