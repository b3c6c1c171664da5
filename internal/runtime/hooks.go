package runtime

import (
	"context"
	"time"

	"github.com/aretw0/folio/pkg/domain"
)

func (e *Engine) emitStepEnter(ctx context.Context, s domain.State, step string) {
	if e.hooks.OnStepEnter == nil {
		return
	}
	e.hooks.OnStepEnter(ctx, &domain.StepEvent{
		EventBase: e.base(domain.EventStepEnter, s.RunID),
		Step:      step,
		Attempt:   s.RetryCount,
	})
}

func (e *Engine) emitStepLeave(ctx context.Context, s domain.State, step string, d time.Duration, err error) {
	if e.hooks.OnStepLeave == nil {
		return
	}
	e.hooks.OnStepLeave(ctx, &domain.StepEvent{
		EventBase: e.base(domain.EventStepLeave, s.RunID),
		Step:      step,
		Attempt:   s.RetryCount,
		Duration:  d,
		Err:       err,
	})
}

func (e *Engine) emitBranch(ctx context.Context, s domain.State, from string, b domain.Branch, to string) {
	if e.hooks.OnBranch == nil {
		return
	}
	verdict, _ := s.Verdict()
	e.hooks.OnBranch(ctx, &domain.BranchEvent{
		EventBase: e.base(domain.EventBranch, s.RunID),
		From:      from,
		Branch:    b,
		To:        to,
		Verdict:   verdict,
		Attempt:   s.RetryCount,
	})
}

func (e *Engine) emitRunEnd(ctx context.Context, s domain.State, steps int, started time.Time, err error) {
	if e.hooks.OnRunEnd == nil {
		return
	}
	e.hooks.OnRunEnd(ctx, &domain.RunEvent{
		EventBase: e.base(domain.EventRunEnd, s.RunID),
		Steps:     steps,
		Attempts:  s.RetryCount,
		Duration:  time.Since(started),
		Kind:      domain.KindOf(err),
	})
}

func (e *Engine) base(t domain.EventType, runID string) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, RunID: runID}
}
