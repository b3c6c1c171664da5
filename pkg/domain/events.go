package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter EventType = "step_enter"
	EventStepLeave EventType = "step_leave"
	EventBranch    EventType = "branch"
	EventRunEnd    EventType = "run_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// StepEvent represents entry into or exit from a step.
type StepEvent struct {
	EventBase
	Step     string        `json:"step"`
	Attempt  int           `json:"attempt"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// BranchEvent records the decision taken at the fork.
type BranchEvent struct {
	EventBase
	From    string `json:"from"`
	Branch  Branch `json:"branch"`
	To      string `json:"to"`
	Verdict string `json:"verdict,omitempty"`
	Attempt int    `json:"attempt"`
}

// RunEvent marks the end of a run, successful or not.
type RunEvent struct {
	EventBase
	Steps    int           `json:"steps"`
	Attempts int           `json:"attempts"`
	Duration time.Duration `json:"duration"`
	Kind     ErrorKind     `json:"kind,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
// Every hook is optional.
type LifecycleHooks struct {
	OnStepEnter func(context.Context, *StepEvent)
	OnStepLeave func(context.Context, *StepEvent)
	OnBranch    func(context.Context, *BranchEvent)
	OnRunEnd    func(context.Context, *RunEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStepEnter: chain(h.OnStepEnter, other.OnStepEnter),
		OnStepLeave: chain(h.OnStepLeave, other.OnStepLeave),
		OnBranch:    chain(h.OnBranch, other.OnBranch),
		OnRunEnd:    chain(h.OnRunEnd, other.OnRunEnd),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
