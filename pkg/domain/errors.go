package domain

import (
	"errors"
	"fmt"
)

// ErrorKind names the category of a run failure.
type ErrorKind string

const (
	// KindContractViolation: a step found a required state field missing (or
	// tried to overwrite a set-once field) and has no way to proceed.
	KindContractViolation ErrorKind = "contract_violation"
	// KindExhaustedRetries: the retry limit was reached while the quality verdict still failed.
	KindExhaustedRetries ErrorKind = "exhausted_retries"
	// KindStepLimit: the outer limit on total step invocations was reached.
	KindStepLimit ErrorKind = "step_limit"
	// KindStepFailed: a step returned an error it could not degrade from.
	KindStepFailed ErrorKind = "step_failed"
	// KindCanceled: the run context was canceled or timed out.
	KindCanceled ErrorKind = "canceled"
)

// Sentinel errors, one per ErrorKind, for use with errors.Is.
var (
	ErrContractViolation = errors.New("contract violation")
	ErrExhaustedRetries  = errors.New("retries exhausted")
	ErrStepLimit         = errors.New("step limit reached")
	ErrStepFailed        = errors.New("step failed")
	ErrCanceled          = errors.New("run canceled")
)

// ErrArtifactsNotFound is returned when a run ID cannot be found in an artifact store.
var ErrArtifactsNotFound = errors.New("artifacts not found")

var kindSentinels = map[ErrorKind]error{
	KindContractViolation: ErrContractViolation,
	KindExhaustedRetries:  ErrExhaustedRetries,
	KindStepLimit:         ErrStepLimit,
	KindStepFailed:        ErrStepFailed,
	KindCanceled:          ErrCanceled,
}

// RunError is the single failure object a caller receives from a run.
type RunError struct {
	Kind ErrorKind
	// Step is the step at which the failure occurred.
	Step string
	// Reason is the human-readable cause. For exhausted retries it is the last verdict.
	Reason string
	// Attempts is the number of generation attempts made.
	Attempts int
	// Best is the state of the attempt with the most questions.
	// It is only set for KindExhaustedRetries.
	Best *State
	// Err is the underlying cause, if any.
	Err error
}

func (e *RunError) Error() string {
	msg := fmt.Sprintf("%s at step '%s'", e.Kind, e.Step)
	if e.Kind == KindExhaustedRetries {
		msg += fmt.Sprintf(" after %d attempts", e.Attempts)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil && e.Err.Error() != e.Reason {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *RunError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// KindOf returns the kind of the RunError in err's chain, or "" when there is none.
func KindOf(err error) ErrorKind {
	var re *RunError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}
