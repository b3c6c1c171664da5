package domain

import "fmt"

// State represents the snapshot of one workflow run.
// It is owned by the engine and only changes through Apply.
type State struct {
	// RunID correlates logs, events and sink writes of a single run.
	RunID string `json:"run_id"`

	// RawInput is the unstructured product text. Immutable after NewState.
	RawInput string `json:"raw_input"`

	// Product is the primary record, set once by the extraction step.
	Product *Product `json:"product,omitempty"`

	// Competitor is the synthetic counterpart record. Created at most once.
	Competitor *Product `json:"competitor,omitempty"`

	// Questions is replaced wholesale by every generation attempt.
	Questions []Question `json:"questions"`

	// QualityVerdict is nil when the last review passed, otherwise the failure reason.
	QualityVerdict *string `json:"quality_verdict,omitempty"`

	// RetryCount is the number of generation attempts made so far.
	RetryCount int `json:"retry_count"`

	// Analysis is produced once, after the fork resolves to proceed.
	Analysis *Analysis `json:"analysis,omitempty"`

	// Artifacts is produced by the terminal step.
	Artifacts Artifacts `json:"artifacts"`

	// History tracks the steps executed, in order.
	History []string `json:"history"`

	// Degraded is true when the artifacts were rendered from content that failed review.
	Degraded bool `json:"degraded,omitempty"`
}

// NewState creates a clean state holding only the raw input.
func NewState(runID, rawInput string) State {
	return State{
		RunID:     runID,
		RawInput:  rawInput,
		Questions: []Question{},
		History:   []string{},
	}
}

// Verdict is the outcome of a quality review as carried by an Update.
// An empty Reason means the review passed.
type Verdict struct {
	Reason string
}

// Pass returns a verdict that clears any recorded failure.
func Pass() *Verdict {
	return &Verdict{}
}

// Fail returns a verdict that records the given failure reason.
func Fail(reason string) *Verdict {
	return &Verdict{Reason: reason}
}

// Passed reports whether the verdict is a pass.
func (v *Verdict) Passed() bool {
	return v.Reason == ""
}

// Update is the partial state returned by a step.
// A nil field means "untouched"; the engine overlays every non-nil field.
type Update struct {
	Product        *Product
	Competitor     *Product
	Questions      *[]Question
	QualityVerdict *Verdict
	Analysis       *Analysis
	Artifacts      *Artifacts

	// CountAttempt increments RetryCount by exactly one.
	CountAttempt bool
}

// Apply overlays the update on a copy of the state and returns it.
// Set-once fields (Product, Competitor, Analysis) that are already present
// cannot be replaced; trying to do so is a contract violation.
func (s State) Apply(u Update) (State, error) {
	next := s
	next.History = append([]string(nil), s.History...)

	if u.Product != nil {
		if s.Product != nil {
			return s, fmt.Errorf("%w: product is already set", ErrContractViolation)
		}
		p := *u.Product
		next.Product = &p
	}

	if u.Competitor != nil {
		if s.Competitor != nil {
			return s, fmt.Errorf("%w: competitor is already set", ErrContractViolation)
		}
		c := *u.Competitor
		next.Competitor = &c
	}

	if u.Questions != nil {
		next.Questions = append([]Question{}, (*u.Questions)...)
	}

	if u.QualityVerdict != nil {
		if u.QualityVerdict.Passed() {
			next.QualityVerdict = nil
		} else {
			reason := u.QualityVerdict.Reason
			next.QualityVerdict = &reason
		}
	}

	if u.CountAttempt {
		next.RetryCount = s.RetryCount + 1
	}

	if u.Analysis != nil {
		if s.Analysis != nil {
			return s, fmt.Errorf("%w: analysis is already set", ErrContractViolation)
		}
		a := *u.Analysis
		next.Analysis = &a
	}

	if u.Artifacts != nil {
		next.Artifacts = *u.Artifacts
	}

	return next, nil
}

// Verdict returns the recorded failure reason and whether one is present.
func (s State) Verdict() (string, bool) {
	if s.QualityVerdict == nil {
		return "", false
	}
	return *s.QualityVerdict, true
}
