package domain

import "context"

// Step names of the content workflow.
const (
	StepExtract  = "extract"
	StepGenerate = "generate"
	StepValidate = "validate"
	StepAnalyze  = "analyze"
	StepRender   = "render"

	// StepEnd is the sink of the graph. It is never executed.
	StepEnd = "end"
)

// Branch is the outcome of the branch decision at the fork.
type Branch string

const (
	BranchRetry   Branch = "retry"
	BranchProceed Branch = "proceed"
)

// Step is the unit of work the engine sequences.
// It reads the current state and returns the partial update to merge.
// A step never mutates the state it receives.
type Step interface {
	Run(ctx context.Context, s State) (Update, error)
}

// StepFunc adapts an ordinary function to the Step interface.
type StepFunc func(ctx context.Context, s State) (Update, error)

// Run calls f(ctx, s).
func (f StepFunc) Run(ctx context.Context, s State) (Update, error) {
	return f(ctx, s)
}

// Transition is one edge of the workflow graph as exposed for introspection.
type Transition struct {
	From string `json:"from"`
	To   string `json:"to"`
	// Branch labels the edges leaving the fork. Empty for unconditional edges.
	Branch Branch `json:"branch,omitempty"`
}
