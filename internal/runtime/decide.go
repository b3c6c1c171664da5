package runtime

import "github.com/aretw0/folio/pkg/domain"

// DefaultMaxRetries bounds the number of generation attempts.
const DefaultMaxRetries = 3

// DefaultMaxSteps bounds the total number of step invocations in one run.
const DefaultMaxSteps = 10

// MinSteps is the number of step invocations a run needs to use all of its
// maxRetries generation attempts: extract, one generate and validate pair
// per attempt, then analyze and render.
func MinSteps(maxRetries int) int {
	return 2*maxRetries + 3
}

// Decide returns BranchRetry when a quality verdict is present and fewer than
// limit attempts have been made. Otherwise it returns BranchProceed.
// A non-positive limit falls back to DefaultMaxRetries.
func Decide(s domain.State, limit int) domain.Branch {
	if limit <= 0 {
		limit = DefaultMaxRetries
	}
	if _, failed := s.Verdict(); failed && s.RetryCount < limit {
		return domain.BranchRetry
	}
	return domain.BranchProceed
}
