package steps

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
)

// DefaultReviewReason is recorded when a review fails without a reason.
const DefaultReviewReason = "Quality review rejected the questions."

// failRegex matches FAIL, FAILED and FAILS as whole words.
var failRegex = regexp.MustCompile(`(?i)\bfail(?:ed|s)?\b`)

// Validate is the quality gate: a hard count check followed by an optional
// generator review.
type Validate struct {
	gen  ports.Generator
	opts options
}

// NewValidate creates the quality gate.
func NewValidate(gen ports.Generator, opts ...Option) *Validate {
	return &Validate{gen: gen, opts: newOptions(opts)}
}

// Run implements domain.Step. It always returns a verdict.
func (v *Validate) Run(ctx context.Context, s domain.State) (domain.Update, error) {
	if n := len(s.Questions); n < v.opts.minQuestions {
		return domain.Update{QualityVerdict: domain.Fail(HardGateReason(n, v.opts.minQuestions))}, nil
	}
	if !v.opts.softGate || v.gen == nil {
		return domain.Update{QualityVerdict: domain.Pass()}, nil
	}

	var product domain.Product
	if s.Product != nil {
		product = *s.Product
	}
	reply, err := v.gen.Generate(ctx, reviewPrompt(product, s.Questions))
	if err != nil {
		// The review is advisory: an unreachable reviewer does not block the run.
		v.opts.logger.WarnContext(ctx, "quality review unavailable, passing",
			"run_id", s.RunID, "step", domain.StepValidate, "error", err)
		return domain.Update{QualityVerdict: domain.Pass()}, nil
	}

	verdict := ParseReview(reply)
	if !verdict.Passed() {
		v.opts.logger.InfoContext(ctx, "quality review failed",
			"run_id", s.RunID, "step", domain.StepValidate, "verdict", verdict.Reason)
	}
	return domain.Update{QualityVerdict: verdict}, nil
}

// HardGateReason is the verdict for a question set below the threshold.
func HardGateReason(got, want int) string {
	return fmt.Sprintf("Generated only %d questions. Requirement is STRICTLY %d or more.", got, want)
}

// ParseReview reads a review reply. Any FAIL keyword fails the set, even
// after a PASS; a reply without one passes. The text after the first FAIL
// is the reason.
func ParseReview(reply string) *domain.Verdict {
	loc := failRegex.FindStringIndex(reply)
	if loc == nil {
		return domain.Pass()
	}
	reason := strings.TrimSpace(strings.TrimLeft(reply[loc[1]:], ":-.,;) \t\r\n"))
	if reason == "" {
		reason = DefaultReviewReason
	}
	return domain.Fail(reason)
}
