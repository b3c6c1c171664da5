package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestRunError_IsMatchesKindSentinel(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &domain.RunError{
		Kind:     domain.KindExhaustedRetries,
		Step:     domain.StepValidate,
		Reason:   "Generated only 3 questions. Requirement is STRICTLY 15 or more.",
		Attempts: 3,
	})

	assert.ErrorIs(t, err, domain.ErrExhaustedRetries)
	assert.NotErrorIs(t, err, domain.ErrContractViolation)
	assert.Equal(t, domain.KindExhaustedRetries, domain.KindOf(err))
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestRunError_UnwrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := &domain.RunError{Kind: domain.KindStepFailed, Step: domain.StepRender, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, domain.ErrStepFailed)
	assert.Equal(t, "step_failed at step 'render': boom", err.Error())
}

func TestKindOf_NonRunError(t *testing.T) {
	assert.Equal(t, domain.ErrorKind(""), domain.KindOf(errors.New("plain")))
}
