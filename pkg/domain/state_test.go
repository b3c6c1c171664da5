package domain_test

import (
	"testing"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_ApplyOverlaysOnlyPresentFields(t *testing.T) {
	s := domain.NewState("run-1", "raw text")
	s.Product = &domain.Product{Name: "GlowBoost"}

	qs := []domain.Question{{Category: "Usage", Question: "How?", Answer: "Daily."}}
	next, err := s.Apply(domain.Update{Questions: &qs, CountAttempt: true})
	require.NoError(t, err)

	assert.Equal(t, "raw text", next.RawInput)
	assert.Equal(t, "GlowBoost", next.Product.Name)
	assert.Equal(t, qs, next.Questions)
	assert.Equal(t, 1, next.RetryCount)
	assert.Nil(t, next.QualityVerdict)

	// The original state is left untouched.
	assert.Empty(t, s.Questions)
	assert.Equal(t, 0, s.RetryCount)
}

func TestState_ApplyReplacesQuestionsWholesale(t *testing.T) {
	s := domain.NewState("run-1", "raw")
	first := []domain.Question{{Question: "a"}, {Question: "b"}}
	s, err := s.Apply(domain.Update{Questions: &first})
	require.NoError(t, err)

	empty := []domain.Question{}
	s, err = s.Apply(domain.Update{Questions: &empty})
	require.NoError(t, err)
	assert.Empty(t, s.Questions)

	// Mutating the slice handed to Apply does not leak into the state.
	second := []domain.Question{{Question: "c"}}
	s, err = s.Apply(domain.Update{Questions: &second})
	require.NoError(t, err)
	second[0].Question = "mutated"
	assert.Equal(t, "c", s.Questions[0].Question)
}

func TestState_ApplyVerdict(t *testing.T) {
	s := domain.NewState("run-1", "raw")

	s, err := s.Apply(domain.Update{QualityVerdict: domain.Fail("too few")})
	require.NoError(t, err)
	reason, failed := s.Verdict()
	assert.True(t, failed)
	assert.Equal(t, "too few", reason)

	// A nil verdict leaves the recorded failure alone.
	s, err = s.Apply(domain.Update{})
	require.NoError(t, err)
	_, failed = s.Verdict()
	assert.True(t, failed)

	s, err = s.Apply(domain.Update{QualityVerdict: domain.Pass()})
	require.NoError(t, err)
	_, failed = s.Verdict()
	assert.False(t, failed)
}

func TestState_ApplySetOnceFields(t *testing.T) {
	tests := []struct {
		name   string
		seed   domain.Update
		second domain.Update
	}{
		{
			name:   "product",
			seed:   domain.Update{Product: &domain.Product{Name: "A"}},
			second: domain.Update{Product: &domain.Product{Name: "B"}},
		},
		{
			name:   "competitor",
			seed:   domain.Update{Competitor: &domain.Product{Name: "A"}},
			second: domain.Update{Competitor: &domain.Product{Name: "B"}},
		},
		{
			name:   "analysis",
			seed:   domain.Update{Analysis: &domain.Analysis{Verdict: "Better Value"}},
			second: domain.Update{Analysis: &domain.Analysis{Verdict: "Premium Choice"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := domain.NewState("run", "raw").Apply(tt.seed)
			require.NoError(t, err)

			_, err = s.Apply(tt.second)
			assert.ErrorIs(t, err, domain.ErrContractViolation)
		})
	}
}

func TestState_RetryCountNeverDecrements(t *testing.T) {
	s := domain.NewState("run", "raw")
	for i := 1; i <= 3; i++ {
		var err error
		s, err = s.Apply(domain.Update{CountAttempt: true})
		require.NoError(t, err)
		assert.Equal(t, i, s.RetryCount)
	}

	s, err := s.Apply(domain.Update{QualityVerdict: domain.Pass()})
	require.NoError(t, err)
	assert.Equal(t, 3, s.RetryCount)
}
