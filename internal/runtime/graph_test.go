package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/folio/internal/runtime"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noop = domain.StepFunc(func(context.Context, domain.State) (domain.Update, error) {
	return domain.Update{}, nil
})

func TestBuilder_Build(t *testing.T) {
	tests := []struct {
		name    string
		builder *runtime.Builder
		wantErr bool
	}{
		{
			name:    "Linear",
			builder: runtime.NewBuilder("a").Then("a", noop, "b").Then("b", noop, domain.StepEnd),
		},
		{
			name:    "Empty Entry",
			builder: runtime.NewBuilder("").Then("a", noop, domain.StepEnd),
			wantErr: true,
		},
		{
			name:    "Missing Entry",
			builder: runtime.NewBuilder("start").Then("a", noop, domain.StepEnd),
			wantErr: true,
		},
		{
			name:    "Unknown Target",
			builder: runtime.NewBuilder("a").Then("a", noop, "ghost"),
			wantErr: true,
		},
		{
			name:    "No Successor",
			builder: runtime.NewBuilder("a").Then("a", noop, ""),
			wantErr: true,
		},
		{
			name:    "Nil Step",
			builder: runtime.NewBuilder("a").Then("a", nil, domain.StepEnd),
			wantErr: true,
		},
		{
			name:    "Reserved Name",
			builder: runtime.NewBuilder("a").Then("a", noop, domain.StepEnd).Then(domain.StepEnd, noop, "a"),
			wantErr: true,
		},
		{
			name: "Fork Without Decision",
			builder: runtime.NewBuilder("a").
				Fork("a", noop, runtime.Fork{Retry: "a", Proceed: domain.StepEnd}),
			wantErr: true,
		},
		{
			name: "Fork With Unknown Branch",
			builder: runtime.NewBuilder("a").
				Fork("a", noop, runtime.Fork{Retry: "ghost", Proceed: domain.StepEnd, Decide: runtime.Decide}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := tt.builder.Build()
			if tt.wantErr {
				assert.ErrorIs(t, err, runtime.ErrInvalidGraph)
				assert.Nil(t, g)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, g)
		})
	}
}

func TestContentGraph_RequiresEveryStep(t *testing.T) {
	steps := newFakeWorkflow().steps()
	steps.Analyze = nil

	_, err := runtime.ContentGraph(steps)
	assert.ErrorIs(t, err, runtime.ErrInvalidGraph)
}

func TestDecide(t *testing.T) {
	reason := "Generated only 14 questions. Requirement is STRICTLY 15 or more."

	tests := []struct {
		name    string
		verdict *string
		retries int
		limit   int
		want    domain.Branch
	}{
		{"Pass", nil, 1, 3, domain.BranchProceed},
		{"Fail Under Limit", &reason, 1, 3, domain.BranchRetry},
		{"Fail One Below Limit", &reason, 2, 3, domain.BranchRetry},
		{"Fail At Limit", &reason, 3, 3, domain.BranchProceed},
		{"Fail Past Limit", &reason, 4, 3, domain.BranchProceed},
		{"Default Limit", &reason, 2, 0, domain.BranchRetry},
		{"Default Limit Reached", &reason, 3, 0, domain.BranchProceed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.NewState("r", "raw")
			s.QualityVerdict = tt.verdict
			s.RetryCount = tt.retries
			assert.Equal(t, tt.want, runtime.Decide(s, tt.limit))
		})
	}
}
