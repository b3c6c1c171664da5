package folio_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/folio"
	"github.com/aretw0/folio/internal/testutils"
	"github.com/aretw0/folio/pkg/adapters/memory"
	"github.com/aretw0/folio/pkg/adapters/offline"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Engine implements ContentEngine
var _ ports.ContentEngine = (*folio.Engine)(nil)

func meta(t *testing.T, doc string) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &env))
	return env["meta"].(map[string]any)
}

func TestNew_RequiresGenerator(t *testing.T) {
	_, err := folio.New()
	assert.ErrorIs(t, err, folio.ErrNoGenerator)
}

func TestEngine_OfflineRun(t *testing.T) {
	store := memory.NewStore()
	eng, err := folio.New(
		folio.WithGenerator(offline.New()),
		folio.WithSink(store),
		folio.WithRunIDGenerator(func() string { return "run-1" }),
	)
	require.NoError(t, err)

	final, err := eng.Run(context.Background(), testutils.SampleInput)
	require.NoError(t, err)

	assert.Equal(t, "run-1", final.RunID)
	assert.Equal(t, []string{"extract", "generate", "validate", "analyze", "render"}, final.History)
	assert.Equal(t, 1, final.RetryCount)
	assert.GreaterOrEqual(t, len(final.Questions), 15)
	assert.Equal(t, "DermaGlow Generic Serum", final.Competitor.Name)
	assert.False(t, final.Degraded)

	stored, err := store.Read(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, final.Artifacts, stored)

	m := meta(t, stored.FAQ)
	assert.Equal(t, "1.0", m["version"])
	assert.NotContains(t, m, "degraded")
}

func TestEngine_DegradeAfterExhaustion(t *testing.T) {
	gen := testutils.NewGenerator().
		On(ports.TaskExtractProduct, testutils.Reply{JSON: testutils.MustJSON(t, testutils.SampleProduct())}).
		On(ports.TaskGenerateCompetitor, testutils.Reply{JSON: testutils.MustJSON(t, testutils.SampleCompetitor())}).
		On(ports.TaskGenerateQuestions,
			testutils.Reply{JSON: testutils.MustJSON(t, testutils.Questions(9))},
			testutils.Reply{JSON: testutils.MustJSON(t, testutils.Questions(12))},
			testutils.Reply{JSON: testutils.MustJSON(t, testutils.Questions(10))},
		)
	store := memory.NewStore()
	eng, err := folio.New(folio.WithGenerator(gen), folio.WithSink(store))
	require.NoError(t, err)

	_, err = eng.Run(context.Background(), testutils.SampleInput)
	var runErr *domain.RunError
	require.True(t, errors.As(err, &runErr))
	require.Equal(t, domain.KindExhaustedRetries, runErr.Kind)
	require.NotNil(t, runErr.Best)

	runs, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs, "failed runs are not written")

	final, err := eng.Degrade(context.Background(), *runErr.Best)
	require.NoError(t, err)
	assert.True(t, final.Degraded)
	assert.Len(t, final.Questions, 12)
	assert.Equal(t, domain.StepRender, final.History[len(final.History)-1])

	for _, doc := range []string{final.Artifacts.ProductPage, final.Artifacts.FAQ, final.Artifacts.ComparisonPage} {
		assert.Equal(t, true, meta(t, doc)["degraded"])
	}

	stored, err := store.Read(context.Background(), final.RunID)
	require.NoError(t, err)
	assert.Equal(t, final.Artifacts, stored)
}

func TestEngine_Limits(t *testing.T) {
	eng, err := folio.New(folio.WithGenerator(offline.New()), folio.WithMaxRetries(5), folio.WithMaxSteps(20))
	require.NoError(t, err)

	retries, steps := eng.Limits()
	assert.Equal(t, 5, retries)
	assert.Equal(t, 20, steps)
	assert.Len(t, eng.Inspect(), 6)
}

func TestEngine_RetryLimitAboveDefault(t *testing.T) {
	gen := testutils.NewGenerator().
		On(ports.TaskExtractProduct, testutils.Reply{JSON: testutils.MustJSON(t, testutils.SampleProduct())}).
		On(ports.TaskGenerateCompetitor, testutils.Reply{JSON: testutils.MustJSON(t, testutils.SampleCompetitor())}).
		On(ports.TaskGenerateQuestions, testutils.Reply{JSON: testutils.MustJSON(t, testutils.Questions(5))})
	eng, err := folio.New(folio.WithGenerator(gen), folio.WithMaxRetries(5))
	require.NoError(t, err)

	_, steps := eng.Limits()
	assert.Equal(t, 13, steps)

	_, err = eng.Run(context.Background(), testutils.SampleInput)
	var runErr *domain.RunError
	require.True(t, errors.As(err, &runErr))
	assert.Equal(t, domain.KindExhaustedRetries, runErr.Kind)
	assert.Equal(t, 5, runErr.Attempts)
	assert.Equal(t, 5, gen.Calls(ports.TaskGenerateQuestions))
	require.NotNil(t, runErr.Best, "the best attempt is available for Degrade")

	final, err := eng.Degrade(context.Background(), *runErr.Best)
	require.NoError(t, err)
	assert.True(t, final.Degraded)
}

func TestEngine_StepLimit(t *testing.T) {
	eng, err := folio.New(folio.WithGenerator(offline.New()), folio.WithMaxSteps(3))
	require.NoError(t, err)

	_, err = eng.Run(context.Background(), testutils.SampleInput)
	assert.ErrorIs(t, err, domain.ErrStepLimit)
	assert.Equal(t, domain.KindStepLimit, domain.KindOf(err))
}

func TestEngine_CallTimeout(t *testing.T) {
	eng, err := folio.New(
		folio.WithGenerator(blockingGenerator{}),
		folio.WithCallTimeout(10*time.Millisecond),
	)
	require.NoError(t, err)

	// Extraction falls back to the line parser; every other call times out
	// and degrades, so the run only fails at the hard gate.
	_, err = eng.Run(context.Background(), testutils.SampleInput)
	assert.ErrorIs(t, err, domain.ErrExhaustedRetries)
}

func TestEngine_HooksAndSinkErrors(t *testing.T) {
	var ended []domain.ErrorKind
	eng, err := folio.New(
		folio.WithGenerator(offline.New()),
		folio.WithSink(failingSink{}),
		folio.WithLifecycleHooks(domain.LifecycleHooks{
			OnRunEnd: func(_ context.Context, e *domain.RunEvent) { ended = append(ended, e.Kind) },
		}),
	)
	require.NoError(t, err)

	final, err := eng.Run(context.Background(), testutils.SampleInput)
	assert.ErrorContains(t, err, "disk full")
	assert.Empty(t, domain.KindOf(err), "sink failures are not run failures")
	assert.False(t, final.Artifacts.Empty())
	assert.Equal(t, []domain.ErrorKind{""}, ended)
}

func TestEngine_ConcurrentRuns(t *testing.T) {
	eng, err := folio.New(folio.WithGenerator(offline.New()))
	require.NoError(t, err)

	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func(i int) {
			_, err := eng.Run(context.Background(), fmt.Sprintf("Product Name: Serum %d\nPrice: ₹%d\nKey Ingredients: Niacinamide", i, 500+i))
			errs <- err
		}(i)
	}
	for i := 0; i < 8; i++ {
		assert.NoError(t, <-errs)
	}
}

type failingSink struct{}

func (failingSink) Write(context.Context, string, domain.Artifacts) error {
	return errors.New("disk full")
}

// blockingGenerator never answers before the context ends.
type blockingGenerator struct{}

func (blockingGenerator) Generate(ctx context.Context, _ ports.Prompt) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (blockingGenerator) StructuredGenerate(ctx context.Context, _ ports.Prompt, _ ports.Schema) (json.RawMessage, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
