package folio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/folio/internal/runtime"
	"github.com/aretw0/folio/internal/steps"
	"github.com/aretw0/folio/pkg/adapters/llm"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
	"github.com/google/uuid"
)

// Version is the release of the module. It is overridden at link time.
var Version = "0.1.0"

// ErrNoGenerator is returned by New when no generator was configured.
var ErrNoGenerator = errors.New("a generator is required (use WithGenerator)")

// Engine is the high-level entry point for the folio library.
// It wires the content workflow onto the runtime and provides a simplified
// API for consumers. An Engine is safe for concurrent runs.
type Engine struct {
	runtime     *runtime.Engine
	generator   ports.Generator
	sink        ports.ArtifactSink
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	callTimeout time.Duration
	runtimeOpts []runtime.EngineOption
	stepOpts    []steps.Option
	newRunID    func() string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithGenerator injects the generative collaborator.
func WithGenerator(g ports.Generator) Option {
	return func(e *Engine) {
		e.generator = g
	}
}

// WithLogger sets a custom structured logger for the engine and its steps.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls merge.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithMaxRetries sets the limit on generation attempts (default 3).
func WithMaxRetries(n int) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithMaxRetries(n))
	}
}

// WithMaxSteps sets the limit on step invocations per run. The default is 10,
// or 2*maxRetries+3 when the retry limit needs more; zero keeps the default.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithMaxSteps(n))
	}
}

// WithMinQuestions sets the hard-gate threshold (default 15).
func WithMinQuestions(n int) Option {
	return func(e *Engine) {
		e.stepOpts = append(e.stepOpts, steps.WithMinQuestions(n))
	}
}

// WithSoftGate enables or disables the generator review of question sets.
func WithSoftGate(enabled bool) Option {
	return func(e *Engine) {
		e.stepOpts = append(e.stepOpts, steps.WithSoftGate(enabled))
	}
}

// WithGeneratedBy sets the producer name written into every document envelope.
func WithGeneratedBy(name string) Option {
	return func(e *Engine) {
		e.stepOpts = append(e.stepOpts, steps.WithGeneratedBy(name))
	}
}

// WithCallTimeout bounds every generator call (default 60s).
func WithCallTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.callTimeout = d
	}
}

// WithSink sends the artifacts of every successful run to s.
func WithSink(s ports.ArtifactSink) Option {
	return func(e *Engine) {
		e.sink = s
	}
}

// WithRunIDGenerator replaces the UUID run identifiers.
func WithRunIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newRunID = fn
		}
	}
}

// New initializes a new folio Engine.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		callTimeout: llm.DefaultTimeout,
		newRunID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.generator == nil {
		return nil, ErrNoGenerator
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	gen := llm.WithLogging(llm.WithTimeout(eng.generator, eng.callTimeout), eng.logger)
	graph, err := runtime.ContentGraph(steps.New(gen, append([]steps.Option{steps.WithLogger(eng.logger)}, eng.stepOpts...)...))
	if err != nil {
		return nil, fmt.Errorf("failed to build workflow graph: %w", err)
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	}
	eng.runtime = runtime.NewEngine(graph, append(runtimeOpts, eng.runtimeOpts...)...)

	return eng, nil
}

// Run executes the workflow for a raw product description.
// On success the artifacts are also written to the configured sink.
// Failures are *domain.RunError, except sink errors, which wrap the sink's cause
// and still return the completed state.
func (e *Engine) Run(ctx context.Context, rawInput string) (domain.State, error) {
	s, err := e.runtime.Run(ctx, domain.NewState(e.newRunID(), rawInput))
	if err != nil {
		return s, err
	}
	return s, e.write(ctx, s)
}

// Degrade renders artifacts from the best attempt of an exhausted run,
// typically RunError.Best. Every document is flagged as degraded.
func (e *Engine) Degrade(ctx context.Context, best domain.State) (domain.State, error) {
	best.Degraded = true
	s, err := e.runtime.RunFrom(ctx, best, domain.StepAnalyze)
	if err != nil {
		return s, err
	}
	return s, e.write(ctx, s)
}

func (e *Engine) write(ctx context.Context, s domain.State) error {
	if e.sink == nil {
		return nil
	}
	if err := e.sink.Write(ctx, s.RunID, s.Artifacts); err != nil {
		e.logger.ErrorContext(ctx, "failed to write artifacts", "run_id", s.RunID, "error", err)
		return fmt.Errorf("failed to write artifacts: %w", err)
	}
	return nil
}

// Inspect returns the transition table for visualization or introspection tools.
func (e *Engine) Inspect() []domain.Transition {
	return e.runtime.Inspect()
}

// Limits returns the configured retry and step limits.
func (e *Engine) Limits() (maxRetries, maxSteps int) {
	return e.runtime.MaxRetries(), e.runtime.MaxSteps()
}
