package runtime

import (
	"log/slog"

	"github.com/aretw0/folio/pkg/domain"
)

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithMaxRetries sets the inner limit on generation attempts.
func WithMaxRetries(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxRetries = n
		}
	}
}

// WithMaxSteps sets the outer limit on total step invocations.
// When unset the limit is DefaultMaxSteps, raised to MinSteps(maxRetries)
// if the retry limit needs more. A non-positive n leaves it unset.
func WithMaxSteps(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxSteps = n
			e.stepsSet = true
		}
	}
}
