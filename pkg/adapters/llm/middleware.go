// Package llm provides decorators for ports.Generator.
//
// Decorators compose from the inside out:
//
//	client, err := gemini.FromEnv()
//	...
//	gen := llm.WithLogging(llm.WithTimeout(client, 60*time.Second), logger)
package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/aretw0/folio/pkg/ports"
)

// DefaultTimeout bounds a single generator call.
const DefaultTimeout = 60 * time.Second

// Func adapts a pair of functions to ports.Generator.
// A nil function returns ports.ErrMalformedResponse.
type Func struct {
	GenerateFunc   func(ctx context.Context, p ports.Prompt) (string, error)
	StructuredFunc func(ctx context.Context, p ports.Prompt, s ports.Schema) (json.RawMessage, error)
}

// Generate implements ports.Generator.
func (f Func) Generate(ctx context.Context, p ports.Prompt) (string, error) {
	if f.GenerateFunc == nil {
		return "", ports.ErrMalformedResponse
	}
	return f.GenerateFunc(ctx, p)
}

// StructuredGenerate implements ports.Generator.
func (f Func) StructuredGenerate(ctx context.Context, p ports.Prompt, s ports.Schema) (json.RawMessage, error) {
	if f.StructuredFunc == nil {
		return nil, ports.ErrMalformedResponse
	}
	return f.StructuredFunc(ctx, p, s)
}

// WithTimeout bounds every call of next. A non-positive d uses DefaultTimeout.
func WithTimeout(next ports.Generator, d time.Duration) ports.Generator {
	if d <= 0 {
		d = DefaultTimeout
	}
	return Func{
		GenerateFunc: func(ctx context.Context, p ports.Prompt) (string, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next.Generate(ctx, p)
		},
		StructuredFunc: func(ctx context.Context, p ports.Prompt, s ports.Schema) (json.RawMessage, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next.StructuredGenerate(ctx, p, s)
		},
	}
}

// WithLogging logs every call of next at Debug, and failures at Warn.
func WithLogging(next ports.Generator, logger *slog.Logger) ports.Generator {
	if logger == nil {
		return next
	}
	return Func{
		GenerateFunc: func(ctx context.Context, p ports.Prompt) (string, error) {
			start := time.Now()
			out, err := next.Generate(ctx, p)
			logCall(ctx, logger, p.Task, "", start, len(out), err)
			return out, err
		},
		StructuredFunc: func(ctx context.Context, p ports.Prompt, s ports.Schema) (json.RawMessage, error) {
			start := time.Now()
			out, err := next.StructuredGenerate(ctx, p, s)
			logCall(ctx, logger, p.Task, s.Name, start, len(out), err)
			return out, err
		},
	}
}

func logCall(ctx context.Context, logger *slog.Logger, task, schema string, start time.Time, size int, err error) {
	attrs := []any{"task", task, "duration", time.Since(start)}
	if schema != "" {
		attrs = append(attrs, "schema", schema)
	}
	if err != nil {
		logger.WarnContext(ctx, "generator call failed", append(attrs, "error", err)...)
		return
	}
	logger.DebugContext(ctx, "generator call", append(attrs, "bytes", size)...)
}
