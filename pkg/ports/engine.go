package ports

import (
	"context"

	"github.com/aretw0/folio/pkg/domain"
)

// ContentEngine defines the run entry point used by adapters (HTTP, MCP)
// that execute one workflow per request.
type ContentEngine interface {
	// Run executes the workflow for a raw product description.
	Run(ctx context.Context, rawInput string) (domain.State, error)

	// Degrade renders artifacts from the best attempt of an exhausted run.
	Degrade(ctx context.Context, best domain.State) (domain.State, error)

	// Inspect returns the transition table for introspection.
	Inspect() []domain.Transition
}
