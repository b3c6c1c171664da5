package steps

import (
	"github.com/aretw0/folio/internal/runtime"
	"github.com/aretw0/folio/pkg/ports"
)

// New builds every step of the content workflow around one generator.
func New(gen ports.Generator, opts ...Option) runtime.Steps {
	return runtime.Steps{
		Extract:  NewExtract(gen, opts...),
		Generate: NewGenerate(gen, opts...),
		Validate: NewValidate(gen, opts...),
		Analyze:  NewAnalyze(),
		Render:   NewRender(opts...),
	}
}
