package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ingest"
	"github.com/aretw0/folio/pkg/ports"
	"github.com/aretw0/folio/pkg/schema"
)

// Extract turns the raw description into the primary record.
// The generator is asked first; the line parser is the fallback.
type Extract struct {
	gen  ports.Generator
	opts options
}

// NewExtract creates the extraction step.
func NewExtract(gen ports.Generator, opts ...Option) *Extract {
	return &Extract{gen: gen, opts: newOptions(opts)}
}

// Run implements domain.Step.
func (e *Extract) Run(ctx context.Context, s domain.State) (domain.Update, error) {
	if strings.TrimSpace(s.RawInput) == "" {
		return domain.Update{}, fmt.Errorf("%w: raw input is empty", domain.ErrContractViolation)
	}

	p, err := e.structured(ctx, s.RawInput)
	if err != nil {
		e.opts.logger.WarnContext(ctx, "structured extraction failed, using line parser",
			"run_id", s.RunID, "step", domain.StepExtract, "error", err)

		p, err = ingest.Parse(s.RawInput)
		if err != nil {
			return domain.Update{}, fmt.Errorf("extract product: %w", err)
		}
	}

	return domain.Update{Product: &p}, nil
}

func (e *Extract) structured(ctx context.Context, raw string) (domain.Product, error) {
	if e.gen == nil {
		return domain.Product{}, errNoGenerator
	}
	out, err := e.gen.StructuredGenerate(ctx, extractPrompt(raw), ProductSchema)
	if err != nil {
		return domain.Product{}, err
	}
	return decodeProduct(out)
}

// decodeProduct validates a generated product and fills the defaults the
// rest of the workflow relies on.
func decodeProduct(raw []byte) (domain.Product, error) {
	var p domain.Product
	if err := schema.Decode(productType, raw, &p); err != nil {
		return domain.Product{}, fmt.Errorf("%w: %v", ports.ErrMalformedResponse, err)
	}
	if strings.TrimSpace(p.Name) == "" {
		p.Name = ingest.UnknownName
	}
	if p.Currency == "" {
		p.Currency = ingest.DefaultCurrency
	}
	if p.SkinType == nil {
		p.SkinType = []string{}
	}
	if p.Ingredients == nil {
		p.Ingredients = []string{}
	}
	if p.Benefits == nil {
		p.Benefits = []string{}
	}
	return p, nil
}
