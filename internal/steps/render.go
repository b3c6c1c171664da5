package steps

import (
	"context"
	"fmt"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/templates"
)

// Render assembles the three documents.
type Render struct {
	opts options
}

// NewRender creates the terminal step.
func NewRender(opts ...Option) *Render {
	return &Render{opts: newOptions(opts)}
}

// Run implements domain.Step.
func (r *Render) Run(_ context.Context, s domain.State) (domain.Update, error) {
	switch {
	case s.Product == nil:
		return domain.Update{}, fmt.Errorf("%w: product is missing", domain.ErrContractViolation)
	case s.Competitor == nil:
		return domain.Update{}, fmt.Errorf("%w: competitor is missing", domain.ErrContractViolation)
	case s.Analysis == nil:
		return domain.Update{}, fmt.Errorf("%w: analysis is missing", domain.ErrContractViolation)
	}

	opts := templates.Options{GeneratedBy: r.opts.generatedBy, Degraded: s.Degraded}

	product, err := templates.ProductPage(*s.Product, opts)
	if err != nil {
		return domain.Update{}, fmt.Errorf("render product page: %w", err)
	}
	faq, err := templates.FAQPage(s.Questions, opts)
	if err != nil {
		return domain.Update{}, fmt.Errorf("render faq: %w", err)
	}
	comparison, err := templates.ComparisonPage(*s.Product, *s.Competitor, *s.Analysis, opts)
	if err != nil {
		return domain.Update{}, fmt.Errorf("render comparison page: %w", err)
	}

	return domain.Update{Artifacts: &domain.Artifacts{
		ProductPage:    product,
		FAQ:            faq,
		ComparisonPage: comparison,
	}}, nil
}
