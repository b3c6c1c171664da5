package steps

import (
	"context"
	"fmt"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/logic"
)

// Analyze compares the primary record with the competitor.
type Analyze struct{}

// NewAnalyze creates the analysis step.
func NewAnalyze() *Analyze {
	return &Analyze{}
}

// Run implements domain.Step.
func (a *Analyze) Run(_ context.Context, s domain.State) (domain.Update, error) {
	if s.Product == nil {
		return domain.Update{}, fmt.Errorf("%w: product is missing", domain.ErrContractViolation)
	}
	if s.Competitor == nil {
		return domain.Update{}, fmt.Errorf("%w: competitor is missing", domain.ErrContractViolation)
	}
	analysis := Compare(*s.Product, *s.Competitor)
	return domain.Update{Analysis: &analysis}, nil
}

// Compare runs the deterministic price and ingredient blocks.
func Compare(p, c domain.Product) domain.Analysis {
	stats := logic.PriceDelta(p.Price, c.Price)
	verdict, message := logic.PriceVerdict(p.Price, c.Price)
	overlap := logic.IngredientOverlap(p.Ingredients, c.Ingredients)

	return domain.Analysis{
		Verdict:            verdict,
		NumericDelta:       stats.Difference,
		PercentDifference:  stats.PercentDifference,
		AdvantageText:      fmt.Sprintf("We have %d unique ingredients.", len(overlap.UniqueToA)),
		Message:            message,
		Common:             overlap.Common,
		UniqueToProduct:    overlap.UniqueToA,
		UniqueToCompetitor: overlap.UniqueToB,
	}
}
