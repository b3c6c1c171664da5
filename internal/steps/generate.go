package steps

import (
	"context"
	"fmt"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
	"github.com/aretw0/folio/pkg/schema"
)

// Generate produces the competitor (once) and a fresh question set (every attempt).
type Generate struct {
	gen  ports.Generator
	opts options
}

// NewGenerate creates the generation step.
func NewGenerate(gen ports.Generator, opts ...Option) *Generate {
	return &Generate{gen: gen, opts: newOptions(opts)}
}

// Run implements domain.Step. Collaborator failures never fail the step:
// a missing competitor stays absent and unreadable questions become an empty set.
func (g *Generate) Run(ctx context.Context, s domain.State) (domain.Update, error) {
	if s.Product == nil {
		return domain.Update{}, fmt.Errorf("%w: product is missing", domain.ErrContractViolation)
	}
	if g.gen == nil {
		return domain.Update{}, errNoGenerator
	}

	u := domain.Update{CountAttempt: true}
	log := g.opts.logger.With("run_id", s.RunID, "step", domain.StepGenerate, "attempt", s.RetryCount+1)

	if s.Competitor == nil {
		c, err := g.competitor(ctx, *s.Product)
		if err != nil {
			log.WarnContext(ctx, "competitor generation failed", "error", err)
		} else {
			u.Competitor = &c
		}
	}

	brief := questionBrief(s, g.opts.minQuestions)
	questions, err := g.questions(ctx, brief)
	if err != nil {
		log.WarnContext(ctx, "question generation failed", "required", brief.Required, "error", err)
		questions = []domain.Question{}
	}
	log.DebugContext(ctx, "questions generated", "count", len(questions), "required", brief.Required)
	u.Questions = &questions

	return u, nil
}

func (g *Generate) competitor(ctx context.Context, p domain.Product) (domain.Product, error) {
	out, err := g.gen.StructuredGenerate(ctx, competitorPrompt(p), ProductSchema)
	if err != nil {
		return domain.Product{}, err
	}
	return decodeProduct(out)
}

func (g *Generate) questions(ctx context.Context, brief ports.QuestionBrief) ([]domain.Question, error) {
	prompt, err := questionPrompt(brief)
	if err != nil {
		return nil, err
	}
	out, err := g.gen.StructuredGenerate(ctx, prompt, QuestionsSchema)
	if err != nil {
		return nil, err
	}
	var questions []domain.Question
	if err := schema.Decode(questionListType, out, &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrMalformedResponse, err)
	}
	if questions == nil {
		questions = []domain.Question{}
	}
	return questions, nil
}
