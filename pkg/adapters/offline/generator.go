// Package offline provides a deterministic ports.Generator that needs no
// network access. It answers each task from templates filled with the
// product data carried in the prompt.
package offline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ingest"
	"github.com/aretw0/folio/pkg/ports"
)

// ReviewPass is the reply to every review task.
const ReviewPass = "PASS"

// premiumThreshold separates competitively priced products from premium ones.
const premiumThreshold = 1000

// Competitor is the fictional counterpart returned for every product.
func Competitor() domain.Product {
	return domain.Product{
		Name:          "DermaGlow Generic Serum",
		Price:         899,
		Currency:      "INR",
		Concentration: "5% Vitamin C",
		SkinType:      []string{"All Skin Types"},
		Ingredients:   []string{"Vitamin C", "Water", "Glycerin", "Phenoxyethanol"},
		Benefits:      []string{"Basic Hydration", "Mild Brightening"},
		HowToUse:      "Apply daily.",
		SideEffects:   "None reported",
	}
}

// Generator implements ports.Generator from templates.
// It is stateless and safe for concurrent use.
type Generator struct{}

// New creates an offline generator.
func New() *Generator {
	return &Generator{}
}

// Generate implements ports.Generator. Only the review task is free text.
func (g *Generator) Generate(ctx context.Context, p ports.Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.Task != ports.TaskReviewQuestions {
		return "", fmt.Errorf("%w: offline generator has no text reply for task %q", ports.ErrMalformedResponse, p.Task)
	}
	return ReviewPass, nil
}

// StructuredGenerate implements ports.Generator.
func (g *Generator) StructuredGenerate(ctx context.Context, p ports.Prompt, _ ports.Schema) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out any
	switch p.Task {
	case ports.TaskExtractProduct:
		raw, ok := p.Data.(string)
		if !ok {
			raw = p.User
		}
		product, err := ingest.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ports.ErrMalformedResponse, err)
		}
		out = product
	case ports.TaskGenerateCompetitor:
		out = Competitor()
	case ports.TaskGenerateQuestions:
		brief, ok := p.Data.(ports.QuestionBrief)
		if !ok {
			return nil, fmt.Errorf("%w: question prompt carries no brief", ports.ErrMalformedResponse)
		}
		out = Questions(brief.Product, brief.Required)
	default:
		return nil, fmt.Errorf("%w: offline generator has no structured reply for task %q", ports.ErrMalformedResponse, p.Task)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal offline reply: %w", err)
	}
	return data, nil
}

// Questions fills the FAQ templates from p and returns at least required
// entries, covering every category.
func Questions(p domain.Product, required int) []domain.Question {
	qs := baseQuestions(p)
	qs = append(qs, ingredientQuestions(p)...)

	for i := 0; len(qs) < required; i++ {
		qs = append(qs, fillerQuestion(p, i))
	}
	return qs
}

func baseQuestions(p domain.Product) []domain.Question {
	concentration := or(p.Concentration, "standard concentration")
	benefits := or(strings.Join(p.Benefits, ", "), "general skin care")
	ingredients := or(strings.Join(p.Ingredients, ", "), "a balanced formula")
	howToUse := or(p.HowToUse, "Follow the instructions on the pack.")

	sensitive := "Yes"
	if effects := strings.ToLower(p.SideEffects); strings.Contains(effects, "tingling") ||
		strings.Contains(effects, "redness") || strings.Contains(effects, "not safe") {
		sensitive = "Please note: " + p.SideEffects
	}
	tingling := "Likely not."
	if p.SideEffects != "" {
		tingling = "You may experience " + strings.ToLower(p.SideEffects) + "."
	}
	skin := "your skin type"
	if len(p.SkinType) > 0 {
		skin = p.SkinType[0]
	}
	adjective := "competitively priced"
	if p.Price >= premiumThreshold {
		adjective = "a premium formulation"
	}
	lead := "quality ingredients"
	if len(p.Ingredients) > 0 {
		lead = p.Ingredients[0]
	}
	price := fmt.Sprintf("%s %v", p.Currency, p.Price)

	return []domain.Question{
		{Category: "Informational", Question: fmt.Sprintf("What is the main benefit of %s?", p.Name), Answer: fmt.Sprintf("The main benefits are %s.", benefits)},
		{Category: "Informational", Question: "What is the concentration of active ingredients?", Answer: fmt.Sprintf("It contains %s.", concentration)},
		{Category: "Informational", Question: "What are the key ingredients?", Answer: fmt.Sprintf("It features %s.", ingredients)},
		{Category: "Informational", Question: "Is this a serum or a cream?", Answer: "This is a serum formulation."},
		{Category: "Informational", Question: "Can I use this for dull skin?", Answer: "Yes, it is designed for: " + benefits},
		{Category: "Usage", Question: "How do I apply this product?", Answer: howToUse},
		{Category: "Usage", Question: "Can I use this in the morning?", Answer: "Yes, " + howToUse},
		{Category: "Usage", Question: "How many drops should I use?", Answer: "Please apply 2-3 drops as directed."},
		{Category: "Usage", Question: "Do I need sunscreen after using this?", Answer: "Yes, it is recommended to apply before sunscreen."},
		{Category: "Usage", Question: "Can I layer this with other products?", Answer: "Always apply thinnest to thickest. This serum goes first."},
		{Category: "Safety", Question: "Are there any side effects?", Answer: or(p.SideEffects, "No major side effects listed.")},
		{Category: "Safety", Question: "Is this safe for sensitive skin?", Answer: sensitive},
		{Category: "Safety", Question: "Will this cause tingling?", Answer: tingling},
		{Category: "Safety", Question: fmt.Sprintf("Is %s suitable for %s skin?", p.Name, skin), Answer: "Yes, it is formulated for this skin type."},
		{Category: "Safety", Question: "Is it non-comedogenic?", Answer: "It is formulated for " + or(strings.Join(p.SkinType, ", "), "most skin types") + "."},
		{Category: "Purchase", Question: "What is the price?", Answer: price},
		{Category: "Purchase", Question: "Is this affordable?", Answer: fmt.Sprintf("At %s, it is %s containing %s.", price, adjective, or(p.Concentration, "active ingredients"))},
		{Category: "Comparison", Question: "Why choose this over others?", Answer: fmt.Sprintf("It offers %s and %s for enhanced results.", concentration, lead)},
	}
}

func ingredientQuestions(p domain.Product) []domain.Question {
	qs := make([]domain.Question, 0, len(p.Ingredients))
	for _, ing := range p.Ingredients {
		qs = append(qs, domain.Question{
			Category: "Informational",
			Question: fmt.Sprintf("What does %s do in %s?", ing, p.Name),
			Answer:   fmt.Sprintf("%s is one of the key ingredients and supports %s.", ing, or(strings.Join(p.Benefits, ", "), "the formula")),
		})
	}
	return qs
}

var fillers = []struct{ category, question, answer string }{
	{"Purchase", "Where can I buy %s?", "%s is available from the official store and authorised retailers."},
	{"Usage", "How long until I see results with %s?", "Most users notice a difference with %s after a few weeks of daily use."},
	{"Safety", "Should I patch test %s first?", "Yes, patch test %s on a small area before the first full application."},
	{"Comparison", "How does %s compare to cheaper serums?", "%s focuses on proven actives rather than fillers."},
	{"Usage", "How should I store %s?", "Keep %s in a cool, dry place away from direct sunlight."},
}

func fillerQuestion(p domain.Product, i int) domain.Question {
	f := fillers[i%len(fillers)]
	q := domain.Question{
		Category: f.category,
		Question: fmt.Sprintf(f.question, p.Name),
		Answer:   fmt.Sprintf(f.answer, p.Name),
	}
	if round := i / len(fillers); round > 0 {
		q.Question = fmt.Sprintf("%s (%d)", q.Question, round+1)
	}
	return q
}

func or(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
