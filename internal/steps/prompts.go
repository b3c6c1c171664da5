package steps

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
)

const extractInstructions = "You are a data extraction specialist. Extract the product details into strict JSON. " +
	"If data is missing, infer logically or leave the field empty. Prices are numbers without currency symbols."

const competitorInstructions = "You are a fierce marketing strategist. Analyze the target product. " +
	"Create a FICTIONAL competitor that challenges it directly " +
	"(either cheaper with worse ingredients, or premium with better ones)."

const questionInstructions = "You write FAQ content for product landing pages. " +
	"Answer every question using only the product data provided. " +
	"Return a JSON list of objects with keys: category, question, answer."

const reviewInstructions = "You are a strict content editor. " +
	"Reply with PASS if the questions are accurate, varied and useful for shoppers. " +
	"Otherwise reply with FAIL followed by a one-sentence reason."

func extractPrompt(raw string) ports.Prompt {
	return ports.Prompt{
		Task:   ports.TaskExtractProduct,
		System: extractInstructions,
		User:   "Raw Text:\n" + raw,
		Data:   raw,
	}
}

func competitorPrompt(p domain.Product) ports.Prompt {
	return ports.Prompt{
		Task:   ports.TaskGenerateCompetitor,
		System: competitorInstructions,
		User: fmt.Sprintf("Target Product: %s (%s %v). Ingredients: %s.\n\nGenerate Competitor JSON.",
			p.Name, p.Currency, p.Price, strings.Join(p.Ingredients, ", ")),
		Data: p,
	}
}

// questionBrief derives the request of the next generation attempt.
// A failed verdict tightens the requirement and makes every category mandatory.
func questionBrief(s domain.State, minQuestions int) ports.QuestionBrief {
	brief := ports.QuestionBrief{
		Product:    *s.Product,
		Required:   minQuestions,
		Categories: append([]string(nil), Categories...),
	}
	if reason, failed := s.Verdict(); failed {
		brief.Feedback = reason
		brief.Strict = true
		brief.Required = min(minQuestions+retryIncrement*s.RetryCount, max(MaxQuestions, minQuestions))
	}
	return brief
}

func questionPrompt(brief ports.QuestionBrief) (ports.Prompt, error) {
	product, err := json.MarshalIndent(brief.Product, "", "  ")
	if err != nil {
		return ports.Prompt{}, fmt.Errorf("serialize product: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Product data:\n\n")
	sb.Write(product)
	fmt.Fprintf(&sb, "\n\nGenerate at least %d distinct customer questions with answers.\n", brief.Required)
	if brief.Strict {
		fmt.Fprintf(&sb, "You MUST include questions from every one of these categories: %s.\n", strings.Join(brief.Categories, ", "))
	} else {
		fmt.Fprintf(&sb, "Use categories such as %s.\n", strings.Join(brief.Categories, ", "))
	}
	if brief.Feedback != "" {
		fmt.Fprintf(&sb, "\nThe previous attempt was rejected: %s\nFix this in the new list.\n", brief.Feedback)
	}

	return ports.Prompt{
		Task:   ports.TaskGenerateQuestions,
		System: questionInstructions,
		User:   sb.String(),
		Data:   brief,
	}, nil
}

func reviewPrompt(p domain.Product, questions []domain.Question) ports.Prompt {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Product: %s\n%d questions:\n", p.Name, len(questions))
	for _, q := range questions {
		fmt.Fprintf(&sb, "- [%s] %s\n", q.Category, q.Question)
	}
	return ports.Prompt{
		Task:   ports.TaskReviewQuestions,
		System: reviewInstructions,
		User:   sb.String(),
		Data:   questions,
	}
}
