package ports

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aretw0/folio/pkg/domain"
)

// ErrMalformedResponse is returned when a collaborator reply cannot be parsed
// into the requested shape.
var ErrMalformedResponse = errors.New("malformed generator response")

// Prompt is a single request to the generative service.
type Prompt struct {
	// Task names the purpose of the call (e.g. "generate_questions").
	// Adapters use it for logging and metrics; deterministic generators dispatch on it.
	Task string
	// System carries the role instructions.
	System string
	// User carries the request body.
	User string
	// Data is the structured value the prompt was composed from, if any.
	// Remote adapters ignore it.
	Data any
}

// Tasks issued by the content workflow.
const (
	TaskExtractProduct     = "extract_product"
	TaskGenerateCompetitor = "generate_competitor"
	TaskGenerateQuestions  = "generate_questions"
	TaskReviewQuestions    = "review_questions"
)

// QuestionBrief is the Data of a TaskGenerateQuestions prompt.
type QuestionBrief struct {
	Product domain.Product
	// Required is the minimum number of questions asked for.
	Required int
	// Categories lists the categories to cover. All are mandatory when Strict is set.
	Categories []string
	Strict     bool
	// Feedback is the verdict of the previous attempt, if any.
	Feedback string
}

// Schema describes the JSON shape expected from StructuredGenerate.
// Definition uses the OpenAPI subset of JSON Schema accepted by most providers.
type Schema struct {
	Name       string
	Definition map[string]any
}

// Generator defines the generative-service collaborator.
// Both calls may be slow and may return malformed output; callers must
// tolerate ErrMalformedResponse.
type Generator interface {
	// Generate returns free text for the prompt.
	Generate(ctx context.Context, p Prompt) (string, error)

	// StructuredGenerate returns a JSON document matching the schema.
	StructuredGenerate(ctx context.Context, p Prompt, schema Schema) (json.RawMessage, error)
}
