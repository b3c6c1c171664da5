package testutils

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
	"github.com/stretchr/testify/require"
)

// SampleInput is the reference product description used across tests.
const SampleInput = `
Product Name: GlowBoost Vitamin C Serum
Concentration: 10% Vitamin C
Skin Type: Oily, Combination
Key Ingredients: Vitamin C, Hyaluronic Acid
Benefits: Brightening, Fades dark spots
How to Use: Apply 2-3 drops in the morning before sunscreen
Side Effects: Mild tingling for sensitive skin
• Price: ₹699
`

// SampleProduct is SampleInput in structured form.
func SampleProduct() domain.Product {
	return domain.Product{
		Name:          "GlowBoost Vitamin C Serum",
		Price:         699,
		Currency:      "INR",
		Concentration: "10% Vitamin C",
		SkinType:      []string{"Oily", "Combination"},
		Ingredients:   []string{"Vitamin C", "Hyaluronic Acid"},
		Benefits:      []string{"Brightening", "Fades dark spots"},
		HowToUse:      "Apply 2-3 drops in the morning before sunscreen",
		SideEffects:   "Mild tingling for sensitive skin",
	}
}

// SampleCompetitor is a fictional counterpart priced above SampleProduct.
func SampleCompetitor() domain.Product {
	return domain.Product{
		Name:        "DermaGlow Generic Serum",
		Price:       899,
		Currency:    "INR",
		SkinType:    []string{"All Skin Types"},
		Ingredients: []string{"Vitamin C", "Water", "Glycerin"},
		Benefits:    []string{"Basic Hydration"},
		HowToUse:    "Apply daily.",
	}
}

// Questions returns n placeholder questions spread over a few categories.
func Questions(n int) []domain.Question {
	categories := []string{"Informational", "Usage", "Safety", "Purchase", "Comparison"}
	qs := make([]domain.Question, n)
	for i := range qs {
		qs[i] = domain.Question{
			Category: categories[i%len(categories)],
			Question: fmt.Sprintf("Question %d?", i+1),
			Answer:   fmt.Sprintf("Answer %d.", i+1),
		}
	}
	return qs
}

// MustJSON marshals v or fails the test.
func MustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	out, err := json.Marshal(v)
	require.NoError(t, err)
	return out
}

// Reply is a scripted generator response.
type Reply struct {
	Text string
	JSON json.RawMessage
	Err  error
}

// Generator is a scripted ports.Generator. Replies are queued per task and
// consumed in order; the last reply of a task repeats once the queue runs dry.
// Every prompt received is recorded.
type Generator struct {
	mu      sync.Mutex
	replies map[string][]Reply
	prompts []ports.Prompt
}

// NewGenerator creates an empty scripted generator.
func NewGenerator() *Generator {
	return &Generator{replies: make(map[string][]Reply)}
}

// On queues replies for a task.
func (g *Generator) On(task string, replies ...Reply) *Generator {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.replies[task] = append(g.replies[task], replies...)
	return g
}

// Prompts returns the prompts received for a task, or all prompts when task is empty.
func (g *Generator) Prompts(task string) []ports.Prompt {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []ports.Prompt
	for _, p := range g.prompts {
		if task == "" || p.Task == task {
			out = append(out, p)
		}
	}
	return out
}

// Calls counts the prompts received for a task.
func (g *Generator) Calls(task string) int {
	return len(g.Prompts(task))
}

func (g *Generator) next(p ports.Prompt) (Reply, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, p)

	queue := g.replies[p.Task]
	if len(queue) == 0 {
		return Reply{}, fmt.Errorf("no scripted reply for task %q", p.Task)
	}
	r := queue[0]
	if len(queue) > 1 {
		g.replies[p.Task] = queue[1:]
	}
	return r, nil
}

// Generate implements ports.Generator.
func (g *Generator) Generate(ctx context.Context, p ports.Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r, err := g.next(p)
	if err != nil {
		return "", err
	}
	return r.Text, r.Err
}

// StructuredGenerate implements ports.Generator.
func (g *Generator) StructuredGenerate(ctx context.Context, p ports.Prompt, _ ports.Schema) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := g.next(p)
	if err != nil {
		return nil, err
	}
	if r.Err != nil {
		return nil, r.Err
	}
	if r.JSON == nil {
		return json.RawMessage(r.Text), nil
	}
	return r.JSON, nil
}
