package templates_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serum = domain.Product{
	Name:          "GlowBoost Vitamin C Serum",
	Price:         699,
	Currency:      "INR",
	Concentration: "10% Vitamin C",
	SkinType:      []string{"Oily", "Combination"},
	Ingredients:   []string{"Vitamin C", "Hyaluronic Acid"},
	Benefits:      []string{"Brightening", "Fades dark spots"},
	HowToUse:      "Apply 2-3 drops in the morning. Use sunscreen.",
	SideEffects:   "Mild tingling for sensitive skin",
}

var rival = domain.Product{
	Name:     "DermaGlow Generic Serum",
	Price:    899,
	Currency: "INR",
	Benefits: []string{"Basic Hydration"},
}

func decode(t *testing.T, doc string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &out))
	return out
}

func TestEnvelope(t *testing.T) {
	doc, err := templates.ProductPage(serum, templates.Options{})
	require.NoError(t, err)

	meta := decode(t, doc)["meta"].(map[string]any)
	assert.Equal(t, templates.DefaultGeneratedBy, meta["generated_by"])
	assert.Equal(t, "1.0", meta["version"])
	assert.Equal(t, "application/json", meta["content_type"])
	assert.NotContains(t, meta, "degraded")

	doc, err = templates.FAQPage(nil, templates.Options{GeneratedBy: "test", Degraded: true})
	require.NoError(t, err)
	meta = decode(t, doc)["meta"].(map[string]any)
	assert.Equal(t, "test", meta["generated_by"])
	assert.Equal(t, true, meta["degraded"])
}

func TestProductPage(t *testing.T) {
	doc, err := templates.ProductPage(serum, templates.Options{})
	require.NoError(t, err)

	data := decode(t, doc)["data"].(map[string]any)
	hero := data["hero_section"].(map[string]any)
	assert.Equal(t, "GlowBoost Vitamin C Serum", hero["product_title"])
	assert.Equal(t, "INR 699", hero["price_display"])
	assert.Equal(t, "In Stock", hero["availability"])

	manual := data["instruction_manual"].(map[string]any)
	assert.Equal(t, []any{"Apply 2-3 drops in the morning", "Use sunscreen"}, manual["instructions"])

	safety := data["safety_information"].(map[string]any)
	assert.Equal(t, true, safety["has_safety_warning"])
	assert.Equal(t, "Advisory: Mild tingling for sensitive skin", safety["warning_text"])
}

func TestFAQPage_GroupsInFirstSeenOrder(t *testing.T) {
	questions := []domain.Question{
		{Category: "Usage", Question: "How?", Answer: "Daily."},
		{Category: "Safety", Question: "Safe?", Answer: "Yes."},
		{Category: "Usage", Question: "When?", Answer: "Morning."},
	}

	sections := templates.GroupByCategory(questions)
	require.Len(t, sections, 2)
	assert.Equal(t, "Usage", sections[0].Category)
	assert.Equal(t, []templates.QA{{Question: "How?", Answer: "Daily."}, {Question: "When?", Answer: "Morning."}}, sections[0].Items)
	assert.Equal(t, "Safety", sections[1].Category)

	doc, err := templates.FAQPage(questions, templates.Options{})
	require.NoError(t, err)
	data := decode(t, doc)["data"].(map[string]any)
	assert.Equal(t, "Frequently Asked Questions", data["page_title"])
	assert.Len(t, data["sections"], 2)
}

func TestFAQPage_Empty(t *testing.T) {
	doc, err := templates.FAQPage(nil, templates.Options{})
	require.NoError(t, err)
	data := decode(t, doc)["data"].(map[string]any)
	assert.Equal(t, []any{}, data["sections"])
}

func TestComparisonPage(t *testing.T) {
	analysis := domain.Analysis{
		Verdict:            "Better Value",
		NumericDelta:       -200,
		PercentDifference:  -22.2,
		AdvantageText:      "We have 2 unique ingredients.",
		Message:            "Save 200 compared to competitor",
		Common:             []string{},
		UniqueToProduct:    []string{"hyaluronic acid", "vitamin c"},
		UniqueToCompetitor: []string{"water"},
	}

	doc, err := templates.ComparisonPage(serum, rival, analysis, templates.Options{})
	require.NoError(t, err)

	data := decode(t, doc)["data"].(map[string]any)
	assert.Equal(t, "GlowBoost Vitamin C Serum vs. DermaGlow Generic Serum", data["page_header"])
	assert.Equal(t, "Better Value", data["buying_guide_verdict"])
	assert.Equal(t, "Competitor data is simulated for demonstration purposes.", data["disclaimer"])

	tables := data["comparison_tables"].(map[string]any)
	price := tables["price_comparison"].(map[string]any)
	assert.Equal(t, 699.0, price["our_price"])
	assert.Equal(t, 899.0, price["competitor_price"])
	details := price["details"].(map[string]any)
	assert.Equal(t, -200.0, details["difference"])
	assert.Equal(t, "Save 200 compared to competitor", details["message"])

	overlap := tables["ingredient_overlap"].(map[string]any)
	assert.Equal(t, []any{"water"}, overlap["competitor_ingredients"])
	assert.Equal(t, []any{}, overlap["common_ingredients"])

	benefits := tables["benefit_comparison"].(map[string]any)
	assert.Equal(t, []any{"Basic Hydration"}, benefits["them"])
}

func TestPriceDisplay(t *testing.T) {
	assert.Equal(t, "INR 699", templates.PriceDisplay("INR", 699))
	assert.Equal(t, "USD 12.5", templates.PriceDisplay("USD", 12.5))
	assert.Equal(t, "40", templates.PriceDisplay("", 40))
}
