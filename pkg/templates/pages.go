package templates

import (
	"fmt"
	"strconv"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/logic"
)

// Hero is the top block of the product page.
type Hero struct {
	ProductTitle string `json:"product_title"`
	PriceDisplay string `json:"price_display"`
	Availability string `json:"availability"`
}

// Details lists the product facts.
type Details struct {
	Concentration string   `json:"concentration"`
	KeyBenefits   []string `json:"key_benefits"`
	Ingredients   []string `json:"ingredients"`
}

// ProductBody is the data section of the product page.
type ProductBody struct {
	Hero              Hero         `json:"hero_section"`
	Details           Details      `json:"product_details"`
	InstructionManual logic.Usage  `json:"instruction_manual"`
	SafetyInformation logic.Safety `json:"safety_information"`
}

// ProductPage renders the landing page of the primary record.
func ProductPage(p domain.Product, opts Options) (string, error) {
	return render(ProductBody{
		Hero: Hero{
			ProductTitle: p.Name,
			PriceDisplay: PriceDisplay(p.Currency, p.Price),
			Availability: "In Stock",
		},
		Details: Details{
			Concentration: p.Concentration,
			KeyBenefits:   nonNil(p.Benefits),
			Ingredients:   nonNil(p.Ingredients),
		},
		InstructionManual: logic.UsageInstructions(p.HowToUse),
		SafetyInformation: logic.SafetyAdvisory(p.SideEffects, p.SkinType),
	}, opts)
}

// QA is one entry of an FAQ section.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Section groups the questions of one category.
type Section struct {
	Category string `json:"category"`
	Items    []QA   `json:"q_and_a_list"`
}

// FAQBody is the data section of the FAQ page.
type FAQBody struct {
	PageTitle   string    `json:"page_title"`
	Description string    `json:"description"`
	Sections    []Section `json:"sections"`
}

// FAQPage renders the questions grouped by category. Categories appear in
// the order they are first seen.
func FAQPage(questions []domain.Question, opts Options) (string, error) {
	return render(FAQBody{
		PageTitle:   "Frequently Asked Questions",
		Description: "Common questions regarding usage, safety, and results.",
		Sections:    GroupByCategory(questions),
	}, opts)
}

// GroupByCategory buckets questions by category in first-seen order.
func GroupByCategory(questions []domain.Question) []Section {
	sections := []Section{}
	index := map[string]int{}
	for _, q := range questions {
		i, ok := index[q.Category]
		if !ok {
			i = len(sections)
			index[q.Category] = i
			sections = append(sections, Section{Category: q.Category, Items: []QA{}})
		}
		sections[i].Items = append(sections[i].Items, QA{Question: q.Question, Answer: q.Answer})
	}
	return sections
}

// PriceDetails explains the price verdict.
type PriceDetails struct {
	Difference        float64 `json:"difference"`
	PercentDifference float64 `json:"percent_difference"`
	Verdict           string  `json:"verdict"`
	Message           string  `json:"message"`
}

// PriceTable compares the two prices.
type PriceTable struct {
	OurPrice        float64      `json:"our_price"`
	CompetitorPrice float64      `json:"competitor_price"`
	Details         PriceDetails `json:"details"`
}

// IngredientTable compares the ingredient lists.
type IngredientTable struct {
	Common                []string `json:"common_ingredients"`
	OurUniqueAdvantages   []string `json:"our_unique_advantages"`
	CompetitorIngredients []string `json:"competitor_ingredients"`
}

// BenefitTable lists both benefit sets.
type BenefitTable struct {
	Us   []string `json:"us"`
	Them []string `json:"them"`
}

// Tables holds every comparison table.
type Tables struct {
	Price       PriceTable      `json:"price_comparison"`
	Ingredients IngredientTable `json:"ingredient_overlap"`
	Benefits    BenefitTable    `json:"benefit_comparison"`
}

// ComparisonBody is the data section of the comparison page.
type ComparisonBody struct {
	PageHeader       string `json:"page_header"`
	Verdict          string `json:"buying_guide_verdict"`
	AdvantageSummary string `json:"advantage_summary"`
	Tables           Tables `json:"comparison_tables"`
	Disclaimer       string `json:"disclaimer"`
}

// ComparisonPage renders the product against its competitor.
func ComparisonPage(p, c domain.Product, a domain.Analysis, opts Options) (string, error) {
	competitor := append(append([]string{}, a.Common...), a.UniqueToCompetitor...)
	return render(ComparisonBody{
		PageHeader:       fmt.Sprintf("%s vs. %s", p.Name, c.Name),
		Verdict:          a.Verdict,
		AdvantageSummary: a.AdvantageText,
		Tables: Tables{
			Price: PriceTable{
				OurPrice:        p.Price,
				CompetitorPrice: c.Price,
				Details: PriceDetails{
					Difference:        a.NumericDelta,
					PercentDifference: a.PercentDifference,
					Verdict:           a.Verdict,
					Message:           a.Message,
				},
			},
			Ingredients: IngredientTable{
				Common:                nonNil(a.Common),
				OurUniqueAdvantages:   nonNil(a.UniqueToProduct),
				CompetitorIngredients: competitor,
			},
			Benefits: BenefitTable{
				Us:   nonNil(p.Benefits),
				Them: nonNil(c.Benefits),
			},
		},
		Disclaimer: "Competitor data is simulated for demonstration purposes.",
	}, opts)
}

// PriceDisplay formats an amount with its currency code, e.g. "INR 699".
func PriceDisplay(currency string, amount float64) string {
	value := strconv.FormatFloat(amount, 'f', -1, 64)
	if currency == "" {
		return value
	}
	return currency + " " + value
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
