package domain

// Product is the structured record of a product, either the subject of the
// run (the primary record) or its synthetic counterpart (the competitor).
type Product struct {
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Currency      string   `json:"currency"`
	Concentration string   `json:"concentration,omitempty"`
	SkinType      []string `json:"skin_type"`
	Ingredients   []string `json:"ingredients"`
	Benefits      []string `json:"benefits"`
	HowToUse      string   `json:"how_to_use"`
	SideEffects   string   `json:"side_effects,omitempty"`
}

// Question is one generated FAQ entry.
type Question struct {
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Analysis is the outcome of comparing the primary record with the competitor.
type Analysis struct {
	Verdict            string   `json:"verdict"`
	NumericDelta       float64  `json:"price_diff"`
	PercentDifference  float64  `json:"percent_diff"`
	AdvantageText      string   `json:"advantage_summary"`
	Message            string   `json:"message"`
	Common             []string `json:"common_ingredients"`
	UniqueToProduct    []string `json:"unique_to_product"`
	UniqueToCompetitor []string `json:"unique_to_competitor"`
}

// Artifacts holds the three rendered JSON documents.
// Every field is empty until the terminal step has run.
type Artifacts struct {
	ProductPage    string `json:"product_page"`
	FAQ            string `json:"faq"`
	ComparisonPage string `json:"comparison_page"`
}

// Empty reports whether no artifact has been rendered yet.
func (a Artifacts) Empty() bool {
	return a.ProductPage == "" && a.FAQ == "" && a.ComparisonPage == ""
}
