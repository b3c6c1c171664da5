package logic

import (
	"fmt"
	"math"
	"strconv"
)

// PriceStats is the result of comparing two prices.
type PriceStats struct {
	Difference        float64 `json:"difference"`
	IsCheaper         bool    `json:"is_cheaper"`
	PercentDifference float64 `json:"percent_difference"`
}

// PriceDelta compares priceA against priceB.
// PercentDifference is rounded to one decimal and is 0 when priceB is 0.
func PriceDelta(priceA, priceB float64) PriceStats {
	diff := priceA - priceB
	stats := PriceStats{
		Difference: diff,
		IsCheaper:  diff < 0,
	}
	if priceB != 0 {
		stats.PercentDifference = round1(diff / priceB * 100)
	}
	return stats
}

// Price verdicts.
const (
	VerdictBetterValue   = "Better Value"
	VerdictPremiumChoice = "Premium Choice"
	VerdictEqualPrice    = "Equal Price"
)

// PriceVerdict labels the value proposition of priceA against priceB and
// returns a short message for the comparison page.
func PriceVerdict(priceA, priceB float64) (verdict, message string) {
	diff := priceA - priceB
	switch {
	case diff < 0:
		return VerdictBetterValue, fmt.Sprintf("Save %s compared to competitor", formatAmount(-diff))
	case diff > 0:
		return VerdictPremiumChoice, fmt.Sprintf("Invests %s more for premium ingredients", formatAmount(diff))
	default:
		return VerdictEqualPrice, "Same price point"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
