package logic_test

import (
	"math"
	"testing"

	"github.com/aretw0/folio/pkg/logic"
	"github.com/stretchr/testify/assert"
)

func TestPriceDelta(t *testing.T) {
	tests := []struct {
		name    string
		a, b    float64
		diff    float64
		cheaper bool
		percent float64
	}{
		{name: "cheaper", a: 699, b: 899, diff: -200, cheaper: true, percent: -22.2},
		{name: "more expensive", a: 150, b: 100, diff: 50, cheaper: false, percent: 50},
		{name: "equal", a: 100, b: 100, diff: 0, cheaper: false, percent: 0},
		{name: "small ratio", a: 100, b: 150, diff: -50, cheaper: true, percent: -33.3},
		{name: "zero reference", a: 42, b: 0, diff: 42, cheaper: false, percent: 0},
		{name: "both zero", a: 0, b: 0, diff: 0, cheaper: false, percent: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := logic.PriceDelta(tt.a, tt.b)
			assert.Equal(t, tt.diff, got.Difference)
			assert.Equal(t, tt.cheaper, got.IsCheaper)
			assert.InDelta(t, tt.percent, got.PercentDifference, 1e-9)
		})
	}
}

func TestPriceDelta_Properties(t *testing.T) {
	prices := []float64{0.5, 1, 9.99, 100, 699, 899, 1234.5}
	for _, a := range prices {
		for _, b := range prices {
			got := logic.PriceDelta(a, b)
			want := math.Round((a-b)/b*100*10) / 10
			assert.InDelta(t, want, got.PercentDifference, 1e-9, "a=%v b=%v", a, b)
			assert.Equal(t, a < b, got.IsCheaper, "a=%v b=%v", a, b)
		}
		assert.Zero(t, logic.PriceDelta(a, 0).PercentDifference)
	}
}

func TestPriceVerdict(t *testing.T) {
	verdict, msg := logic.PriceVerdict(699, 899)
	assert.Equal(t, logic.VerdictBetterValue, verdict)
	assert.Equal(t, "Save 200 compared to competitor", msg)

	verdict, msg = logic.PriceVerdict(999.5, 899)
	assert.Equal(t, logic.VerdictPremiumChoice, verdict)
	assert.Equal(t, "Invests 100.5 more for premium ingredients", msg)

	verdict, msg = logic.PriceVerdict(10, 10)
	assert.Equal(t, logic.VerdictEqualPrice, verdict)
	assert.Equal(t, "Same price point", msg)
}
