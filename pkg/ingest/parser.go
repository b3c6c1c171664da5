// Package ingest parses loosely formatted "Key: Value" product descriptions
// into a domain.Product without calling any generator.
package ingest

import (
	"bufio"
	"errors"
	"strconv"
	"strings"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/logic"
)

var (
	// ErrEmptyInput is returned for blank input.
	ErrEmptyInput = errors.New("empty product description")
	// ErrNoFields is returned when no line carries a recognised key.
	ErrNoFields = errors.New("no recognised product fields")
)

// DefaultCurrency is assumed when the price carries no currency marker.
const DefaultCurrency = "INR"

// UnknownName is used when the description has no name line.
const UnknownName = "Unknown"

type field int

const (
	fieldName field = iota + 1
	fieldPrice
	fieldConcentration
	fieldSkinType
	fieldIngredients
	fieldBenefits
	fieldHowToUse
	fieldSideEffects
)

var aliases = map[string]field{
	"product name":    fieldName,
	"name":            fieldName,
	"price":           fieldPrice,
	"mrp":             fieldPrice,
	"concentration":   fieldConcentration,
	"skin type":       fieldSkinType,
	"skin types":      fieldSkinType,
	"key ingredients": fieldIngredients,
	"ingredients":     fieldIngredients,
	"benefits":        fieldBenefits,
	"how to use":      fieldHowToUse,
	"usage":           fieldHowToUse,
	"side effects":    fieldSideEffects,
}

// currencies maps price markers to ISO codes. Longer markers are listed first
// so that "Rs." wins over "Rs".
var currencies = []struct {
	marker string
	code   string
}{
	{"₹", "INR"},
	{"Rs.", "INR"},
	{"Rs", "INR"},
	{"INR", "INR"},
	{"US$", "USD"},
	{"USD", "USD"},
	{"$", "USD"},
	{"€", "EUR"},
	{"EUR", "EUR"},
	{"£", "GBP"},
	{"GBP", "GBP"},
}

// Parse reads one "Key: Value" pair per line. Keys are matched
// case-insensitively and may be preceded by bullet markers. Unknown keys and
// lines without a colon are ignored. A price that cannot be read is 0.
func Parse(raw string) (domain.Product, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.Product{}, ErrEmptyInput
	}

	p := domain.Product{
		Name:        UnknownName,
		Currency:    DefaultCurrency,
		SkinType:    []string{},
		Ingredients: []string{},
		Benefits:    []string{},
	}

	found := 0
	sc := bufio.NewScanner(strings.NewReader(raw))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		f, known := aliases[normalizeKey(key)]
		if !known {
			continue
		}
		value = strings.TrimSpace(value)
		found++

		switch f {
		case fieldName:
			if value != "" {
				p.Name = value
			}
		case fieldPrice:
			p.Price, p.Currency = ParsePrice(value)
		case fieldConcentration:
			p.Concentration = value
		case fieldSkinType:
			p.SkinType = logic.ParseList(value)
		case fieldIngredients:
			p.Ingredients = logic.ParseList(value)
		case fieldBenefits:
			p.Benefits = logic.ParseList(value)
		case fieldHowToUse:
			p.HowToUse = value
		case fieldSideEffects:
			p.SideEffects = value
		}
	}
	if err := sc.Err(); err != nil {
		return domain.Product{}, err
	}
	if found == 0 {
		return domain.Product{}, ErrNoFields
	}
	return p, nil
}

// ParsePrice reads an amount such as "₹699", "Rs. 1,299.50" or "$12".
// It returns 0 and DefaultCurrency's code when no marker is present and the
// amount cannot be read.
func ParsePrice(text string) (float64, string) {
	s := strings.TrimSpace(text)
	code := DefaultCurrency
	for _, c := range currencies {
		if strings.HasPrefix(s, c.marker) {
			s, code = strings.TrimPrefix(s, c.marker), c.code
			break
		}
		if strings.HasSuffix(s, c.marker) {
			s, code = strings.TrimSuffix(s, c.marker), c.code
			break
		}
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")

	amount, err := strconv.ParseFloat(s, 64)
	if err != nil || amount < 0 {
		return 0, code
	}
	return amount, code
}

func normalizeKey(key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "•*-·– \t")
	return strings.ToLower(strings.Join(strings.Fields(key), " "))
}
