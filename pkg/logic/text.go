package logic

import (
	"fmt"
	"strings"
)

// ParseList splits a comma-separated string into trimmed, non-empty items.
func ParseList(text string) []string {
	items := []string{}
	for _, part := range strings.Split(text, ",") {
		if s := strings.TrimSpace(part); s != "" {
			items = append(items, s)
		}
	}
	return items
}

// Usage is the structured form of free-text usage instructions.
type Usage struct {
	Heading      string   `json:"heading"`
	Instructions []string `json:"instructions"`
	RawText      string   `json:"raw_text"`
}

// UsageInstructions splits usage text into sentences, dropping fragments of
// five characters or fewer.
func UsageInstructions(raw string) Usage {
	steps := []string{}
	for _, sentence := range strings.Split(raw, ".") {
		if s := strings.TrimSpace(sentence); len(s) > 5 {
			steps = append(steps, s)
		}
	}
	return Usage{
		Heading:      "How to Use",
		Instructions: steps,
		RawText:      raw,
	}
}

// Safety is an advisory block for the product page.
type Safety struct {
	HasWarning     bool     `json:"has_safety_warning"`
	WarningText    string   `json:"warning_text"`
	CompatibleSkin []string `json:"compatible_skin_types"`
}

// SafetyAdvisory builds the advisory from the listed side effects.
// Side effects mentioning "none" count as no warning.
func SafetyAdvisory(sideEffects string, skinTypes []string) Safety {
	hasWarning := sideEffects != "" && !strings.Contains(strings.ToLower(sideEffects), "none")
	text := "Safe for indicated skin types."
	if hasWarning {
		text = fmt.Sprintf("Advisory: %s", sideEffects)
	}
	if skinTypes == nil {
		skinTypes = []string{}
	}
	return Safety{
		HasWarning:     hasWarning,
		WarningText:    text,
		CompatibleSkin: skinTypes,
	}
}
