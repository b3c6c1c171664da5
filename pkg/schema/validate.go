package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var fenceRegex = regexp.MustCompile(`(?s)` + "```" + `(?:json)?\s*\n?(.*?)\n?` + "```")

// Unfence returns the body of the first markdown code fence in content,
// or the trimmed content when there is none.
func Unfence(content string) string {
	content = strings.TrimSpace(content)
	if m := fenceRegex.FindStringSubmatch(content); len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return content
}

// Definition renders t as a response schema. A nil type yields nil.
func Definition(t Type) map[string]any {
	if t == nil {
		return nil
	}
	return t.Definition()
}

// ValidateJSON decodes raw and checks it against t.
// It returns ErrInvalidJSON for undecodable input and an *AggregateError
// listing every mismatch otherwise.
func ValidateJSON(t Type, raw []byte) error {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return t.Validate(value)
}

// Decode validates raw against t and then unmarshals it into out.
// A payload wrapped in a markdown code fence is unwrapped first.
func Decode(t Type, raw []byte, out any) error {
	err := ValidateJSON(t, raw)
	if errors.Is(err, ErrInvalidJSON) {
		raw = []byte(Unfence(string(raw)))
		err = ValidateJSON(t, raw)
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}
