package schema

import (
	"errors"
	"fmt"
)

// ErrInvalidJSON is returned when a payload is not valid JSON at all.
var ErrInvalidJSON = errors.New("invalid json")

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Path   string // Dotted path to the field, e.g. "[3].answer"
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	path := e.Path
	if path == "" {
		path = "$"
	}
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", path, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %T)", path, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
