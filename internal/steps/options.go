// Package steps implements the five steps of the content workflow on top of a
// ports.Generator.
package steps

import (
	"errors"
	"io"
	"log/slog"
)

var errNoGenerator = errors.New("no generator configured")

const (
	// DefaultMinQuestions is the hard-gate threshold.
	DefaultMinQuestions = 15
	// MaxQuestions caps the tightened requirement on retries.
	MaxQuestions = 30
	// retryIncrement is added to the requirement per attempt already made.
	retryIncrement = 5
)

// Categories are the FAQ categories every question set should span.
var Categories = []string{"Informational", "Usage", "Safety", "Purchase", "Comparison"}

type options struct {
	logger       *slog.Logger
	minQuestions int
	softGate     bool
	generatedBy  string
}

// Option configures the steps.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		minQuestions: DefaultMinQuestions,
		softGate:     true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used to report degraded collaborator calls.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMinQuestions overrides the hard-gate threshold.
func WithMinQuestions(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.minQuestions = n
		}
	}
}

// WithSoftGate enables or disables the generator review after the hard gate.
func WithSoftGate(enabled bool) Option {
	return func(o *options) {
		o.softGate = enabled
	}
}

// WithGeneratedBy sets the producer name written to every document envelope.
func WithGeneratedBy(name string) Option {
	return func(o *options) {
		o.generatedBy = name
	}
}
