// Package templates renders the three content pages as JSON documents.
//
// Every document shares the same envelope:
//
//	{"meta": {"generated_by": ..., "version": "1.0", "content_type": "application/json"}, "data": {...}}
//
// Pages rendered from content that failed review carry "degraded": true in meta.
package templates

import (
	"encoding/json"
)

const (
	// Version is the document format version.
	Version = "1.0"
	// ContentType is the media type of every document.
	ContentType = "application/json"
	// DefaultGeneratedBy names the producer when Options.GeneratedBy is empty.
	DefaultGeneratedBy = "Folio Content Engine"
)

// Meta is the envelope header.
type Meta struct {
	GeneratedBy string `json:"generated_by"`
	Version     string `json:"version"`
	ContentType string `json:"content_type"`
	Degraded    bool   `json:"degraded,omitempty"`
}

// Envelope wraps a page body with its metadata.
type Envelope[T any] struct {
	Meta Meta `json:"meta"`
	Data T    `json:"data"`
}

// Options tune the envelope.
type Options struct {
	GeneratedBy string
	Degraded    bool
}

func (o Options) meta() Meta {
	by := o.GeneratedBy
	if by == "" {
		by = DefaultGeneratedBy
	}
	return Meta{
		GeneratedBy: by,
		Version:     Version,
		ContentType: ContentType,
		Degraded:    o.Degraded,
	}
}

func render[T any](data T, opts Options) (string, error) {
	out, err := json.MarshalIndent(Envelope[T]{Meta: opts.meta(), Data: data}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
