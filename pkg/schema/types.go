package schema

import (
	"fmt"
	"strconv"
)

// Type defines the contract for a schema node.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "[number]").
	Name() string
	// Validate checks if a decoded JSON value conforms to this type.
	Validate(value any) error
	// Definition renders the type as a response schema fragment.
	Definition() map[string]any

	check(path string, value any) []error
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error { return collect(t.check("", value)) }

func (t *StringType) Definition() map[string]any { return map[string]any{"type": "STRING"} }

func (t *StringType) check(path string, value any) []error {
	if _, ok := value.(string); !ok {
		return []error{&ValidationError{Path: path, Reason: "expected string", Value: value}}
	}
	return nil
}

// NumberType validates numeric values as produced by encoding/json.
type NumberType struct{}

func (t *NumberType) Name() string { return "number" }

func (t *NumberType) Validate(value any) error { return collect(t.check("", value)) }

func (t *NumberType) Definition() map[string]any { return map[string]any{"type": "NUMBER"} }

func (t *NumberType) check(path string, value any) []error {
	switch value.(type) {
	case float64, float32, int, int64, int32:
		return nil
	default:
		return []error{&ValidationError{Path: path, Reason: "expected number", Value: value}}
	}
}

// ArrayType validates lists of a specific element type.
type ArrayType struct {
	elem Type
}

func (t *ArrayType) Name() string {
	return fmt.Sprintf("[%s]", t.elem.Name())
}

func (t *ArrayType) Validate(value any) error { return collect(t.check("", value)) }

func (t *ArrayType) Definition() map[string]any {
	return map[string]any{"type": "ARRAY", "items": t.elem.Definition()}
}

func (t *ArrayType) check(path string, value any) []error {
	items, ok := value.([]any)
	if !ok {
		return []error{&ValidationError{Path: path, Reason: "expected array", Value: value}}
	}
	var errs []error
	for i, item := range items {
		errs = append(errs, t.elem.check(path+"["+strconv.Itoa(i)+"]", item)...)
	}
	return errs
}

// FieldSpec is one property of an object schema.
type FieldSpec struct {
	Name     string
	Type     Type
	Optional bool
}

// ObjectType validates JSON objects with a fixed set of properties.
// Unknown properties are ignored.
type ObjectType struct {
	fields []FieldSpec
}

func (t *ObjectType) Name() string { return "object" }

func (t *ObjectType) Validate(value any) error { return collect(t.check("", value)) }

func (t *ObjectType) Definition() map[string]any {
	props := make(map[string]any, len(t.fields))
	order := make([]string, 0, len(t.fields))
	required := []string{}
	for _, f := range t.fields {
		props[f.Name] = f.Type.Definition()
		order = append(order, f.Name)
		if !f.Optional {
			required = append(required, f.Name)
		}
	}
	return map[string]any{
		"type":             "OBJECT",
		"properties":       props,
		"required":         required,
		"propertyOrdering": order,
	}
}

func (t *ObjectType) check(path string, value any) []error {
	obj, ok := value.(map[string]any)
	if !ok {
		return []error{&ValidationError{Path: path, Reason: "expected object", Value: value}}
	}
	var errs []error
	for _, f := range t.fields {
		fieldPath := f.Name
		if path != "" {
			fieldPath = path + "." + f.Name
		}
		v, exists := obj[f.Name]
		if !exists || v == nil {
			if !f.Optional {
				errs = append(errs, &ValidationError{Path: fieldPath, Reason: "required"})
			}
			continue
		}
		errs = append(errs, f.Type.check(fieldPath, v)...)
	}
	return errs
}

// Fields lists the properties of the object in declaration order.
func (t *ObjectType) Fields() []FieldSpec {
	return append([]FieldSpec(nil), t.fields...)
}

// --- Factory Functions ---

// String creates a string type.
func String() Type { return &StringType{} }

// Number creates a numeric type.
func Number() Type { return &NumberType{} }

// Array creates a list type for elements of the given type.
func Array(elem Type) Type { return &ArrayType{elem: elem} }

// Object creates an object type from its properties.
func Object(fields ...FieldSpec) *ObjectType { return &ObjectType{fields: fields} }

// Field declares a required property.
func Field(name string, t Type) FieldSpec { return FieldSpec{Name: name, Type: t} }

// OptionalField declares a property that may be missing or null.
func OptionalField(name string, t Type) FieldSpec {
	return FieldSpec{Name: name, Type: t, Optional: true}
}

func collect(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: errs}
}
