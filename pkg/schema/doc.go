// Package schema describes the shape of structured generator responses.
//
// A schema is built from a small set of types (string, number, array, object).
// The same value serves two purposes: it is rendered as a response schema for
// generators that support constrained output, and it validates the JSON a
// generator actually returned before the payload is decoded into domain types.
//
// Basic usage:
//
//	question := schema.Object(
//	    schema.Field("category", schema.String()),
//	    schema.Field("question", schema.String()),
//	    schema.Field("answer", schema.String()),
//	)
//	list := schema.Array(question)
//
//	if err := schema.ValidateJSON(list, raw); err != nil {
//	    // raw does not match
//	}
//
// Generators receive the rendered form through Definition:
//
//	def := schema.Definition(list) // {"type": "ARRAY", "items": {...}}
//
// The type names follow the OpenAPI subset accepted by Gemini's responseSchema.
package schema
