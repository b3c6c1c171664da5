package steps

import (
	"github.com/aretw0/folio/pkg/ports"
	"github.com/aretw0/folio/pkg/schema"
)

var productType = schema.Object(
	schema.Field("name", schema.String()),
	schema.Field("price", schema.Number()),
	schema.OptionalField("currency", schema.String()),
	schema.OptionalField("concentration", schema.String()),
	schema.OptionalField("skin_type", schema.Array(schema.String())),
	schema.Field("ingredients", schema.Array(schema.String())),
	schema.OptionalField("benefits", schema.Array(schema.String())),
	schema.OptionalField("how_to_use", schema.String()),
	schema.OptionalField("side_effects", schema.String()),
)

var questionListType = schema.Array(schema.Object(
	schema.Field("category", schema.String()),
	schema.Field("question", schema.String()),
	schema.Field("answer", schema.String()),
))

// ProductSchema is the response shape of product and competitor calls.
var ProductSchema = ports.Schema{Name: "product", Definition: schema.Definition(productType)}

// QuestionsSchema is the response shape of question generation calls.
var QuestionsSchema = ports.Schema{Name: "questions", Definition: schema.Definition(questionListType)}
