package services

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/genai"
)

type FieldType string

const (
	FieldString  FieldType = "string"
	FieldInteger FieldType = "integer"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
	FieldArray   FieldType = "array"
)

// Field is one named, typed member of a Schema. Description is sent to the
// model and steers what it writes into the field.
type Field struct {
	Name        string
	Type        FieldType
	Description string
	Optional    bool
	Minimum     *float64
	Maximum     *float64
	Items       *Schema
}

// Schema is the demanded shape of a structured LLM reply. Field order is kept
// when the schema is sent to the provider.
type Schema struct {
	Name        string
	Description string
	Fields      []Field
}

func bound(v float64) *float64 {
	return &v
}

var genaiTypes = map[FieldType]genai.Type{
	FieldString:  genai.TypeString,
	FieldInteger: genai.TypeInteger,
	FieldNumber:  genai.TypeNumber,
	FieldBoolean: genai.TypeBoolean,
	FieldArray:   genai.TypeArray,
}

// GenaiSchema converts s into the response schema understood by Gemini.
func (s *Schema) GenaiSchema() *genai.Schema {
	out := &genai.Schema{
		Type:             genai.TypeObject,
		Title:            s.Name,
		Description:      s.Description,
		Properties:       make(map[string]*genai.Schema, len(s.Fields)),
		PropertyOrdering: make([]string, 0, len(s.Fields)),
	}

	for _, f := range s.Fields {
		prop := &genai.Schema{
			Type:        genaiTypes[f.Type],
			Description: f.Description,
			Minimum:     f.Minimum,
			Maximum:     f.Maximum,
		}
		if f.Type == FieldArray && f.Items != nil {
			prop.Items = f.Items.GenaiSchema()
		}
		if f.Optional {
			nullable := true
			prop.Nullable = &nullable
		} else {
			out.Required = append(out.Required, f.Name)
		}
		out.Properties[f.Name] = prop
		out.PropertyOrdering = append(out.PropertyOrdering, f.Name)
	}

	return out
}

// JSONSchema renders s as a draft-07 JSON Schema document used to validate
// replies. Numeric bounds are hints to the model only and are left out here;
// callers clamp after decoding.
func (s *Schema) JSONSchema() map[string]any {
	properties := make(map[string]any, len(s.Fields))
	required := make([]string, 0, len(s.Fields))

	for _, f := range s.Fields {
		prop := map[string]any{
			"description": f.Description,
		}
		if f.Optional {
			prop["type"] = []string{string(f.Type), "null"}
		} else {
			prop["type"] = string(f.Type)
			required = append(required, f.Name)
		}
		if f.Type == FieldArray && f.Items != nil {
			prop["items"] = f.Items.JSONSchema()
		}
		properties[f.Name] = prop
	}

	return map[string]any{
		"$schema":     "http://json-schema.org/draft-07/schema#",
		"title":       s.Name,
		"description": s.Description,
		"type":        "object",
		"properties":  properties,
		"required":    required,
	}
}

// Validate checks a raw LLM reply against s. Any mismatch, including a reply
// that is not JSON at all, is reported as a *SchemaValidationError.
func (s *Schema) Validate(raw []byte) error {
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return &SchemaValidationError{
			Schema: s.Name,
			Details: []FieldError{{
				Field:   "(root)",
				Type:    "invalid_json",
				Message: err.Error(),
			}},
		}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(s.JSONSchema()),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("failed to validate against schema %s: %w", s.Name, err)
	}

	if result.Valid() {
		return nil
	}

	validationErr := &SchemaValidationError{
		Schema:  s.Name,
		Details: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Details = append(validationErr.Details, FieldError{
			Field:   field,
			Type:    desc.Type(),
			Message: desc.Description(),
		})
	}

	return validationErr
}
