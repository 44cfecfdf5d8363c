package llm

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// ToolCall is a request from the model to invoke a named function
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON object text as produced by the model
}

// Function represents a function that can be called by the LLM
type Function struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

// Parameter describes one property of a function's parameter object
type Parameter struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// ObjectSchema builds the parameter schema for a function. Parameters not
// listed are rejected by validation.
func ObjectSchema(params ...Parameter) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:                 "object",
		Properties:           make(map[string]*jsonschema.Schema, len(params)),
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}
	for _, p := range params {
		schema.Properties[p.Name] = &jsonschema.Schema{
			Type:        p.Type,
			Description: p.Description,
		}
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}
	return schema
}
