package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/voyago/rates-ingestion/constants"
)

// BuildRateArraySchema returns a JSON-Schema (draft 2020-12 subset) for the
// expected completion payload as a generic map. It is embedded into the
// prompt; local enforcement of per-field rules belongs to the validation
// engine, which reports them per candidate instead of rejecting wholesale.
func BuildRateArraySchema() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"rate_type":   map[string]any{"type": "string", "enum": constants.RateTypeStrings()},
				"description": map[string]any{"type": "string", "minLength": 1},
				"cost":        map[string]any{"type": "number", "minimum": 0},
				"currency":    map[string]any{"type": "string", "minLength": 3, "maxLength": 3},
				"valid_start": map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
				"valid_end":   map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
			},
			"required": []string{"rate_type", "description", "cost", "currency", "valid_start", "valid_end"},
		},
	}
}

// arrayShapeSchema gates only the payload shape: a bare array of objects.
// Field-level violations are the validation engine's to aggregate.
var arrayShapeSchema = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "object"},
}

// ValidateArrayShape checks that data is a JSON array of objects.
func ValidateArrayShape(data []byte) error {
	return validateAgainstSchema(arrayShapeSchema, data)
}

func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
