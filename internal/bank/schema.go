package bank

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bankSchema defines the JSON shape of a question bank file. It checks
// structure only; cross-field rules (answer keys matching options, per-type
// option counts) are enforced in Go by validateQuestion.
var bankSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{
			"type":    "integer",
			"minimum": 1,
		},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"category": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"type": map[string]any{
						"type": "string",
						"enum": []any{"single", "multi", "judgment"},
					},
					"prompt": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"options": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"key": map[string]any{
									"type":      "string",
									"minLength": 1,
								},
								"text": map[string]any{
									"type": "string",
								},
							},
							"required":             []any{"key", "text"},
							"additionalProperties": false,
						},
					},
					"answer": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type":      "string",
							"minLength": 1,
						},
					},
					"explanation": map[string]any{
						"type": "string",
					},
				},
				"required":             []any{"id", "category", "type", "prompt", "answer"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"version", "questions"},
	"additionalProperties": false,
}

// validateShape checks raw bank JSON against bankSchema.
func validateShape(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compileBankSchema()
	if err != nil {
		return err
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// compileBankSchema compiles bankSchema. The library expects a parsed JSON
// value, so the map is round-tripped through encoding/json first.
func compileBankSchema() (*jsonschema.Schema, error) {
	defBytes, err := json.Marshal(bankSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	const schemaURL = "schema://question-bank.json"
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return compiled, nil
}
