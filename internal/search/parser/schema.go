// internal/search/parser/schema.go
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// responseSchema constrains the shape of the GenAI answer before any value is
// trusted. Vocabulary enforcement happens afterwards in the sanitizer; here we
// only care that the structure is a tag/value object of string arrays, so a
// malformed completion fails fast instead of poisoning the pipeline.
const responseSchema = `{
	"type": "object",
	"properties": {
		"entityTypes":    {"type": "array", "items": {"type": "string"}},
		"locations":      {"type": "array", "items": {"type": "string"}},
		"certifications": {"type": "array", "items": {"type": "string"}},
		"keywords":       {"type": "array", "items": {"type": "string"}},
		"intent":         {"type": "string"}
	},
	"additionalProperties": true
}`

var compiledSchema = gojsonschema.NewStringLoader(responseSchema)

// rawParse mirrors the JSON contract with the completion service.
type rawParse struct {
	EntityTypes    []string `json:"entityTypes"`
	Locations      []string `json:"locations"`
	Certifications []string `json:"certifications"`
	Keywords       []string `json:"keywords"`
	Intent         string   `json:"intent"`
}

// extractJSON pulls the first JSON object out of a free-form completion. The
// service contract does not guarantee a bare object; models often wrap it in
// prose or code fences.
func extractJSON(text string) ([]byte, error) {
	start := bytes.IndexByte([]byte(text), '{')
	end := bytes.LastIndexByte([]byte(text), '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in completion")
	}
	doc := []byte(text[start : end+1])
	if !json.Valid(doc) {
		return nil, fmt.Errorf("completion JSON is not valid")
	}
	return doc, nil
}

// validateShape checks the extracted document against responseSchema.
func validateShape(doc []byte) error {
	result, err := gojsonschema.Validate(compiledSchema, gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("schema validation: %s", errs[0].String())
		}
		return fmt.Errorf("schema validation failed")
	}
	return nil
}
