// internal/catalog/schema.go
package catalog

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// fileSchema describes the on-disk catalog document. Structural validation
// runs before decoding so a malformed seed file is rejected with field-level
// errors instead of half-loading.
var fileSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"symptoms", "diseases", "relations"},
	"properties": map[string]interface{}{
		"symptoms": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"id", "name", "severity"},
				"properties": map[string]interface{}{
					"id":                 map[string]interface{}{"type": "string", "minLength": 1},
					"name":               map[string]interface{}{"type": "string", "minLength": 1},
					"keywords":           map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
					"isEmergencySymptom": map[string]interface{}{"type": "boolean"},
					"severity":           map[string]interface{}{"type": "string", "enum": []interface{}{"mild", "moderate", "severe"}},
				},
			},
		},
		"diseases": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"id", "name", "severityLevel"},
				"properties": map[string]interface{}{
					"id":            map[string]interface{}{"type": "string", "minLength": 1},
					"name":          map[string]interface{}{"type": "string", "minLength": 1},
					"category":      map[string]interface{}{"type": "string"},
					"severityLevel": map[string]interface{}{"type": "string", "enum": []interface{}{"mild", "moderate", "severe", "emergency"}},
				},
			},
		},
		"relations": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"diseaseId", "symptomId", "weight", "probability", "severity"},
				"properties": map[string]interface{}{
					"diseaseId":   map[string]interface{}{"type": "string", "minLength": 1},
					"symptomId":   map[string]interface{}{"type": "string", "minLength": 1},
					"weight":      map[string]interface{}{"type": "number", "minimum": 0, "maximum": 1},
					"probability": map[string]interface{}{"type": "number", "minimum": 0, "maximum": 1},
					"severity":    map[string]interface{}{"type": "string", "enum": []interface{}{"mild", "moderate", "severe"}},
				},
			},
		},
	},
}

// ValidateDocument checks raw catalog JSON against the file schema and
// returns one error listing every violation.
func ValidateDocument(raw []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(fileSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return fmt.Errorf("catalog document invalid: %s", strings.Join(msgs, "; "))
}
