package prd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// RecordSchema is the JSON Schema of a serialized ParsedPRD, for
// downstream tools that consume the record.
const RecordSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["project_name", "description", "tech_stack", "features", "feature_count"],
  "properties": {
    "project_name": { "type": "string", "minLength": 1 },
    "description": { "type": "string", "minLength": 1 },
    "tech_stack": { "type": "array", "items": { "type": "string" } },
    "features": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "description", "priority"],
        "properties": {
          "title": { "type": "string" },
          "description": { "type": "string" },
          "priority": { "enum": ["High", "Medium", "Low"] }
        }
      }
    },
    "feature_count": { "type": "integer", "minimum": 0 }
  }
}`

var recordSchemaLoader = gojsonschema.NewStringLoader(RecordSchema)

// SchemaError lists every way a record fails validation.
type SchemaError struct {
	Issues []string
}

func (e *SchemaError) Error() string {
	return "invalid record: " + strings.Join(e.Issues, "; ")
}

// Validate checks serialized record data against RecordSchema and also
// that feature_count matches the number of features.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(recordSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validate record: %w", err)
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return &SchemaError{Issues: issues}
	}

	var counts struct {
		Features     []json.RawMessage `json:"features"`
		FeatureCount int               `json:"feature_count"`
	}
	if err := json.Unmarshal(data, &counts); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if counts.FeatureCount != len(counts.Features) {
		return &SchemaError{Issues: []string{
			fmt.Sprintf("feature_count: %d does not match %d features", counts.FeatureCount, len(counts.Features)),
		}}
	}
	return nil
}
