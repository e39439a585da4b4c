// ABOUTME: JSON Schema validation of model files before they are decoded.
// ABOUTME: YAML input is converted to a generic document and checked against the same schema.
package model

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema/model.schema.json
var schemaJSON []byte

// ValidationError lists every schema violation found in a model document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid model: " + strings.Join(e.Problems, "; ")
}

// Validate checks data against the embedded model schema.
func Validate(data []byte, format Format) error {
	var docLoader gojsonschema.JSONLoader
	switch format {
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decode yaml: %w", err)
		}
		docLoader = gojsonschema.NewGoLoader(doc)
	default:
		docLoader = gojsonschema.NewBytesLoader(data)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), docLoader)
	if err != nil {
		return fmt.Errorf("validate model: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		problems[i] = desc.String()
	}
	return &ValidationError{Problems: problems}
}
