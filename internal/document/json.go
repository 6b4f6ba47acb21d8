// Package document reads and writes the JSON schema document, the
// import/export format shared with the surrounding design tool.
package document

import (
	"encoding/json"
	"fmt"
	"os"

	"schemaforge/internal/model"
	"schemaforge/internal/validator"
)

// ParseSchema decodes a schema document from JSON.
func ParseSchema(data []byte) (model.Schema, error) {
	var s model.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return model.Schema{}, fmt.Errorf("parsing schema document: %w", err)
	}
	if s.Engine == "" {
		return model.Schema{}, fmt.Errorf("schema document has no engine")
	}
	if !model.IsValidEngine(string(s.Engine)) {
		return model.Schema{}, fmt.Errorf("schema document selects unsupported engine %q", s.Engine)
	}
	return s, nil
}

// ParseSchemaFile reads and decodes a schema document from disk.
func ParseSchemaFile(path string) (model.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Schema{}, fmt.Errorf("reading schema document: %w", err)
	}
	return ParseSchema(data)
}

// MarshalSchema encodes a schema document as indented JSON.
func MarshalSchema(s model.Schema) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding schema document: %w", err)
	}
	return append(data, '\n'), nil
}

// MarshalReport encodes a validation report as indented JSON.
func MarshalReport(r validator.Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding validation report: %w", err)
	}
	return append(data, '\n'), nil
}
