// Package output provides formatters for rendering validation reports on the
// command line. It is extendable and for now provides two formats: text and
// JSON.
package output

import (
	"fmt"
	"strings"

	"schemaforge/internal/validator"
)

// Format is an enum type representing the available report formats.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Formatter renders a validation report into its output representation.
type Formatter interface {
	FormatReport(validator.Report) (string, error)
}

// NewFormatter creates a Formatter for the given format name. An empty name
// defaults to text.
func NewFormatter(name string) (Formatter, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	switch format {
	case "", FormatText:
		return textFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s; use 'text' or 'json'", name)
	}
}
