package output

import (
	"schemaforge/internal/document"
	"schemaforge/internal/validator"
)

type jsonFormatter struct{}

// FormatReport formats a validation report as the exportable JSON document.
func (jsonFormatter) FormatReport(r validator.Report) (string, error) {
	data, err := document.MarshalReport(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
