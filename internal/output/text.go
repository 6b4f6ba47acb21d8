package output

import (
	"fmt"
	"strings"

	"schemaforge/internal/validator"
)

type textFormatter struct{}

// FormatReport formats a validation report as a human-readable summary.
// Example output:
//
//	Validation Report: shop (mysql, 4 tables)
//	==========================================
//
//	Errors: 1, Warnings: 2, Info: 1 (2 fixable)
//
//	[error]   structure  orders: table "orders" has no primary key
func (textFormatter) FormatReport(r validator.Report) (string, error) {
	var sb strings.Builder

	header := fmt.Sprintf("Validation Report: %s (%s, %d tables)",
		r.SchemaMetadata.Name, r.SchemaMetadata.Engine, r.SchemaMetadata.TableCount)
	sb.WriteString(header)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", len(header)))
	sb.WriteString("\n\n")

	if r.Stats.Total == 0 {
		sb.WriteString("No issues found.\n")
		return sb.String(), nil
	}

	fmt.Fprintf(&sb, "Errors: %d, Warnings: %d, Info: %d (%d fixable)\n\n",
		r.Stats.Errors, r.Stats.Warnings, r.Stats.Info, r.Stats.Fixable)

	for _, d := range r.Issues {
		fmt.Fprintf(&sb, "[%-7s] %-13s %s\n", d.Severity, d.Category, issueLine(&d))
		if d.Suggestion != "" {
			fmt.Fprintf(&sb, "          %s\n", d.Suggestion)
		}
	}
	return sb.String(), nil
}

func issueLine(d *validator.Diagnostic) string {
	where := d.Table
	if d.Column != "" {
		where += "." + d.Column
	}
	if where == "" {
		return d.Message
	}
	return where + ": " + d.Message
}
