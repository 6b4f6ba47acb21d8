package validator

import (
	"time"

	"schemaforge/internal/model"
)

// SchemaMetadata identifies the validated schema inside a report.
type SchemaMetadata struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Version    string       `json:"version,omitempty"`
	Engine     model.Engine `json:"engine"`
	TableCount int          `json:"tableCount"`
}

// Stats aggregates a diagnostic list by severity.
type Stats struct {
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
	Fixable  int `json:"fixable"`
}

// Report is the exportable validation result.
type Report struct {
	SchemaMetadata SchemaMetadata `json:"schemaMetadata"`
	Timestamp      time.Time      `json:"timestamp"`
	Stats          Stats          `json:"stats"`
	Issues         []Diagnostic   `json:"issues"`
}

// NewReport assembles a report from a finished validation run. The timestamp
// is injected so report construction stays deterministic under test.
func NewReport(schema *model.Schema, issues []Diagnostic, now time.Time) Report {
	if issues == nil {
		issues = []Diagnostic{}
	}
	return Report{
		SchemaMetadata: SchemaMetadata{
			ID:         schema.ID,
			Name:       schema.Name,
			Version:    schema.Version,
			Engine:     schema.Engine,
			TableCount: len(schema.Tables),
		},
		Timestamp: now,
		Stats:     Tally(issues),
		Issues:    issues,
	}
}

// Tally counts diagnostics by severity.
func Tally(issues []Diagnostic) Stats {
	stats := Stats{Total: len(issues)}
	for i := range issues {
		switch issues[i].Severity {
		case SeverityError:
			stats.Errors++
		case SeverityWarning:
			stats.Warnings++
		case SeverityInfo:
			stats.Info++
		}
		if issues[i].Fixable {
			stats.Fixable++
		}
	}
	return stats
}
