package validator

import (
	"fmt"
	"strings"

	"schemaforge/internal/model"
)

// sensitiveTerms flag columns that likely hold credentials or secrets.
var sensitiveTerms = []string{"password", "secret", "token", "key"}

// userEntityTerms mark tables that likely store people or accounts.
var userEntityTerms = []string{"user", "account", "customer", "member", "employee"}

func checkSensitiveNames(s *model.Schema) []Diagnostic {
	var diags []Diagnostic
	for i := range s.Tables {
		t := &s.Tables[i]
		for j := range t.Columns {
			c := &t.Columns[j]
			term := matchTerm(c.Name, sensitiveTerms)
			if term == "" {
				continue
			}
			diags = append(diags, Diagnostic{
				ID:          fmt.Sprintf("sensitive_name_%s_%s", t.Name, c.Name),
				Severity:    SeverityWarning,
				Category:    CategorySecurity,
				Table:       t.Name,
				Column:      c.Name,
				Message:     fmt.Sprintf("column %q looks like it stores a %s", c.Name, term),
				Description: "Credentials and secrets must be stored hashed or encrypted, never as plain values.",
				Suggestion:  "Store a hash instead of the raw value, or move the secret out of the database.",
			})
		}
	}
	return diags
}

func checkAuditColumns(s *model.Schema) []Diagnostic {
	var diags []Diagnostic
	for i := range s.Tables {
		t := &s.Tables[i]
		if matchTerm(t.Name, userEntityTerms) == "" {
			continue
		}
		if t.FindColumn("created_at") != nil && t.FindColumn("updated_at") != nil {
			continue
		}
		diags = append(diags, Diagnostic{
			ID:          "no_audit_" + t.Name,
			Severity:    SeverityInfo,
			Category:    CategorySecurity,
			Table:       t.Name,
			Message:     fmt.Sprintf("table %q stores user data without audit timestamps", t.Name),
			Description: "Tables holding user data usually need created_at and updated_at columns to answer when a record changed.",
			Suggestion:  "Add created_at and updated_at timestamp columns.",
			Fixable:     true,
		})
	}
	return diags
}

func matchTerm(name string, terms []string) string {
	lower := strings.ToLower(name)
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return term
		}
	}
	return ""
}
