// Package validator runs a rule battery over a schema snapshot and reports
// design problems as diagnostics. Validation is pure and total: it never
// mutates the schema, never fails, and always runs every rule.
package validator

import (
	"fmt"

	"schemaforge/internal/model"
)

// Severity grades how serious a diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Category groups diagnostics by the concern a rule inspects.
type Category string

const (
	CategoryStructure     Category = "structure"
	CategoryNaming        Category = "naming"
	CategoryPerformance   Category = "performance"
	CategorySecurity      Category = "security"
	CategoryCompatibility Category = "compatibility"
)

// Diagnostic is one finding of the rule battery.
type Diagnostic struct {
	ID           string   `json:"id"`
	Severity     Severity `json:"severity"`
	Category     Category `json:"category"`
	Table        string   `json:"table,omitempty"`
	Column       string   `json:"column,omitempty"`
	Constraint   string   `json:"constraint,omitempty"`
	Relationship string   `json:"relationship,omitempty"`
	Message      string   `json:"message"`
	Description  string   `json:"description,omitempty"`
	Suggestion   string   `json:"suggestion,omitempty"`
	Fixable      bool     `json:"fixable"`
}

// rule is one independent check. Rules run in catalogue order, which fixes
// the diagnostic order: category first, then schema traversal order.
type rule struct {
	category Category
	check    func(*model.Schema) []Diagnostic
}

func rules() []rule {
	return []rule{
		{CategoryStructure, checkPrimaryKeys},
		{CategoryStructure, checkEmptyTables},
		{CategoryStructure, checkVarcharLengths},
		{CategoryStructure, checkAutoIncrementTypes},
		{CategoryStructure, checkTextNotNull},
		{CategoryStructure, checkRelationshipTargets},
		{CategoryNaming, checkNamePattern},
		{CategoryNaming, checkReservedWords},
		{CategoryNaming, checkIndexPrefixes},
		{CategoryPerformance, checkForeignKeyIndexes},
		{CategoryPerformance, checkWideTables},
		{CategoryPerformance, checkEmptyIndexes},
		{CategorySecurity, checkSensitiveNames},
		{CategorySecurity, checkAuditColumns},
		{CategoryCompatibility, checkTypeCompatibility},
		{CategoryCompatibility, checkIndexCompatibility},
	}
}

// Validate evaluates every rule against the schema. A panicking rule yields
// one synthetic error diagnostic for its category and never aborts the run.
func Validate(schema model.Schema) []Diagnostic {
	diags := []Diagnostic{}
	for _, r := range rules() {
		diags = append(diags, runRule(r, &schema)...)
	}
	return diags
}

func runRule(r rule, s *model.Schema) (diags []Diagnostic) {
	defer func() {
		if rec := recover(); rec != nil {
			diags = []Diagnostic{{
				ID:          "rule_failure_" + string(r.category),
				Severity:    SeverityError,
				Category:    r.category,
				Message:     fmt.Sprintf("internal failure in a %s rule: %v", r.category, rec),
				Description: "One validation rule failed while evaluating the schema. All remaining rules still ran; this report may be missing findings for this category.",
			}}
		}
	}()
	return r.check(s)
}
