package validator

import (
	"fmt"

	"schemaforge/internal/model"
)

// wideTableThreshold is the column count above which a table is flagged.
const wideTableThreshold = 50

func checkForeignKeyIndexes(s *model.Schema) []Diagnostic {
	var diags []Diagnostic
	for i := range s.Tables {
		t := &s.Tables[i]
		for _, fk := range t.ForeignKeys() {
			for _, col := range fk.Columns {
				if t.HasIndexOn(col) {
					continue
				}
				diags = append(diags, Diagnostic{
					ID:          fmt.Sprintf("fk_no_index_%s_%s", t.Name, col),
					Severity:    SeverityWarning,
					Category:    CategoryPerformance,
					Table:       t.Name,
					Column:      col,
					Constraint:  fk.Name,
					Message:     fmt.Sprintf("foreign-key column %q has no covering index", col),
					Description: "Joins and cascading deletes through this foreign key scan the whole table without an index on the referencing column.",
					Suggestion:  "Add an index with this column in the leading position.",
					Fixable:     true,
				})
			}
		}
	}
	return diags
}

func checkWideTables(s *model.Schema) []Diagnostic {
	var diags []Diagnostic
	for i := range s.Tables {
		t := &s.Tables[i]
		if len(t.Columns) <= wideTableThreshold {
			continue
		}
		diags = append(diags, Diagnostic{
			ID:          "wide_table_" + t.Name,
			Severity:    SeverityInfo,
			Category:    CategoryPerformance,
			Table:       t.Name,
			Message:     fmt.Sprintf("table %q has %d columns", t.Name, len(t.Columns)),
			Description: "Very wide tables usually mix several entities and make every row read expensive.",
			Suggestion:  "Consider splitting the table by access pattern.",
		})
	}
	return diags
}

func checkEmptyIndexes(s *model.Schema) []Diagnostic {
	var diags []Diagnostic
	for i := range s.Tables {
		t := &s.Tables[i]
		for j := range t.Indexes {
			idx := &t.Indexes[j]
			if len(idx.Columns) > 0 {
				continue
			}
			diags = append(diags, Diagnostic{
				ID:         fmt.Sprintf("empty_index_%s_%s", t.Name, idx.Name),
				Severity:   SeverityError,
				Category:   CategoryPerformance,
				Table:      t.Name,
				Message:    fmt.Sprintf("index %q declares no columns", idx.Name),
				Suggestion: "Add columns to the index or delete it.",
			})
		}
	}
	return diags
}
