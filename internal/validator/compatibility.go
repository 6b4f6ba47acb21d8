package validator

import (
	"fmt"

	"schemaforge/internal/dialect"
	"schemaforge/internal/model"
)

func checkTypeCompatibility(s *model.Schema) []Diagnostic {
	a, err := dialect.ForEngine(s.Engine)
	if err != nil {
		return []Diagnostic{{
			ID:       "unknown_engine",
			Severity: SeverityError,
			Category: CategoryCompatibility,
			Message:  fmt.Sprintf("schema selects unknown engine %q", s.Engine),
		}}
	}

	unsupported := make(map[model.ColumnType]bool)
	for _, t := range a.UnsupportedTypes() {
		unsupported[t] = true
	}

	var diags []Diagnostic
	for i := range s.Tables {
		t := &s.Tables[i]
		for j := range t.Columns {
			c := &t.Columns[j]
			if !unsupported[c.Type] {
				continue
			}
			diags = append(diags, Diagnostic{
				ID:          fmt.Sprintf("type_compat_%s_%s", t.Name, c.Name),
				Severity:    SeverityWarning,
				Category:    CategoryCompatibility,
				Table:       t.Name,
				Column:      c.Name,
				Message:     fmt.Sprintf("type %s has no native %s representation", c.Type, s.Engine),
				Description: fmt.Sprintf("Generation substitutes the nearest native type (%s), which may behave differently from the generic type.", a.ColumnType(*c)),
				Suggestion:  "Pick a type the engine supports natively if the substitution is not acceptable.",
			})
		}
	}
	return diags
}

func checkIndexCompatibility(s *model.Schema) []Diagnostic {
	a, err := dialect.ForEngine(s.Engine)
	if err != nil {
		return nil
	}

	var diags []Diagnostic
	for i := range s.Tables {
		t := &s.Tables[i]
		for j := range t.Indexes {
			idx := &t.Indexes[j]
			if a.SupportsIndexType(idx.Type) {
				continue
			}
			diags = append(diags, Diagnostic{
				ID:          fmt.Sprintf("index_compat_%s_%s", t.Name, idx.Name),
				Severity:    SeverityError,
				Category:    CategoryCompatibility,
				Table:       t.Name,
				Message:     fmt.Sprintf("index %q uses %s, which %s does not support", idx.Name, idx.Type, s.Engine),
				Description: "Generation falls back to a btree index; the intended access method is lost.",
				Suggestion:  "Change the index type or the target engine.",
			})
		}
	}
	return diags
}
