package validator

import (
	"fmt"

	"schemaforge/internal/model"
)

func checkPrimaryKeys(s *model.Schema) []Diagnostic {
	var diags []Diagnostic
	for i := range s.Tables {
		t := &s.Tables[i]
		if len(t.PrimaryKeyColumns()) > 0 {
			continue
		}
		diags = append(diags, Diagnostic{
			ID:          "no_pk_" + t.Name,
			Severity:    SeverityError,
			Category:    CategoryStructure,
			Table:       t.Name,
			Message:     fmt.Sprintf("table %q has no primary key", t.Name),
			Description: "Tables without a primary key cannot be addressed row-by-row and break replication on several engines.",
			Suggestion:  "Mark a column as primary key or add a primary constraint.",
		})
	}
	return diags
}

func checkEmptyTables(s *model.Schema) []Diagnostic {
	var diags []Diagnostic
	for i := range s.Tables {
		t := &s.Tables[i]
		if len(t.Columns) > 0 {
			continue
		}
		diags = append(diags, Diagnostic{
			ID:         "no_columns_" + t.Name,
			Severity:   SeverityWarning,
			Category:   CategoryStructure,
			Table:      t.Name,
			Message:    fmt.Sprintf("table %q has no columns", t.Name),
			Suggestion: "Add columns or remove the table.",
		})
	}
	return diags
}

func checkVarcharLengths(s *model.Schema) []Diagnostic {
	var diags []Diagnostic
	for i := range s.Tables {
		t := &s.Tables[i]
		for j := range t.Columns {
			c := &t.Columns[j]
			if !c.Type.TakesLength() || c.Type == model.TypeDecimal || c.Type == model.TypeNumeric {
				continue
			}
			if c.Length > 0 {
				continue
			}
			diags = append(diags, Diagnostic{
				ID:          fmt.Sprintf("varchar_length_%s_%s", t.Name, c.Name),
				Severity:    SeverityError,
				Category:    CategoryStructure,
				Table:       t.Name,
				Column:      c.Name,
				Message:     fmt.Sprintf("column %q is %s without a length", c.Name, c.Type),
				Description: "Character columns need an explicit maximum length; generation falls back to a default the designer never chose.",
				Suggestion:  "Set a length on the column.",
				Fixable:     true,
			})
		}
	}
	return diags
}

func checkAutoIncrementTypes(s *model.Schema) []Diagnostic {
	var diags []Diagnostic
	for i := range s.Tables {
		t := &s.Tables[i]
		for j := range t.Columns {
			c := &t.Columns[j]
			if !c.AutoIncrement || c.Type.IntegerFamily() {
				continue
			}
			diags = append(diags, Diagnostic{
				ID:          fmt.Sprintf("auto_increment_%s_%s", t.Name, c.Name),
				Severity:    SeverityError,
				Category:    CategoryStructure,
				Table:       t.Name,
				Column:      c.Name,
				Message:     fmt.Sprintf("column %q is auto-increment but its type %s is not an integer type", c.Name, c.Type),
				Description: "Auto-increment only works on integer columns; generation drops the clause for other types.",
				Suggestion:  "Change the type to an integer type or clear the auto-increment flag.",
				Fixable:     true,
			})
		}
	}
	return diags
}

func checkTextNotNull(s *model.Schema) []Diagnostic {
	if s.Engine != model.EngineMySQL {
		return nil
	}
	var diags []Diagnostic
	for i := range s.Tables {
		t := &s.Tables[i]
		for j := range t.Columns {
			c := &t.Columns[j]
			if c.Type != model.TypeText || c.Nullable {
				continue
			}
			diags = append(diags, Diagnostic{
				ID:          fmt.Sprintf("text_not_null_%s_%s", t.Name, c.Name),
				Severity:    SeverityWarning,
				Category:    CategoryStructure,
				Table:       t.Name,
				Column:      c.Name,
				Message:     fmt.Sprintf("TEXT column %q is NOT NULL", c.Name),
				Description: "MySQL TEXT columns cannot carry a default, so NOT NULL forces every insert to provide a value explicitly.",
				Suggestion:  "Make the column nullable or use a sized VARCHAR.",
			})
		}
	}
	return diags
}

func checkRelationshipTargets(s *model.Schema) []Diagnostic {
	var diags []Diagnostic
	for i := range s.Relationships {
		r := &s.Relationships[i]
		for _, end := range []struct{ table, column string }{
			{r.SourceTable, r.SourceColumn},
			{r.TargetTable, r.TargetColumn},
		} {
			t := s.FindTable(end.table)
			if t == nil {
				diags = append(diags, Diagnostic{
					ID:           fmt.Sprintf("rel_missing_table_%s", r.ID),
					Severity:     SeverityError,
					Category:     CategoryStructure,
					Relationship: r.ID,
					Message:      fmt.Sprintf("relationship references missing table %q", end.table),
					Suggestion:   "Delete the relationship or restore the table.",
				})
				continue
			}
			if t.FindColumn(end.column) == nil {
				diags = append(diags, Diagnostic{
					ID:           fmt.Sprintf("rel_missing_column_%s", r.ID),
					Severity:     SeverityError,
					Category:     CategoryStructure,
					Table:        end.table,
					Relationship: r.ID,
					Message:      fmt.Sprintf("relationship references missing column %q.%q", end.table, end.column),
					Suggestion:   "Delete the relationship or restore the column.",
				})
			}
		}
	}
	return diags
}
