package validator

import (
	"fmt"
	"regexp"
	"strings"

	"schemaforge/internal/model"
)

// reIdentifier is the naming convention enforced across tables and columns.
var reIdentifier = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// reservedWords are SQL keywords that need quoting on most engines.
var reservedWords = map[string]bool{
	"all": true, "alter": true, "and": true, "as": true, "asc": true,
	"between": true, "by": true, "case": true, "check": true, "column": true,
	"constraint": true, "create": true, "cross": true, "current_date": true,
	"current_time": true, "current_timestamp": true, "default": true,
	"delete": true, "desc": true, "distinct": true, "drop": true, "else": true,
	"exists": true, "foreign": true, "from": true, "group": true, "having": true,
	"in": true, "index": true, "inner": true, "insert": true, "into": true,
	"is": true, "join": true, "key": true, "left": true, "like": true,
	"limit": true, "not": true, "null": true, "on": true, "or": true,
	"order": true, "outer": true, "primary": true, "references": true,
	"right": true, "select": true, "set": true, "table": true, "then": true,
	"to": true, "union": true, "unique": true, "update": true, "values": true,
	"when": true, "where": true,
}

func checkNamePattern(s *model.Schema) []Diagnostic {
	var diags []Diagnostic
	for i := range s.Tables {
		t := &s.Tables[i]
		if !reIdentifier.MatchString(t.Name) {
			diags = append(diags, Diagnostic{
				ID:          "bad_name_" + t.Name,
				Severity:    SeverityWarning,
				Category:    CategoryNaming,
				Table:       t.Name,
				Message:     fmt.Sprintf("table name %q is not snake_case", t.Name),
				Description: "Lowercase snake_case names avoid quoting surprises and case-folding differences between engines.",
				Suggestion:  "Rename to lowercase letters, digits, and underscores.",
			})
		}
		for j := range t.Columns {
			c := &t.Columns[j]
			if reIdentifier.MatchString(c.Name) {
				continue
			}
			diags = append(diags, Diagnostic{
				ID:         fmt.Sprintf("bad_name_%s_%s", t.Name, c.Name),
				Severity:   SeverityWarning,
				Category:   CategoryNaming,
				Table:      t.Name,
				Column:     c.Name,
				Message:    fmt.Sprintf("column name %q is not snake_case", c.Name),
				Suggestion: "Rename to lowercase letters, digits, and underscores.",
			})
		}
	}
	return diags
}

func checkReservedWords(s *model.Schema) []Diagnostic {
	var diags []Diagnostic
	for i := range s.Tables {
		t := &s.Tables[i]
		for j := range t.Columns {
			c := &t.Columns[j]
			if !reservedWords[strings.ToLower(c.Name)] {
				continue
			}
			diags = append(diags, Diagnostic{
				ID:          fmt.Sprintf("reserved_word_%s_%s", t.Name, c.Name),
				Severity:    SeverityWarning,
				Category:    CategoryNaming,
				Table:       t.Name,
				Column:      c.Name,
				Message:     fmt.Sprintf("column name %q is a SQL reserved word", c.Name),
				Description: "Reserved words work when quoted but trip up hand-written queries and some tooling.",
				Suggestion:  "Pick a more specific name.",
			})
		}
	}
	return diags
}

func checkIndexPrefixes(s *model.Schema) []Diagnostic {
	var diags []Diagnostic
	for i := range s.Tables {
		t := &s.Tables[i]
		for j := range t.Indexes {
			idx := &t.Indexes[j]
			want := "idx_"
			if idx.Unique {
				want = "uk_"
			}
			if idx.Name == "" || strings.HasPrefix(idx.Name, want) {
				continue
			}
			diags = append(diags, Diagnostic{
				ID:         fmt.Sprintf("index_prefix_%s_%s", t.Name, idx.Name),
				Severity:   SeverityInfo,
				Category:   CategoryNaming,
				Table:      t.Name,
				Message:    fmt.Sprintf("index %q should be prefixed with %q", idx.Name, want),
				Suggestion: fmt.Sprintf("Rename to %s%s.", want, idx.Name),
				Fixable:    true,
			})
		}
	}
	return diags
}
