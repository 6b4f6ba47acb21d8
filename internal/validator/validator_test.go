package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemaforge/internal/model"
)

func cleanSchema() model.Schema {
	return model.Schema{
		ID:     "s-1",
		Name:   "shop",
		Engine: model.EngineMySQL,
		Tables: []model.Table{
			{
				ID:   "t-users",
				Name: "users",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeInteger, PrimaryKey: true, AutoIncrement: true},
					{Name: "email", Type: model.TypeVarchar, Length: 255},
					{Name: "created_at", Type: model.TypeTimestamp},
					{Name: "updated_at", Type: model.TypeTimestamp},
				},
			},
			{
				ID:   "t-orders",
				Name: "orders",
				Columns: []model.Column{
					{Name: "id", Type: model.TypeInteger, PrimaryKey: true, AutoIncrement: true},
					{Name: "user_id", Type: model.TypeInteger},
				},
				Indexes: []model.Index{
					{Name: "idx_orders_user", Columns: []string{"user_id"}},
				},
				Constraints: []model.Constraint{
					{
						Name:              "fk_orders_user",
						Type:              model.ConstraintForeign,
						Columns:           []string{"user_id"},
						ReferencedTable:   "users",
						ReferencedColumns: []string{"id"},
					},
				},
			},
		},
		Relationships: []model.Relationship{
			{
				ID:           "r-1",
				SourceTable:  "orders",
				SourceColumn: "user_id",
				TargetTable:  "users",
				TargetColumn: "id",
				Cardinality:  model.OneToMany,
			},
		},
	}
}

func filterBy(diags []Diagnostic, category Category, severity Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Category == category && d.Severity == severity {
			out = append(out, d)
		}
	}
	return out
}

func TestCleanSchemaHasNoStructureErrors(t *testing.T) {
	diags := Validate(cleanSchema())

	assert.Empty(t, filterBy(diags, CategoryStructure, SeverityError))
}

func TestMissingPrimaryKeyExactlyOneError(t *testing.T) {
	schema := cleanSchema()
	schema.Tables = append(schema.Tables, model.Table{
		ID:      "t-logs",
		Name:    "logs",
		Columns: []model.Column{{Name: "line", Type: model.TypeText, Nullable: true}},
	})

	var pkDiags []Diagnostic
	for _, d := range Validate(schema) {
		if d.Severity == SeverityError && len(d.ID) > 6 && d.ID[:6] == "no_pk_" {
			pkDiags = append(pkDiags, d)
		}
	}

	require.Len(t, pkDiags, 1)
	assert.Equal(t, "no_pk_logs", pkDiags[0].ID)
	assert.Equal(t, "logs", pkDiags[0].Table)
}

func TestVarcharWithoutLengthSingleError(t *testing.T) {
	schema := cleanSchema()
	schema.Tables[0].Columns[1].Length = 0

	var found []Diagnostic
	for _, d := range Validate(schema) {
		if d.ID == "varchar_length_users_email" {
			found = append(found, d)
		}
	}

	require.Len(t, found, 1)
	assert.Equal(t, SeverityError, found[0].Severity)
	assert.Equal(t, CategoryStructure, found[0].Category)
	assert.True(t, found[0].Fixable)
}

func TestTextNotNullOnlyFlaggedOnMySQL(t *testing.T) {
	schema := cleanSchema()
	schema.Tables[0].Columns = append(schema.Tables[0].Columns,
		model.Column{Name: "bio", Type: model.TypeText})

	diags := Validate(schema)
	assert.True(t, containsID(diags, "text_not_null_users_bio"))

	schema.Engine = model.EnginePostgreSQL
	diags = Validate(schema)
	assert.False(t, containsID(diags, "text_not_null_users_bio"))
}

func TestRelationshipTargets(t *testing.T) {
	schema := cleanSchema()
	schema.Relationships = append(schema.Relationships,
		model.Relationship{
			ID:           "r-ghost",
			SourceTable:  "ghosts",
			SourceColumn: "id",
			TargetTable:  "users",
			TargetColumn: "nope",
			Cardinality:  model.OneToOne,
		})

	diags := Validate(schema)
	assert.True(t, containsID(diags, "rel_missing_table_r-ghost"))
	assert.True(t, containsID(diags, "rel_missing_column_r-ghost"))
}

func TestNamingRules(t *testing.T) {
	schema := cleanSchema()
	schema.Tables[0].Name = "Users"
	schema.Tables[1].Columns = append(schema.Tables[1].Columns,
		model.Column{Name: "order", Type: model.TypeInteger})
	schema.Tables[1].Indexes = append(schema.Tables[1].Indexes,
		model.Index{Name: "user_lookup", Columns: []string{"user_id"}})

	diags := Validate(schema)

	assert.True(t, containsID(diags, "bad_name_Users"))
	assert.True(t, containsID(diags, "reserved_word_orders_order"))
	assert.True(t, containsID(diags, "index_prefix_orders_user_lookup"))
}

func TestIndexPrefixMatchesUniqueness(t *testing.T) {
	schema := cleanSchema()
	schema.Tables[0].Indexes = []model.Index{
		{Name: "idx_email", Columns: []string{"email"}, Unique: true},
	}

	diags := Validate(schema)

	var found *Diagnostic
	for i := range diags {
		if diags[i].ID == "index_prefix_users_idx_email" {
			found = &diags[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, SeverityInfo, found.Severity)
	assert.Contains(t, found.Message, `"uk_"`)
}

func TestForeignKeyWithoutIndex(t *testing.T) {
	schema := cleanSchema()
	schema.Tables[1].Indexes = nil

	diags := Validate(schema)

	assert.True(t, containsID(diags, "fk_no_index_orders_user_id"))
	// the covering index in the clean schema suppresses the warning
	assert.False(t, containsID(Validate(cleanSchema()), "fk_no_index_orders_user_id"))
}

func TestWideTable(t *testing.T) {
	schema := cleanSchema()
	wide := model.Table{ID: "t-wide", Name: "wide"}
	wide.Columns = append(wide.Columns, model.Column{Name: "id", Type: model.TypeInteger, PrimaryKey: true})
	for i := 0; i < wideTableThreshold; i++ {
		wide.Columns = append(wide.Columns, model.Column{
			Name: "col_" + string(rune('a'+i%26)) + string(rune('a'+i/26)),
			Type: model.TypeInteger,
		})
	}
	schema.Tables = append(schema.Tables, wide)

	assert.True(t, containsID(Validate(schema), "wide_table_wide"))
}

func TestEmptyIndex(t *testing.T) {
	schema := cleanSchema()
	schema.Tables[0].Indexes = []model.Index{{Name: "idx_nothing"}}

	diags := Validate(schema)

	var found *Diagnostic
	for i := range diags {
		if diags[i].ID == "empty_index_users_idx_nothing" {
			found = &diags[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, SeverityError, found.Severity)
	assert.Equal(t, CategoryPerformance, found.Category)
}

func TestSensitiveColumnNames(t *testing.T) {
	schema := cleanSchema()
	schema.Tables[0].Columns = append(schema.Tables[0].Columns,
		model.Column{Name: "password_hash", Type: model.TypeVarchar, Length: 60},
		model.Column{Name: "api_token", Type: model.TypeVarchar, Length: 64})

	diags := Validate(schema)

	assert.True(t, containsID(diags, "sensitive_name_users_password_hash"))
	assert.True(t, containsID(diags, "sensitive_name_users_api_token"))
}

func TestAuditColumns(t *testing.T) {
	schema := cleanSchema()
	// users has created_at/updated_at, so only a stripped copy is flagged
	assert.False(t, containsID(Validate(schema), "no_audit_users"))

	schema.Tables[0].Columns = schema.Tables[0].Columns[:2]
	assert.True(t, containsID(Validate(schema), "no_audit_users"))
}

func TestTypeCompatibility(t *testing.T) {
	schema := cleanSchema()
	schema.Engine = model.EnginePostgreSQL
	schema.Tables[0].Columns = append(schema.Tables[0].Columns,
		model.Column{Name: "flags", Type: model.TypeMediumInt})

	diags := Validate(schema)

	var found *Diagnostic
	for i := range diags {
		if diags[i].ID == "type_compat_users_flags" {
			found = &diags[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, SeverityWarning, found.Severity)
	assert.Equal(t, CategoryCompatibility, found.Category)
}

func TestIndexCompatibility(t *testing.T) {
	schema := cleanSchema()
	schema.Engine = model.EngineSQLite
	schema.Tables[1].Indexes[0].Type = model.IndexGIN

	diags := Validate(schema)

	var found *Diagnostic
	for i := range diags {
		if diags[i].ID == "index_compat_orders_idx_orders_user" {
			found = &diags[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, SeverityError, found.Severity)

	// btree and hash are fine on the SQLite family
	schema.Tables[1].Indexes[0].Type = model.IndexHash
	assert.False(t, containsID(Validate(schema), "index_compat_orders_idx_orders_user"))
}

func TestAutoIncrementTypeRule(t *testing.T) {
	schema := cleanSchema()
	schema.Tables[0].Columns = append(schema.Tables[0].Columns,
		model.Column{Name: "code", Type: model.TypeVarchar, Length: 10, AutoIncrement: true})

	diags := Validate(schema)

	var found *Diagnostic
	for i := range diags {
		if diags[i].ID == "auto_increment_users_code" {
			found = &diags[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, SeverityError, found.Severity)
	assert.Equal(t, CategoryStructure, found.Category)
	assert.True(t, found.Fixable)

	// integer-family auto-increment stays clean
	assert.False(t, containsID(Validate(cleanSchema()), "auto_increment_users_id"))
}

func TestRuleFailureIsIsolated(t *testing.T) {
	panicking := rule{
		category: CategoryNaming,
		check:    func(*model.Schema) []Diagnostic { panic("boom") },
	}

	schema := cleanSchema()
	diags := runRule(panicking, &schema)

	require.Len(t, diags, 1)
	assert.Equal(t, "rule_failure_naming", diags[0].ID)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "boom")
}

func TestValidateIsDeterministic(t *testing.T) {
	schema := cleanSchema()
	schema.Tables[0].Columns[1].Length = 0
	schema.Tables[1].Name = "Orders"

	assert.Equal(t, Validate(schema), Validate(schema))
}

func TestDiagnosticsOrderedByCategory(t *testing.T) {
	schema := cleanSchema()
	schema.Engine = model.EngineSQLite
	schema.Tables[0].Columns[1].Length = 0
	schema.Tables[1].Indexes[0].Type = model.IndexGIN

	diags := Validate(schema)

	order := map[Category]int{
		CategoryStructure:     0,
		CategoryNaming:        1,
		CategoryPerformance:   2,
		CategorySecurity:      3,
		CategoryCompatibility: 4,
	}
	for i := 1; i < len(diags); i++ {
		assert.LessOrEqual(t, order[diags[i-1].Category], order[diags[i].Category])
	}
}

func TestReport(t *testing.T) {
	schema := cleanSchema()
	schema.Tables[0].Columns[1].Length = 0

	issues := Validate(schema)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	report := NewReport(&schema, issues, now)

	assert.Equal(t, "shop", report.SchemaMetadata.Name)
	assert.Equal(t, model.EngineMySQL, report.SchemaMetadata.Engine)
	assert.Equal(t, 2, report.SchemaMetadata.TableCount)
	assert.Equal(t, now, report.Timestamp)
	assert.Equal(t, len(issues), report.Stats.Total)
	assert.GreaterOrEqual(t, report.Stats.Errors, 1)
	assert.Equal(t, report.Stats.Total, report.Stats.Errors+report.Stats.Warnings+report.Stats.Info)
}

func TestReportWithNoIssues(t *testing.T) {
	schema := cleanSchema()
	report := NewReport(&schema, nil, time.Now())

	assert.NotNil(t, report.Issues)
	assert.Zero(t, report.Stats.Total)
}

func containsID(diags []Diagnostic, id string) bool {
	for _, d := range diags {
		if d.ID == id {
			return true
		}
	}
	return false
}
