package toml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemaforge/internal/model"
)

const sampleDoc = `
[schema]
name = "shop"
engine = "mysql"
version = "1.0"

[[tables]]
name = "users"

[[tables.columns]]
name = "id"
type = "integer"
primary_key = true
auto_increment = true

[[tables.columns]]
name = "email"
type = "varchar"
length = 255
unique = true

[[tables.columns]]
name = "active"
type = "boolean"
default = true

[[tables.indexes]]
name = "uk_email"
columns = ["email"]
unique = true

[[tables]]
name = "orders"

[[tables.columns]]
name = "id"
type = "integer"
primary_key = true

[[tables.columns]]
name = "user_id"
type = "integer"

[[tables.constraints]]
name = "fk_orders_user"
type = "foreign"
columns = ["user_id"]
referenced_table = "users"
referenced_columns = ["id"]
on_delete = "cascade"

[[relationships]]
source = "orders.user_id"
target = "users.id"
cardinality = "one-to-many"
`

func TestParseDocument(t *testing.T) {
	s, err := NewParser().Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, "shop", s.Name)
	assert.Equal(t, model.EngineMySQL, s.Engine)
	assert.Equal(t, "1.0", s.Version)
	require.Len(t, s.Tables, 2)

	users := s.Tables[0]
	require.Len(t, users.Columns, 3)
	assert.True(t, users.Columns[0].PrimaryKey)
	assert.True(t, users.Columns[0].AutoIncrement)
	assert.Equal(t, model.TypeVarchar, users.Columns[1].Type)
	assert.Equal(t, 255, users.Columns[1].Length)
	require.NotNil(t, users.Columns[2].Default)
	assert.Equal(t, "true", *users.Columns[2].Default)
	require.Len(t, users.Indexes, 1)
	assert.True(t, users.Indexes[0].Unique)

	orders := s.Tables[1]
	require.Len(t, orders.Constraints, 1)
	fk := orders.Constraints[0]
	assert.Equal(t, model.ConstraintForeign, fk.Type)
	assert.Equal(t, "users", fk.ReferencedTable)
	assert.Equal(t, model.RefActionCascade, fk.OnDelete)

	require.Len(t, s.Relationships, 1)
	rel := s.Relationships[0]
	assert.Equal(t, "orders", rel.SourceTable)
	assert.Equal(t, "user_id", rel.SourceColumn)
	assert.Equal(t, model.OneToMany, rel.Cardinality)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "unknown engine",
			doc:  "[schema]\nname = \"x\"\nengine = \"oracle\"\n",
			want: "unsupported engine",
		},
		{
			name: "duplicate table",
			doc: "[schema]\nengine = \"sqlite\"\n" +
				"[[tables]]\nname = \"a\"\n[[tables]]\nname = \"a\"\n",
			want: "duplicate table name",
		},
		{
			name: "duplicate column",
			doc: "[schema]\nengine = \"sqlite\"\n[[tables]]\nname = \"a\"\n" +
				"[[tables.columns]]\nname = \"x\"\ntype = \"text\"\n" +
				"[[tables.columns]]\nname = \"x\"\ntype = \"text\"\n",
			want: "duplicate column name",
		},
		{
			name: "missing column type",
			doc: "[schema]\nengine = \"sqlite\"\n[[tables]]\nname = \"a\"\n" +
				"[[tables.columns]]\nname = \"x\"\n",
			want: "missing type",
		},
		{
			name: "unknown constraint type",
			doc: "[schema]\nengine = \"sqlite\"\n[[tables]]\nname = \"a\"\n" +
				"[[tables.constraints]]\ntype = \"banana\"\n",
			want: "unknown constraint type",
		},
		{
			name: "foreign key without target",
			doc: "[schema]\nengine = \"sqlite\"\n[[tables]]\nname = \"a\"\n" +
				"[[tables.constraints]]\ntype = \"foreign\"\ncolumns = [\"x\"]\n",
			want: "referenced_table",
		},
		{
			name: "bad referential action",
			doc: "[schema]\nengine = \"sqlite\"\n[[tables]]\nname = \"a\"\n" +
				"[[tables.constraints]]\ntype = \"foreign\"\nreferenced_table = \"b\"\non_delete = \"oops\"\n",
			want: "unknown referential action",
		},
		{
			name: "bad relationship reference",
			doc: "[schema]\nengine = \"sqlite\"\n" +
				"[[relationships]]\nsource = \"nodot\"\ntarget = \"a.b\"\ncardinality = \"one-to-one\"\n",
			want: "expected \"table.column\"",
		},
		{
			name: "bad cardinality",
			doc: "[schema]\nengine = \"sqlite\"\n" +
				"[[relationships]]\nsource = \"a.b\"\ntarget = \"c.d\"\ncardinality = \"sideways\"\n",
			want: "unknown cardinality",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	original, err := NewParser().Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	data, err := Marshal(original)
	require.NoError(t, err)

	reparsed, err := NewParser().Parse(strings.NewReader(string(data)))
	require.NoError(t, err)

	assert.Equal(t, original, reparsed)
}
