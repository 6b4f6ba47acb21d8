package dialect

import (
	"fmt"
	"strings"

	"schemaforge/internal/model"
)

// sqliteAdapter targets SQLite. Types map onto SQLite's affinity system and
// several features (database creation, FK drops, inline comments) have no
// statement form at all.
type sqliteAdapter struct{}

func (a *sqliteAdapter) Engine() model.Engine { return model.EngineSQLite }

func (a *sqliteAdapter) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (a *sqliteAdapter) QuoteString(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func (a *sqliteAdapter) ColumnType(c model.Column) string {
	// AUTOINCREMENT is only legal on a column typed exactly INTEGER.
	if c.AutoIncrement && c.Type.IntegerFamily() {
		return "INTEGER"
	}
	switch c.Type {
	case model.TypeInteger, model.TypeTinyInt, model.TypeSmallInt,
		model.TypeMediumInt, model.TypeBigInt, model.TypeSerial:
		return "INTEGER"
	case model.TypeVarchar:
		return fmt.Sprintf("VARCHAR(%d)", lengthOr(c.Length, 255))
	case model.TypeChar:
		return fmt.Sprintf("CHAR(%d)", lengthOr(c.Length, 1))
	case model.TypeText, model.TypeJSON, model.TypeUUID:
		return "TEXT"
	case model.TypeBoolean:
		return "BOOLEAN"
	case model.TypeDate:
		return "DATE"
	case model.TypeTime:
		return "TIME"
	case model.TypeDatetime, model.TypeTimestamp:
		return "DATETIME"
	case model.TypeDecimal, model.TypeNumeric:
		return "NUMERIC"
	case model.TypeFloat, model.TypeDouble:
		return "REAL"
	case model.TypeBlob:
		return "BLOB"
	default:
		return strings.ToUpper(string(c.Type))
	}
}

func (a *sqliteAdapter) AutoIncrementClause(t model.ColumnType) string {
	if t.IntegerFamily() {
		return "AUTOINCREMENT"
	}
	return ""
}

func (a *sqliteAdapter) SupportsIndexType(t model.IndexType) bool {
	switch t {
	case model.IndexBTree, model.IndexHash, "":
		return true
	default:
		return false
	}
}

// IndexUsingClause is always empty: SQLite picks the access method itself.
func (a *sqliteAdapter) IndexUsingClause(_ model.IndexType) string {
	return ""
}

func (a *sqliteAdapter) UniqueConstraintClause(name, quotedColumns string) string {
	if name != "" {
		return "CONSTRAINT " + a.QuoteIdentifier(name) + " UNIQUE (" + quotedColumns + ")"
	}
	return "UNIQUE (" + quotedColumns + ")"
}

func (a *sqliteAdapter) TableSuffix(_ *model.Schema) string { return "" }

func (a *sqliteAdapter) CommentStyle() CommentStyle { return CommentNone }

func (a *sqliteAdapter) BooleanLiteral(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func (a *sqliteAdapter) DatabasePreamble(name string, _ bool) []string {
	return []string{
		"-- SQLite stores each database in a file; open " + name + ".db instead of creating a database.",
	}
}

func (a *sqliteAdapter) DropForeignKeyClause(_ string) string {
	return ""
}

func (a *sqliteAdapter) UnsupportedTypes() []model.ColumnType {
	return []model.ColumnType{
		model.TypeSerial,
		model.TypeJSON,
		model.TypeUUID,
	}
}

func (a *sqliteAdapter) UnsupportedIndexTypes() []model.IndexType {
	return []model.IndexType{
		model.IndexGiST,
		model.IndexGIN,
		model.IndexFullText,
		model.IndexSpatial,
	}
}
