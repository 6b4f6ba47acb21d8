package dialect

import (
	"fmt"
	"strings"

	"schemaforge/internal/model"
)

// postgresAdapter targets the PostgreSQL family (PostgreSQL, CockroachDB).
type postgresAdapter struct{}

func (a *postgresAdapter) Engine() model.Engine { return model.EnginePostgreSQL }

func (a *postgresAdapter) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (a *postgresAdapter) QuoteString(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func (a *postgresAdapter) ColumnType(c model.Column) string {
	// Autoincrement is spelled through the serial pseudo-types.
	if c.AutoIncrement && c.Type.IntegerFamily() {
		switch c.Type {
		case model.TypeTinyInt, model.TypeSmallInt:
			return "SMALLSERIAL"
		case model.TypeBigInt, model.TypeSerial:
			return "BIGSERIAL"
		default:
			return "SERIAL"
		}
	}
	switch c.Type {
	case model.TypeInteger, model.TypeMediumInt:
		return "INTEGER"
	case model.TypeTinyInt, model.TypeSmallInt:
		return "SMALLINT"
	case model.TypeBigInt:
		return "BIGINT"
	case model.TypeSerial:
		return "BIGSERIAL"
	case model.TypeVarchar:
		return fmt.Sprintf("VARCHAR(%d)", lengthOr(c.Length, 255))
	case model.TypeChar:
		return fmt.Sprintf("CHAR(%d)", lengthOr(c.Length, 1))
	case model.TypeText:
		return "TEXT"
	case model.TypeBoolean:
		return "BOOLEAN"
	case model.TypeDate:
		return "DATE"
	case model.TypeTime:
		return "TIME"
	case model.TypeDatetime, model.TypeTimestamp:
		return "TIMESTAMP"
	case model.TypeDecimal, model.TypeNumeric:
		if c.Length > 0 {
			return fmt.Sprintf("NUMERIC(%d)", c.Length)
		}
		return "NUMERIC(10,2)"
	case model.TypeFloat:
		return "REAL"
	case model.TypeDouble:
		return "DOUBLE PRECISION"
	case model.TypeBlob:
		return "BYTEA"
	case model.TypeJSON:
		return "JSONB"
	case model.TypeUUID:
		return "UUID"
	default:
		return strings.ToUpper(string(c.Type))
	}
}

func (a *postgresAdapter) AutoIncrementClause(_ model.ColumnType) string {
	return ""
}

func (a *postgresAdapter) SupportsIndexType(t model.IndexType) bool {
	switch t {
	case model.IndexBTree, model.IndexHash, model.IndexGiST, model.IndexGIN, "":
		return true
	default:
		return false
	}
}

func (a *postgresAdapter) IndexUsingClause(t model.IndexType) string {
	switch t {
	case model.IndexHash:
		return "USING HASH"
	case model.IndexGiST:
		return "USING GIST"
	case model.IndexGIN:
		return "USING GIN"
	default:
		return ""
	}
}

func (a *postgresAdapter) UniqueConstraintClause(name, quotedColumns string) string {
	if name != "" {
		return "CONSTRAINT " + a.QuoteIdentifier(name) + " UNIQUE (" + quotedColumns + ")"
	}
	return "UNIQUE (" + quotedColumns + ")"
}

func (a *postgresAdapter) TableSuffix(_ *model.Schema) string { return "" }

func (a *postgresAdapter) CommentStyle() CommentStyle { return CommentStatement }

func (a *postgresAdapter) BooleanLiteral(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

func (a *postgresAdapter) DatabasePreamble(name string, ifNotExists bool) []string {
	lines := []string{}
	if ifNotExists {
		lines = append(lines, "-- PostgreSQL has no CREATE DATABASE IF NOT EXISTS; skip the next statement if the database exists.")
	}
	quoted := a.QuoteIdentifier(name)
	lines = append(lines,
		"CREATE DATABASE "+quoted+";",
		"-- Connect to "+quoted+" before running the rest of this script.",
	)
	return lines
}

func (a *postgresAdapter) DropForeignKeyClause(constraintName string) string {
	return "DROP CONSTRAINT " + a.QuoteIdentifier(constraintName)
}

func (a *postgresAdapter) UnsupportedTypes() []model.ColumnType {
	return []model.ColumnType{
		model.TypeTinyInt,
		model.TypeMediumInt,
		model.TypeDatetime,
		model.TypeDouble,
	}
}

func (a *postgresAdapter) UnsupportedIndexTypes() []model.IndexType {
	return []model.IndexType{
		model.IndexFullText,
		model.IndexSpatial,
	}
}
