package dialect

import (
	"fmt"
	"strings"

	"schemaforge/internal/model"
)

// mysqlAdapter targets the MySQL family (MySQL, MariaDB, TiDB).
type mysqlAdapter struct{}

func (a *mysqlAdapter) Engine() model.Engine { return model.EngineMySQL }

func (a *mysqlAdapter) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (a *mysqlAdapter) QuoteString(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "'", "''")
	return "'" + escaped + "'"
}

func (a *mysqlAdapter) ColumnType(c model.Column) string {
	switch c.Type {
	case model.TypeInteger:
		return "INT"
	case model.TypeTinyInt:
		return "TINYINT"
	case model.TypeSmallInt:
		return "SMALLINT"
	case model.TypeMediumInt:
		return "MEDIUMINT"
	case model.TypeBigInt, model.TypeSerial:
		// serial is emulated as BIGINT plus AUTO_INCREMENT.
		return "BIGINT"
	case model.TypeVarchar:
		return fmt.Sprintf("VARCHAR(%d)", lengthOr(c.Length, 255))
	case model.TypeChar:
		return fmt.Sprintf("CHAR(%d)", lengthOr(c.Length, 1))
	case model.TypeText:
		return "TEXT"
	case model.TypeBoolean:
		return "TINYINT(1)"
	case model.TypeDate:
		return "DATE"
	case model.TypeTime:
		return "TIME"
	case model.TypeDatetime:
		return "DATETIME"
	case model.TypeTimestamp:
		return "TIMESTAMP"
	case model.TypeDecimal, model.TypeNumeric:
		if c.Length > 0 {
			return fmt.Sprintf("DECIMAL(%d)", c.Length)
		}
		return "DECIMAL(10,2)"
	case model.TypeFloat:
		return "FLOAT"
	case model.TypeDouble:
		return "DOUBLE"
	case model.TypeBlob:
		return "BLOB"
	case model.TypeJSON:
		return "JSON"
	case model.TypeUUID:
		return "CHAR(36)"
	default:
		return strings.ToUpper(string(c.Type))
	}
}

func (a *mysqlAdapter) AutoIncrementClause(t model.ColumnType) string {
	if t.IntegerFamily() {
		return "AUTO_INCREMENT"
	}
	return ""
}

func (a *mysqlAdapter) SupportsIndexType(t model.IndexType) bool {
	switch t {
	case model.IndexBTree, model.IndexHash, "":
		return true
	default:
		return false
	}
}

func (a *mysqlAdapter) IndexUsingClause(t model.IndexType) string {
	if t == model.IndexHash {
		return "USING HASH"
	}
	return ""
}

func (a *mysqlAdapter) UniqueConstraintClause(name, quotedColumns string) string {
	if name != "" {
		return "UNIQUE KEY " + a.QuoteIdentifier(name) + " (" + quotedColumns + ")"
	}
	return "UNIQUE KEY (" + quotedColumns + ")"
}

func (a *mysqlAdapter) TableSuffix(_ *model.Schema) string {
	return " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"
}

func (a *mysqlAdapter) CommentStyle() CommentStyle { return CommentInline }

func (a *mysqlAdapter) BooleanLiteral(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func (a *mysqlAdapter) DatabasePreamble(name string, ifNotExists bool) []string {
	create := "CREATE DATABASE "
	if ifNotExists {
		create += "IF NOT EXISTS "
	}
	quoted := a.QuoteIdentifier(name)
	return []string{
		create + quoted + ";",
		"USE " + quoted + ";",
	}
}

func (a *mysqlAdapter) DropForeignKeyClause(constraintName string) string {
	return "DROP FOREIGN KEY " + a.QuoteIdentifier(constraintName)
}

func (a *mysqlAdapter) UnsupportedTypes() []model.ColumnType {
	return []model.ColumnType{
		model.TypeSerial,
		model.TypeBoolean,
		model.TypeUUID,
	}
}

func (a *mysqlAdapter) UnsupportedIndexTypes() []model.IndexType {
	return []model.IndexType{
		model.IndexGiST,
		model.IndexGIN,
		model.IndexFullText,
		model.IndexSpatial,
	}
}

func lengthOr(length, fallback int) int {
	if length > 0 {
		return length
	}
	return fallback
}
