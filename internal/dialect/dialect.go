// Package dialect provides a unified interface for all target SQL dialects.
// It keeps every engine-specific spelling (quoting, type names, autoincrement,
// index methods, comments) behind one interface so the DDL generator stays
// dialect-free.
package dialect

import (
	"fmt"

	"schemaforge/internal/model"
)

// CommentStyle describes how an engine attaches comments to objects.
type CommentStyle int

const (
	// CommentNone means comments can only be emitted as -- lines.
	CommentNone CommentStyle = iota
	// CommentInline means COMMENT 'text' clauses inside definitions.
	CommentInline
	// CommentStatement means separate COMMENT ON statements.
	CommentStatement
)

// Adapter is the per-engine surface consumed by the generator and the
// compatibility rules of the validator.
// NOTE: this interface can be changed later if we need more or less methods.
type Adapter interface {
	Engine() model.Engine

	QuoteIdentifier(name string) string
	QuoteString(value string) string

	// ColumnType renders the native type keyword for a column, including
	// length and any autoincrement-driven type substitution.
	ColumnType(c model.Column) string

	// AutoIncrementClause returns the keyword appended to an autoincrement
	// column definition, or "" when the engine expresses autoincrement
	// through the type itself.
	AutoIncrementClause(t model.ColumnType) string

	SupportsIndexType(t model.IndexType) bool

	// IndexUsingClause returns the USING clause appended after the column
	// list of CREATE INDEX, or "" when the method is the engine default.
	IndexUsingClause(t model.IndexType) string

	// UniqueConstraintClause renders a unique table-constraint definition.
	// quotedColumns is the already-quoted, comma-joined column list; name
	// may be empty for an anonymous constraint.
	UniqueConstraintClause(name, quotedColumns string) string

	// TableSuffix is appended verbatim after the closing parenthesis of a
	// CREATE TABLE statement.
	TableSuffix(s *model.Schema) string

	CommentStyle() CommentStyle
	BooleanLiteral(v bool) string

	// DatabasePreamble returns the statements or comment lines emitted
	// before the first CREATE TABLE when database creation is requested.
	DatabasePreamble(name string, ifNotExists bool) []string

	// DropForeignKeyClause returns the ALTER TABLE tail that drops a named
	// foreign key, or "" when the engine cannot drop foreign keys.
	DropForeignKeyClause(constraintName string) string

	// UnsupportedTypes lists the generic types this engine only emulates.
	UnsupportedTypes() []model.ColumnType

	// UnsupportedIndexTypes lists the index methods this engine lacks.
	UnsupportedIndexTypes() []model.IndexType
}

// ForEngine returns the adapter for the given engine.
func ForEngine(e model.Engine) (Adapter, error) {
	switch e {
	case model.EngineMySQL:
		return &mysqlAdapter{}, nil
	case model.EnginePostgreSQL:
		return &postgresAdapter{}, nil
	case model.EngineSQLite:
		return &sqliteAdapter{}, nil
	default:
		return nil, fmt.Errorf("unsupported engine %q", e)
	}
}
