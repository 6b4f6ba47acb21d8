package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemaforge/internal/model"
)

func TestForEngine(t *testing.T) {
	for _, engine := range model.SupportedEngines() {
		a, err := ForEngine(engine)
		require.NoError(t, err)
		assert.Equal(t, engine, a.Engine())
	}

	_, err := ForEngine("oracle")
	assert.Error(t, err)
}

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		engine   model.Engine
		name     string
		expected string
	}{
		{model.EngineMySQL, "users", "`users`"},
		{model.EngineMySQL, "wei`rd", "`wei``rd`"},
		{model.EnginePostgreSQL, "users", `"users"`},
		{model.EnginePostgreSQL, `wei"rd`, `"wei""rd"`},
		{model.EngineSQLite, "users", `"users"`},
	}

	for _, tt := range tests {
		a, err := ForEngine(tt.engine)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, a.QuoteIdentifier(tt.name))
	}
}

func TestQuoteString(t *testing.T) {
	mysql, _ := ForEngine(model.EngineMySQL)
	pg, _ := ForEngine(model.EnginePostgreSQL)

	assert.Equal(t, `'it''s'`, mysql.QuoteString("it's"))
	assert.Equal(t, `'a\\b'`, mysql.QuoteString(`a\b`))
	assert.Equal(t, `'it''s'`, pg.QuoteString("it's"))
}

func TestMySQLColumnTypes(t *testing.T) {
	a, _ := ForEngine(model.EngineMySQL)

	tests := []struct {
		name     string
		column   model.Column
		expected string
	}{
		{"varchar with length", model.Column{Type: model.TypeVarchar, Length: 50}, "VARCHAR(50)"},
		{"varchar default length", model.Column{Type: model.TypeVarchar}, "VARCHAR(255)"},
		{"boolean is emulated", model.Column{Type: model.TypeBoolean}, "TINYINT(1)"},
		{"serial is emulated", model.Column{Type: model.TypeSerial}, "BIGINT"},
		{"uuid is emulated", model.Column{Type: model.TypeUUID}, "CHAR(36)"},
		{"json", model.Column{Type: model.TypeJSON}, "JSON"},
		{"decimal default", model.Column{Type: model.TypeDecimal}, "DECIMAL(10,2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, a.ColumnType(tt.column))
		})
	}

	assert.Equal(t, "AUTO_INCREMENT", a.AutoIncrementClause(model.TypeInteger))
	assert.Empty(t, a.AutoIncrementClause(model.TypeVarchar))
}

func TestPostgresColumnTypes(t *testing.T) {
	a, _ := ForEngine(model.EnginePostgreSQL)

	tests := []struct {
		name     string
		column   model.Column
		expected string
	}{
		{"integer autoincrement becomes serial", model.Column{Type: model.TypeInteger, AutoIncrement: true}, "SERIAL"},
		{"bigint autoincrement becomes bigserial", model.Column{Type: model.TypeBigInt, AutoIncrement: true}, "BIGSERIAL"},
		{"smallint autoincrement becomes smallserial", model.Column{Type: model.TypeSmallInt, AutoIncrement: true}, "SMALLSERIAL"},
		{"tinyint nearest equivalent", model.Column{Type: model.TypeTinyInt}, "SMALLINT"},
		{"double precision", model.Column{Type: model.TypeDouble}, "DOUBLE PRECISION"},
		{"blob becomes bytea", model.Column{Type: model.TypeBlob}, "BYTEA"},
		{"json becomes jsonb", model.Column{Type: model.TypeJSON}, "JSONB"},
		{"native uuid", model.Column{Type: model.TypeUUID}, "UUID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, a.ColumnType(tt.column))
		})
	}

	// serial types carry the autoincrement, no separate clause
	assert.Empty(t, a.AutoIncrementClause(model.TypeInteger))
}

func TestSQLiteColumnTypes(t *testing.T) {
	a, _ := ForEngine(model.EngineSQLite)

	// AUTOINCREMENT requires the exact INTEGER type
	assert.Equal(t, "INTEGER", a.ColumnType(model.Column{Type: model.TypeBigInt, AutoIncrement: true}))
	assert.Equal(t, "INTEGER", a.ColumnType(model.Column{Type: model.TypeBigInt}))
	assert.Equal(t, "TEXT", a.ColumnType(model.Column{Type: model.TypeJSON}))
	assert.Equal(t, "AUTOINCREMENT", a.AutoIncrementClause(model.TypeInteger))
}

func TestIndexSupport(t *testing.T) {
	mysql, _ := ForEngine(model.EngineMySQL)
	pg, _ := ForEngine(model.EnginePostgreSQL)
	sqlite, _ := ForEngine(model.EngineSQLite)

	// the MySQL and SQLite families carry only btree and hash
	assert.True(t, mysql.SupportsIndexType(model.IndexHash))
	assert.False(t, mysql.SupportsIndexType(model.IndexFullText))
	assert.False(t, mysql.SupportsIndexType(model.IndexGIN))
	assert.True(t, sqlite.SupportsIndexType(model.IndexBTree))
	assert.True(t, sqlite.SupportsIndexType(model.IndexHash))
	assert.False(t, sqlite.SupportsIndexType(model.IndexGiST))
	assert.True(t, pg.SupportsIndexType(model.IndexGIN))
	assert.False(t, pg.SupportsIndexType(model.IndexSpatial))

	assert.Equal(t, "USING HASH", mysql.IndexUsingClause(model.IndexHash))
	assert.Equal(t, "USING GIN", pg.IndexUsingClause(model.IndexGIN))
	assert.Empty(t, sqlite.IndexUsingClause(model.IndexHash))
}

func TestUniqueConstraintClause(t *testing.T) {
	mysql, _ := ForEngine(model.EngineMySQL)
	pg, _ := ForEngine(model.EnginePostgreSQL)
	sqlite, _ := ForEngine(model.EngineSQLite)

	assert.Equal(t, "UNIQUE KEY `uk_email` (`email`)", mysql.UniqueConstraintClause("uk_email", "`email`"))
	assert.Equal(t, "UNIQUE KEY (`email`)", mysql.UniqueConstraintClause("", "`email`"))
	assert.Equal(t, `CONSTRAINT "uk_email" UNIQUE ("email")`, pg.UniqueConstraintClause("uk_email", `"email"`))
	assert.Equal(t, `UNIQUE ("email")`, pg.UniqueConstraintClause("", `"email"`))
	assert.Equal(t, `CONSTRAINT "uk_email" UNIQUE ("email")`, sqlite.UniqueConstraintClause("uk_email", `"email"`))
}

func TestBooleanLiterals(t *testing.T) {
	mysql, _ := ForEngine(model.EngineMySQL)
	pg, _ := ForEngine(model.EnginePostgreSQL)

	assert.Equal(t, "1", mysql.BooleanLiteral(true))
	assert.Equal(t, "0", mysql.BooleanLiteral(false))
	assert.Equal(t, "TRUE", pg.BooleanLiteral(true))
	assert.Equal(t, "FALSE", pg.BooleanLiteral(false))
}

func TestDatabasePreamble(t *testing.T) {
	mysql, _ := ForEngine(model.EngineMySQL)
	sqlite, _ := ForEngine(model.EngineSQLite)

	lines := mysql.DatabasePreamble("shop", true)
	require.Len(t, lines, 2)
	assert.Equal(t, "CREATE DATABASE IF NOT EXISTS `shop`;", lines[0])
	assert.Equal(t, "USE `shop`;", lines[1])

	lines = sqlite.DatabasePreamble("shop", false)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "--")
}

func TestDropForeignKeyClause(t *testing.T) {
	mysql, _ := ForEngine(model.EngineMySQL)
	pg, _ := ForEngine(model.EnginePostgreSQL)
	sqlite, _ := ForEngine(model.EngineSQLite)

	assert.Equal(t, "DROP FOREIGN KEY `fk_a`", mysql.DropForeignKeyClause("fk_a"))
	assert.Equal(t, `DROP CONSTRAINT "fk_a"`, pg.DropForeignKeyClause("fk_a"))
	assert.Empty(t, sqlite.DropForeignKeyClause("fk_a"))
}
