package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemaforge/internal/model"
)

func TestParseCreateTable(t *testing.T) {
	dump := `
CREATE DATABASE shop;
CREATE TABLE users (
  id INT NOT NULL AUTO_INCREMENT,
  email VARCHAR(255) NOT NULL UNIQUE,
  active TINYINT(1) NOT NULL DEFAULT 1,
  bio TEXT COMMENT 'profile text',
  balance DECIMAL(10,2),
  PRIMARY KEY (id),
  KEY idx_users_email (email)
) ENGINE=InnoDB COMMENT='registered users';
`

	schema, err := NewParser().Parse(dump)
	require.NoError(t, err)

	assert.Equal(t, "shop", schema.Name)
	assert.Equal(t, model.EngineMySQL, schema.Engine)
	require.Len(t, schema.Tables, 1)

	users := schema.Tables[0]
	assert.Equal(t, "users", users.Name)
	assert.Equal(t, "registered users", users.Comment)
	require.Len(t, users.Columns, 5)

	id := users.Columns[0]
	assert.Equal(t, model.TypeInteger, id.Type)
	assert.False(t, id.Nullable)
	assert.True(t, id.AutoIncrement)
	assert.True(t, id.PrimaryKey, "table-level primary key sets the column flag")

	email := users.Columns[1]
	assert.Equal(t, model.TypeVarchar, email.Type)
	assert.Equal(t, 255, email.Length)
	assert.True(t, email.Unique)

	active := users.Columns[2]
	assert.Equal(t, model.TypeBoolean, active.Type, "tinyint(1) maps to boolean")
	require.NotNil(t, active.Default)
	assert.Equal(t, "1", *active.Default)

	bio := users.Columns[3]
	assert.Equal(t, model.TypeText, bio.Type)
	assert.True(t, bio.Nullable)
	assert.Equal(t, "profile text", bio.Comment)

	assert.Equal(t, model.TypeDecimal, users.Columns[4].Type)

	require.Len(t, users.Indexes, 1)
	assert.Equal(t, "idx_users_email", users.Indexes[0].Name)
	assert.Equal(t, []string{"email"}, users.Indexes[0].Columns)
}

func TestParseForeignKeys(t *testing.T) {
	dump := `
CREATE TABLE orders (
  id BIGINT NOT NULL AUTO_INCREMENT,
  user_id INT NOT NULL,
  PRIMARY KEY (id),
  CONSTRAINT fk_orders_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE ON UPDATE RESTRICT
);
`

	schema, err := NewParser().Parse(dump)
	require.NoError(t, err)
	require.Len(t, schema.Tables, 1)

	orders := schema.Tables[0]
	require.Len(t, orders.Constraints, 1)

	fk := orders.Constraints[0]
	assert.Equal(t, model.ConstraintForeign, fk.Type)
	assert.Equal(t, "fk_orders_user", fk.Name)
	assert.Equal(t, []string{"user_id"}, fk.Columns)
	assert.Equal(t, "users", fk.ReferencedTable)
	assert.Equal(t, []string{"id"}, fk.ReferencedColumns)
	assert.Equal(t, model.RefActionCascade, fk.OnDelete)
	assert.Equal(t, model.RefActionRestrict, fk.OnUpdate)
}

func TestParseIgnoresOtherStatements(t *testing.T) {
	dump := `
SET NAMES utf8mb4;
CREATE TABLE t (id INT PRIMARY KEY);
INSERT INTO t VALUES (1);
`

	schema, err := NewParser().Parse(dump)
	require.NoError(t, err)
	require.Len(t, schema.Tables, 1)
	assert.True(t, schema.Tables[0].Columns[0].PrimaryKey)
}

func TestParseInvalidSQL(t *testing.T) {
	_, err := NewParser().Parse("CREATE TABEL broken (")
	assert.Error(t, err)
}

func TestMapColumnType(t *testing.T) {
	tests := []struct {
		raw      string
		expected model.ColumnType
		length   int
	}{
		{"varchar(50)", model.TypeVarchar, 50},
		{"char(36)", model.TypeUUID, 0},
		{"char(2)", model.TypeChar, 2},
		{"tinyint(1)", model.TypeBoolean, 0},
		{"tinyint(4)", model.TypeTinyInt, 0},
		{"bigint(20)", model.TypeBigInt, 0},
		{"decimal(10,2)", model.TypeDecimal, 10},
		{"double", model.TypeDouble, 0},
		{"longtext", model.TypeText, 0},
		{"enum('a','b')", model.TypeText, 0},
		{"json", model.TypeJSON, 0},
		{"mediumblob", model.TypeBlob, 0},
		{"timestamp", model.TypeTimestamp, 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			typ, length := mapColumnType(tt.raw)
			assert.Equal(t, tt.expected, typ)
			assert.Equal(t, tt.length, length)
		})
	}
}
