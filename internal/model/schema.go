// Package model contains the single source of truth for a schema design
// document. It provides a structured representation of tables, columns,
// indexes, constraints, and design-level relationships, independent of any
// target SQL dialect.
package model

import (
	"fmt"
	"strings"
)

// Engine identifies a supported SQL dialect family.
type Engine string

const (
	EngineMySQL      Engine = "mysql"
	EnginePostgreSQL Engine = "postgresql"
	EngineSQLite     Engine = "sqlite"
)

// SupportedEngines returns a slice of all supported engine values.
func SupportedEngines() []Engine {
	return []Engine{
		EngineMySQL,
		EnginePostgreSQL,
		EngineSQLite,
	}
}

// IsValidEngine reports whether e is a recognized engine string.
func IsValidEngine(e string) bool {
	for _, supported := range SupportedEngines() {
		if strings.EqualFold(string(supported), e) {
			return true
		}
	}
	return false
}

// ColumnType is a dialect-neutral column type tag. Adapters map these onto
// the native type keywords of each engine.
type ColumnType string

const (
	TypeInteger   ColumnType = "integer"
	TypeTinyInt   ColumnType = "tinyint"
	TypeSmallInt  ColumnType = "smallint"
	TypeMediumInt ColumnType = "mediumint"
	TypeBigInt    ColumnType = "bigint"
	TypeSerial    ColumnType = "serial"
	TypeVarchar   ColumnType = "varchar"
	TypeChar      ColumnType = "char"
	TypeText      ColumnType = "text"
	TypeBoolean   ColumnType = "boolean"
	TypeDate      ColumnType = "date"
	TypeTime      ColumnType = "time"
	TypeDatetime  ColumnType = "datetime"
	TypeTimestamp ColumnType = "timestamp"
	TypeDecimal   ColumnType = "decimal"
	TypeNumeric   ColumnType = "numeric"
	TypeFloat     ColumnType = "float"
	TypeDouble    ColumnType = "double"
	TypeBlob      ColumnType = "blob"
	TypeJSON      ColumnType = "json"
	TypeUUID      ColumnType = "uuid"
)

// IntegerFamily reports whether the type stores whole numbers. Auto-increment
// is only meaningful on these types.
func (t ColumnType) IntegerFamily() bool {
	switch t {
	case TypeInteger, TypeTinyInt, TypeSmallInt, TypeMediumInt, TypeBigInt, TypeSerial:
		return true
	default:
		return false
	}
}

// TakesLength reports whether the type accepts a length parameter.
func (t ColumnType) TakesLength() bool {
	switch t {
	case TypeVarchar, TypeChar, TypeDecimal, TypeNumeric:
		return true
	default:
		return false
	}
}

// Textual reports whether the type stores character data.
func (t ColumnType) Textual() bool {
	switch t {
	case TypeVarchar, TypeChar, TypeText:
		return true
	default:
		return false
	}
}

// Fractional reports whether the type stores non-integer numbers.
func (t ColumnType) Fractional() bool {
	switch t {
	case TypeDecimal, TypeNumeric, TypeFloat, TypeDouble:
		return true
	default:
		return false
	}
}

// Temporal reports whether the type stores dates or times.
func (t ColumnType) Temporal() bool {
	switch t {
	case TypeDate, TypeTime, TypeDatetime, TypeTimestamp:
		return true
	default:
		return false
	}
}

// IndexType is an ENUM with all possible index access methods.
type IndexType string

const (
	IndexBTree    IndexType = "btree"
	IndexHash     IndexType = "hash"
	IndexGiST     IndexType = "gist"
	IndexGIN      IndexType = "gin"
	IndexFullText IndexType = "fulltext"
	IndexSpatial  IndexType = "spatial"
)

// ConstraintType is an ENUM with all possible constraint types.
type ConstraintType string

const (
	ConstraintPrimary ConstraintType = "primary"
	ConstraintForeign ConstraintType = "foreign"
	ConstraintUnique  ConstraintType = "unique"
	ConstraintCheck   ConstraintType = "check"
)

// RefAction is an ENUM with all referential actions for foreign keys.
type RefAction string

const (
	RefActionNone       RefAction = ""
	RefActionCascade    RefAction = "CASCADE"
	RefActionRestrict   RefAction = "RESTRICT"
	RefActionSetNull    RefAction = "SET NULL"
	RefActionSetDefault RefAction = "SET DEFAULT"
)

// Cardinality is the shape of a design-level relationship.
type Cardinality string

const (
	OneToOne   Cardinality = "one-to-one"
	OneToMany  Cardinality = "one-to-many"
	ManyToMany Cardinality = "many-to-many"
)

// Schema is the root of a schema design document.
type Schema struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Version       string         `json:"version,omitempty"`
	Engine        Engine         `json:"engine"`
	Tables        []Table        `json:"tables"`
	Relationships []Relationship `json:"relationships,omitempty"`
}

// Table represents a table in the design.
// X and Y carry the canvas position; generation and validation ignore them.
type Table struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	X           float64      `json:"x,omitempty"`
	Y           float64      `json:"y,omitempty"`
	Columns     []Column     `json:"columns"`
	Indexes     []Index      `json:"indexes,omitempty"`
	Constraints []Constraint `json:"constraints,omitempty"`
	Comment     string       `json:"comment,omitempty"`
}

// Column represents a single column inside a table.
type Column struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Type          ColumnType `json:"type"`
	Length        int        `json:"length,omitempty"`
	Nullable      bool       `json:"nullable"`
	PrimaryKey    bool       `json:"primaryKey,omitempty"`
	Unique        bool       `json:"unique,omitempty"`
	AutoIncrement bool       `json:"autoIncrement,omitempty"`
	Default       *string    `json:"default,omitempty"`
	Comment       string     `json:"comment,omitempty"`
}

// Index represents a secondary index. Columns reference column names in the
// owning table.
type Index struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Columns []string  `json:"columns"`
	Unique  bool      `json:"unique,omitempty"`
	Type    IndexType `json:"type,omitempty"`
}

// Constraint represents a table constraint. Foreign keys reference the target
// table and columns by name, never by pointer, so tables stay independently
// owned by the schema.
type Constraint struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Type              ConstraintType `json:"type"`
	Columns           []string       `json:"columns,omitempty"`
	ReferencedTable   string         `json:"referencedTable,omitempty"`
	ReferencedColumns []string       `json:"referencedColumns,omitempty"`
	OnUpdate          RefAction      `json:"onUpdate,omitempty"`
	OnDelete          RefAction      `json:"onDelete,omitempty"`
	CheckExpression   string         `json:"checkExpression,omitempty"`
}

// Relationship is a design-level annotation between two table columns. It is
// not a database object and is independent of any matching foreign key.
type Relationship struct {
	ID           string      `json:"id"`
	SourceTable  string      `json:"sourceTable"`
	SourceColumn string      `json:"sourceColumn"`
	TargetTable  string      `json:"targetTable"`
	TargetColumn string      `json:"targetColumn"`
	Cardinality  Cardinality `json:"cardinality"`
	Label        string      `json:"label,omitempty"`
}

// FindTable looks for a table by name. Table names are case-sensitive.
func (s *Schema) FindTable(name string) *Table {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i]
		}
	}
	return nil
}

// TableByID looks for a table by id.
func (s *Schema) TableByID(id string) *Table {
	for i := range s.Tables {
		if s.Tables[i].ID == id {
			return &s.Tables[i]
		}
	}
	return nil
}

// FindColumn looks for a column by name inside a table.
func (t *Table) FindColumn(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// ColumnByID looks for a column by id inside a table.
func (t *Table) ColumnByID(id string) *Column {
	for i := range t.Columns {
		if t.Columns[i].ID == id {
			return &t.Columns[i]
		}
	}
	return nil
}

// IndexByID looks for an index by id inside a table.
func (t *Table) IndexByID(id string) *Index {
	for i := range t.Indexes {
		if t.Indexes[i].ID == id {
			return &t.Indexes[i]
		}
	}
	return nil
}

// ConstraintByID looks for a constraint by id inside a table.
func (t *Table) ConstraintByID(id string) *Constraint {
	for i := range t.Constraints {
		if t.Constraints[i].ID == id {
			return &t.Constraints[i]
		}
	}
	return nil
}

// PrimaryKeyColumns returns the names of all columns flagged as primary key,
// in declared order, merged with the columns of a primary constraint if one
// is declared instead.
func (t *Table) PrimaryKeyColumns() []string {
	var names []string
	for i := range t.Columns {
		if t.Columns[i].PrimaryKey {
			names = append(names, t.Columns[i].Name)
		}
	}
	if len(names) > 0 {
		return names
	}
	for i := range t.Constraints {
		if t.Constraints[i].Type == ConstraintPrimary {
			return append([]string(nil), t.Constraints[i].Columns...)
		}
	}
	return nil
}

// ForeignKeys returns the foreign-key constraints of the table in declared order.
func (t *Table) ForeignKeys() []Constraint {
	var fks []Constraint
	for i := range t.Constraints {
		if t.Constraints[i].Type == ConstraintForeign {
			fks = append(fks, t.Constraints[i].Clone())
		}
	}
	return fks
}

// HasIndexOn reports whether the named column is covered by any index of the
// table, where covered means it appears in the leading position, or is the
// primary key or declared unique.
func (t *Table) HasIndexOn(column string) bool {
	if c := t.FindColumn(column); c != nil && (c.PrimaryKey || c.Unique) {
		return true
	}
	for i := range t.Indexes {
		if len(t.Indexes[i].Columns) > 0 && t.Indexes[i].Columns[0] == column {
			return true
		}
	}
	for i := range t.Constraints {
		c := &t.Constraints[i]
		if c.Type != ConstraintPrimary && c.Type != ConstraintUnique {
			continue
		}
		if len(c.Columns) > 0 && c.Columns[0] == column {
			return true
		}
	}
	return false
}

// String returns a short description of the table.
func (t *Table) String() string {
	return fmt.Sprintf("Table: %s (%d cols, %d indexes, %d constraints)",
		t.Name, len(t.Columns), len(t.Indexes), len(t.Constraints))
}

// Clone returns a deep copy of the schema. Snapshots handed to the generator
// and validator are clones, so callers can keep mutating the model while a
// snapshot is being read.
func (s Schema) Clone() Schema {
	out := s
	out.Tables = make([]Table, len(s.Tables))
	for i := range s.Tables {
		out.Tables[i] = s.Tables[i].Clone()
	}
	out.Relationships = append([]Relationship(nil), s.Relationships...)
	return out
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := t
	out.Columns = make([]Column, len(t.Columns))
	for i := range t.Columns {
		out.Columns[i] = t.Columns[i].Clone()
	}
	out.Indexes = make([]Index, len(t.Indexes))
	for i := range t.Indexes {
		out.Indexes[i] = t.Indexes[i].Clone()
	}
	out.Constraints = make([]Constraint, len(t.Constraints))
	for i := range t.Constraints {
		out.Constraints[i] = t.Constraints[i].Clone()
	}
	return out
}

// Clone returns a deep copy of the column.
func (c Column) Clone() Column {
	out := c
	if c.Default != nil {
		v := *c.Default
		out.Default = &v
	}
	return out
}

// Clone returns a deep copy of the index.
func (i Index) Clone() Index {
	out := i
	out.Columns = append([]string(nil), i.Columns...)
	return out
}

// Clone returns a deep copy of the constraint.
func (c Constraint) Clone() Constraint {
	out := c
	out.Columns = append([]string(nil), c.Columns...)
	out.ReferencedColumns = append([]string(nil), c.ReferencedColumns...)
	return out
}
