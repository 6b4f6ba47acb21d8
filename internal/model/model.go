package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a mutation targets an id that does not exist.
// Surfacing this instead of silently ignoring the call makes programming
// errors visible at the call site.
var ErrNotFound = errors.New("not found")

// ErrDuplicateName is returned when a mutation would violate the unique-name
// invariant of tables within a schema or columns within a table.
var ErrDuplicateName = errors.New("duplicate name")

// Model owns a schema design document and exposes its mutation operations.
// The surrounding UI is the only caller of the mutation API; the generator
// and validator consume read-only snapshots.
type Model struct {
	schema Schema
}

// New wraps an existing schema in a model. Entities without ids get one.
func New(s Schema) *Model {
	assignIDs(&s)
	return &Model{schema: s}
}

// NewSchema creates an empty schema document for the given engine.
func NewSchema(name string, engine Engine) Schema {
	return Schema{
		ID:     uuid.NewString(),
		Name:   name,
		Engine: engine,
	}
}

// Snapshot returns a deep copy of the current schema, safe to hand to the
// generator or validator while mutations continue.
func (m *Model) Snapshot() Schema {
	return m.schema.Clone()
}

func assignIDs(s *Schema) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	for i := range s.Tables {
		t := &s.Tables[i]
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		for j := range t.Columns {
			if t.Columns[j].ID == "" {
				t.Columns[j].ID = uuid.NewString()
			}
		}
		for j := range t.Indexes {
			if t.Indexes[j].ID == "" {
				t.Indexes[j].ID = uuid.NewString()
			}
		}
		for j := range t.Constraints {
			if t.Constraints[j].ID == "" {
				t.Constraints[j].ID = uuid.NewString()
			}
		}
	}
	for i := range s.Relationships {
		if s.Relationships[i].ID == "" {
			s.Relationships[i].ID = uuid.NewString()
		}
	}
}

// TablePatch carries the updatable table fields. Nil fields are unchanged.
type TablePatch struct {
	Name    *string
	X       *float64
	Y       *float64
	Comment *string
}

// ColumnPatch carries the updatable column fields. Nil fields are unchanged;
// ClearDefault removes the default value regardless of Default.
type ColumnPatch struct {
	Name          *string
	Type          *ColumnType
	Length        *int
	Nullable      *bool
	PrimaryKey    *bool
	Unique        *bool
	AutoIncrement *bool
	Default       *string
	ClearDefault  bool
	Comment       *string
}

// IndexPatch carries the updatable index fields. A nil Columns slice is
// unchanged; an empty non-nil slice clears the column list.
type IndexPatch struct {
	Name    *string
	Columns []string
	Unique  *bool
	Type    *IndexType
}

// ConstraintPatch carries the updatable constraint fields.
type ConstraintPatch struct {
	Name              *string
	Columns           []string
	ReferencedTable   *string
	ReferencedColumns []string
	OnUpdate          *RefAction
	OnDelete          *RefAction
	CheckExpression   *string
}

// RelationshipPatch carries the updatable relationship fields.
type RelationshipPatch struct {
	SourceTable  *string
	SourceColumn *string
	TargetTable  *string
	TargetColumn *string
	Cardinality  *Cardinality
	Label        *string
}

// AddTable appends a table to the schema. An empty id is assigned a fresh
// UUID. Adding a table whose name is already taken fails with ErrDuplicateName.
func (m *Model) AddTable(t Table) (Table, error) {
	if m.schema.FindTable(t.Name) != nil {
		return Table{}, fmt.Errorf("table %q: %w", t.Name, ErrDuplicateName)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	for i := range t.Columns {
		if t.Columns[i].ID == "" {
			t.Columns[i].ID = uuid.NewString()
		}
	}
	for i := range t.Indexes {
		if t.Indexes[i].ID == "" {
			t.Indexes[i].ID = uuid.NewString()
		}
	}
	for i := range t.Constraints {
		if t.Constraints[i].ID == "" {
			t.Constraints[i].ID = uuid.NewString()
		}
	}
	m.schema.Tables = append(m.schema.Tables, t.Clone())
	return t, nil
}

// UpdateTable applies a patch to the table with the given id. A rename also
// rewrites relationships and foreign keys referencing the old name, so the
// by-name references never dangle after a rename.
func (m *Model) UpdateTable(id string, patch TablePatch) (Table, error) {
	t := m.schema.TableByID(id)
	if t == nil {
		return Table{}, fmt.Errorf("table %q: %w", id, ErrNotFound)
	}
	if patch.Name != nil && *patch.Name != t.Name {
		if m.schema.FindTable(*patch.Name) != nil {
			return Table{}, fmt.Errorf("table %q: %w", *patch.Name, ErrDuplicateName)
		}
		m.renameTableRefs(t.Name, *patch.Name)
		t.Name = *patch.Name
	}
	if patch.X != nil {
		t.X = *patch.X
	}
	if patch.Y != nil {
		t.Y = *patch.Y
	}
	if patch.Comment != nil {
		t.Comment = *patch.Comment
	}
	return t.Clone(), nil
}

// DeleteTable removes the table with the given id and cascade-deletes every
// relationship referencing it by name. Foreign keys in other tables that
// reference the deleted table are left in place for the validator to flag.
func (m *Model) DeleteTable(id string) error {
	t := m.schema.TableByID(id)
	if t == nil {
		return fmt.Errorf("table %q: %w", id, ErrNotFound)
	}
	name := t.Name

	tables := m.schema.Tables[:0]
	for i := range m.schema.Tables {
		if m.schema.Tables[i].ID != id {
			tables = append(tables, m.schema.Tables[i])
		}
	}
	m.schema.Tables = tables

	rels := m.schema.Relationships[:0]
	for i := range m.schema.Relationships {
		r := &m.schema.Relationships[i]
		if r.SourceTable != name && r.TargetTable != name {
			rels = append(rels, *r)
		}
	}
	m.schema.Relationships = rels
	return nil
}

func (m *Model) renameTableRefs(oldName, newName string) {
	for i := range m.schema.Relationships {
		r := &m.schema.Relationships[i]
		if r.SourceTable == oldName {
			r.SourceTable = newName
		}
		if r.TargetTable == oldName {
			r.TargetTable = newName
		}
	}
	for i := range m.schema.Tables {
		t := &m.schema.Tables[i]
		for j := range t.Constraints {
			if t.Constraints[j].ReferencedTable == oldName {
				t.Constraints[j].ReferencedTable = newName
			}
		}
	}
}

// AddColumn appends a column to the table with the given id.
func (m *Model) AddColumn(tableID string, c Column) (Column, error) {
	t := m.schema.TableByID(tableID)
	if t == nil {
		return Column{}, fmt.Errorf("table %q: %w", tableID, ErrNotFound)
	}
	if t.FindColumn(c.Name) != nil {
		return Column{}, fmt.Errorf("column %q: %w", c.Name, ErrDuplicateName)
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	t.Columns = append(t.Columns, c.Clone())
	return c, nil
}

// UpdateColumn applies a patch to a column. A rename rewrites index and
// constraint column lists in the owning table plus relationships referencing
// the column.
func (m *Model) UpdateColumn(tableID, columnID string, patch ColumnPatch) (Column, error) {
	t := m.schema.TableByID(tableID)
	if t == nil {
		return Column{}, fmt.Errorf("table %q: %w", tableID, ErrNotFound)
	}
	c := t.ColumnByID(columnID)
	if c == nil {
		return Column{}, fmt.Errorf("column %q: %w", columnID, ErrNotFound)
	}
	if patch.Name != nil && *patch.Name != c.Name {
		if t.FindColumn(*patch.Name) != nil {
			return Column{}, fmt.Errorf("column %q: %w", *patch.Name, ErrDuplicateName)
		}
		m.renameColumnRefs(t, c.Name, *patch.Name)
		c.Name = *patch.Name
	}
	if patch.Type != nil {
		c.Type = *patch.Type
	}
	if patch.Length != nil {
		c.Length = *patch.Length
	}
	if patch.Nullable != nil {
		c.Nullable = *patch.Nullable
	}
	if patch.PrimaryKey != nil {
		c.PrimaryKey = *patch.PrimaryKey
	}
	if patch.Unique != nil {
		c.Unique = *patch.Unique
	}
	if patch.AutoIncrement != nil {
		c.AutoIncrement = *patch.AutoIncrement
	}
	if patch.ClearDefault {
		c.Default = nil
	} else if patch.Default != nil {
		v := *patch.Default
		c.Default = &v
	}
	if patch.Comment != nil {
		c.Comment = *patch.Comment
	}
	return c.Clone(), nil
}

// DeleteColumn removes a column. References from indexes, constraints, and
// relationships are deliberately left dangling for the validator to flag.
func (m *Model) DeleteColumn(tableID, columnID string) error {
	t := m.schema.TableByID(tableID)
	if t == nil {
		return fmt.Errorf("table %q: %w", tableID, ErrNotFound)
	}
	if t.ColumnByID(columnID) == nil {
		return fmt.Errorf("column %q: %w", columnID, ErrNotFound)
	}
	cols := t.Columns[:0]
	for i := range t.Columns {
		if t.Columns[i].ID != columnID {
			cols = append(cols, t.Columns[i])
		}
	}
	t.Columns = cols
	return nil
}

func (m *Model) renameColumnRefs(t *Table, oldName, newName string) {
	for i := range t.Indexes {
		renameInList(t.Indexes[i].Columns, oldName, newName)
	}
	for i := range t.Constraints {
		renameInList(t.Constraints[i].Columns, oldName, newName)
	}
	for i := range m.schema.Tables {
		other := &m.schema.Tables[i]
		for j := range other.Constraints {
			c := &other.Constraints[j]
			if c.Type == ConstraintForeign && c.ReferencedTable == t.Name {
				renameInList(c.ReferencedColumns, oldName, newName)
			}
		}
	}
	for i := range m.schema.Relationships {
		r := &m.schema.Relationships[i]
		if r.SourceTable == t.Name && r.SourceColumn == oldName {
			r.SourceColumn = newName
		}
		if r.TargetTable == t.Name && r.TargetColumn == oldName {
			r.TargetColumn = newName
		}
	}
}

func renameInList(names []string, oldName, newName string) {
	for i := range names {
		if names[i] == oldName {
			names[i] = newName
		}
	}
}

// AddIndex appends an index to the table with the given id.
func (m *Model) AddIndex(tableID string, idx Index) (Index, error) {
	t := m.schema.TableByID(tableID)
	if t == nil {
		return Index{}, fmt.Errorf("table %q: %w", tableID, ErrNotFound)
	}
	if idx.ID == "" {
		idx.ID = uuid.NewString()
	}
	t.Indexes = append(t.Indexes, idx.Clone())
	return idx, nil
}

// UpdateIndex applies a patch to an index.
func (m *Model) UpdateIndex(tableID, indexID string, patch IndexPatch) (Index, error) {
	t := m.schema.TableByID(tableID)
	if t == nil {
		return Index{}, fmt.Errorf("table %q: %w", tableID, ErrNotFound)
	}
	idx := t.IndexByID(indexID)
	if idx == nil {
		return Index{}, fmt.Errorf("index %q: %w", indexID, ErrNotFound)
	}
	if patch.Name != nil {
		idx.Name = *patch.Name
	}
	if patch.Columns != nil {
		idx.Columns = append([]string(nil), patch.Columns...)
	}
	if patch.Unique != nil {
		idx.Unique = *patch.Unique
	}
	if patch.Type != nil {
		idx.Type = *patch.Type
	}
	return idx.Clone(), nil
}

// DeleteIndex removes an index.
func (m *Model) DeleteIndex(tableID, indexID string) error {
	t := m.schema.TableByID(tableID)
	if t == nil {
		return fmt.Errorf("table %q: %w", tableID, ErrNotFound)
	}
	if t.IndexByID(indexID) == nil {
		return fmt.Errorf("index %q: %w", indexID, ErrNotFound)
	}
	idxs := t.Indexes[:0]
	for i := range t.Indexes {
		if t.Indexes[i].ID != indexID {
			idxs = append(idxs, t.Indexes[i])
		}
	}
	t.Indexes = idxs
	return nil
}

// AddConstraint appends a constraint to the table with the given id.
func (m *Model) AddConstraint(tableID string, c Constraint) (Constraint, error) {
	t := m.schema.TableByID(tableID)
	if t == nil {
		return Constraint{}, fmt.Errorf("table %q: %w", tableID, ErrNotFound)
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	t.Constraints = append(t.Constraints, c.Clone())
	return c, nil
}

// UpdateConstraint applies a patch to a constraint.
func (m *Model) UpdateConstraint(tableID, constraintID string, patch ConstraintPatch) (Constraint, error) {
	t := m.schema.TableByID(tableID)
	if t == nil {
		return Constraint{}, fmt.Errorf("table %q: %w", tableID, ErrNotFound)
	}
	c := t.ConstraintByID(constraintID)
	if c == nil {
		return Constraint{}, fmt.Errorf("constraint %q: %w", constraintID, ErrNotFound)
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Columns != nil {
		c.Columns = append([]string(nil), patch.Columns...)
	}
	if patch.ReferencedTable != nil {
		c.ReferencedTable = *patch.ReferencedTable
	}
	if patch.ReferencedColumns != nil {
		c.ReferencedColumns = append([]string(nil), patch.ReferencedColumns...)
	}
	if patch.OnUpdate != nil {
		c.OnUpdate = *patch.OnUpdate
	}
	if patch.OnDelete != nil {
		c.OnDelete = *patch.OnDelete
	}
	if patch.CheckExpression != nil {
		c.CheckExpression = *patch.CheckExpression
	}
	return c.Clone(), nil
}

// DeleteConstraint removes a constraint.
func (m *Model) DeleteConstraint(tableID, constraintID string) error {
	t := m.schema.TableByID(tableID)
	if t == nil {
		return fmt.Errorf("table %q: %w", tableID, ErrNotFound)
	}
	if t.ConstraintByID(constraintID) == nil {
		return fmt.Errorf("constraint %q: %w", constraintID, ErrNotFound)
	}
	cons := t.Constraints[:0]
	for i := range t.Constraints {
		if t.Constraints[i].ID != constraintID {
			cons = append(cons, t.Constraints[i])
		}
	}
	t.Constraints = cons
	return nil
}

// AddRelationship appends a relationship to the schema.
func (m *Model) AddRelationship(r Relationship) (Relationship, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	m.schema.Relationships = append(m.schema.Relationships, r)
	return r, nil
}

// UpdateRelationship applies a patch to a relationship.
func (m *Model) UpdateRelationship(id string, patch RelationshipPatch) (Relationship, error) {
	var r *Relationship
	for i := range m.schema.Relationships {
		if m.schema.Relationships[i].ID == id {
			r = &m.schema.Relationships[i]
			break
		}
	}
	if r == nil {
		return Relationship{}, fmt.Errorf("relationship %q: %w", id, ErrNotFound)
	}
	if patch.SourceTable != nil {
		r.SourceTable = *patch.SourceTable
	}
	if patch.SourceColumn != nil {
		r.SourceColumn = *patch.SourceColumn
	}
	if patch.TargetTable != nil {
		r.TargetTable = *patch.TargetTable
	}
	if patch.TargetColumn != nil {
		r.TargetColumn = *patch.TargetColumn
	}
	if patch.Cardinality != nil {
		r.Cardinality = *patch.Cardinality
	}
	if patch.Label != nil {
		r.Label = *patch.Label
	}
	return *r, nil
}

// DeleteRelationship removes a relationship.
func (m *Model) DeleteRelationship(id string) error {
	for i := range m.schema.Relationships {
		if m.schema.Relationships[i].ID == id {
			m.schema.Relationships = append(m.schema.Relationships[:i], m.schema.Relationships[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("relationship %q: %w", id, ErrNotFound)
}
