package toml

import (
	"fmt"
	"strconv"
	"strings"

	"schemaforge/internal/model"
)

type converter struct {
	sf         *schemaFile
	seenTables map[string]bool
}

func newConverter(sf *schemaFile) *converter {
	return &converter{
		sf:         sf,
		seenTables: make(map[string]bool, len(sf.Tables)),
	}
}

func (c *converter) convert() (model.Schema, error) {
	engine := strings.ToLower(strings.TrimSpace(c.sf.Schema.Engine))
	if !model.IsValidEngine(engine) {
		return model.Schema{}, fmt.Errorf("toml: unsupported engine %q", c.sf.Schema.Engine)
	}

	s := model.Schema{
		ID:          c.sf.Schema.ID,
		Name:        c.sf.Schema.Name,
		Description: c.sf.Schema.Description,
		Version:     c.sf.Schema.Version,
		Engine:      model.Engine(engine),
	}

	for i := range c.sf.Tables {
		t, err := c.convertTable(&c.sf.Tables[i])
		if err != nil {
			return model.Schema{}, fmt.Errorf("toml: table %q: %w", c.sf.Tables[i].Name, err)
		}
		s.Tables = append(s.Tables, t)
	}

	for i := range c.sf.Relationships {
		r, err := convertRelationship(&c.sf.Relationships[i])
		if err != nil {
			return model.Schema{}, fmt.Errorf("toml: relationship %d: %w", i+1, err)
		}
		s.Relationships = append(s.Relationships, r)
	}

	return s, nil
}

func (c *converter) convertTable(tt *tomlTable) (model.Table, error) {
	if tt.Name == "" {
		return model.Table{}, fmt.Errorf("missing name")
	}
	if c.seenTables[tt.Name] {
		return model.Table{}, fmt.Errorf("duplicate table name")
	}
	c.seenTables[tt.Name] = true

	t := model.Table{
		ID:      tt.ID,
		Name:    tt.Name,
		X:       tt.X,
		Y:       tt.Y,
		Comment: tt.Comment,
	}

	seenColumns := make(map[string]bool, len(tt.Columns))
	for i := range tt.Columns {
		col, err := convertColumn(&tt.Columns[i])
		if err != nil {
			return model.Table{}, fmt.Errorf("column %q: %w", tt.Columns[i].Name, err)
		}
		if seenColumns[col.Name] {
			return model.Table{}, fmt.Errorf("duplicate column name %q", col.Name)
		}
		seenColumns[col.Name] = true
		t.Columns = append(t.Columns, col)
	}

	for i := range tt.Indexes {
		idx, err := convertIndex(&tt.Indexes[i])
		if err != nil {
			return model.Table{}, fmt.Errorf("index %q: %w", tt.Indexes[i].Name, err)
		}
		t.Indexes = append(t.Indexes, idx)
	}

	for i := range tt.Constraints {
		con, err := convertConstraint(&tt.Constraints[i])
		if err != nil {
			return model.Table{}, fmt.Errorf("constraint %q: %w", tt.Constraints[i].Name, err)
		}
		t.Constraints = append(t.Constraints, con)
	}

	return t, nil
}

func convertColumn(tc *tomlColumn) (model.Column, error) {
	if tc.Name == "" {
		return model.Column{}, fmt.Errorf("missing name")
	}
	if tc.Type == "" {
		return model.Column{}, fmt.Errorf("missing type")
	}

	col := model.Column{
		ID:            tc.ID,
		Name:          tc.Name,
		Type:          model.ColumnType(strings.ToLower(strings.TrimSpace(tc.Type))),
		Length:        tc.Length,
		Nullable:      tc.Nullable,
		PrimaryKey:    tc.PrimaryKey,
		Unique:        tc.Unique,
		AutoIncrement: tc.AutoIncrement,
		Comment:       tc.Comment,
	}

	if tc.Default != nil {
		lit, err := normalizeDefault(tc.Default)
		if err != nil {
			return model.Column{}, err
		}
		col.Default = &lit
	}

	return col, nil
}

// normalizeDefault flattens TOML scalar defaults to the string literal form
// the model carries.
func normalizeDefault(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported default value type %T", v)
	}
}

func convertIndex(ti *tomlIndex) (model.Index, error) {
	if ti.Name == "" {
		return model.Index{}, fmt.Errorf("missing name")
	}
	return model.Index{
		ID:      ti.ID,
		Name:    ti.Name,
		Columns: append([]string(nil), ti.Columns...),
		Unique:  ti.Unique,
		Type:    model.IndexType(strings.ToLower(strings.TrimSpace(ti.Type))),
	}, nil
}

func convertConstraint(tc *tomlConstraint) (model.Constraint, error) {
	typ := model.ConstraintType(strings.ToLower(strings.TrimSpace(tc.Type)))
	switch typ {
	case model.ConstraintPrimary, model.ConstraintForeign, model.ConstraintUnique, model.ConstraintCheck:
	default:
		return model.Constraint{}, fmt.Errorf("unknown constraint type %q", tc.Type)
	}

	onUpdate, err := convertRefAction(tc.OnUpdate)
	if err != nil {
		return model.Constraint{}, err
	}
	onDelete, err := convertRefAction(tc.OnDelete)
	if err != nil {
		return model.Constraint{}, err
	}

	con := model.Constraint{
		ID:                tc.ID,
		Name:              tc.Name,
		Type:              typ,
		Columns:           append([]string(nil), tc.Columns...),
		ReferencedTable:   tc.ReferencedTable,
		ReferencedColumns: append([]string(nil), tc.ReferencedColumns...),
		OnUpdate:          onUpdate,
		OnDelete:          onDelete,
		CheckExpression:   tc.Check,
	}

	if typ == model.ConstraintForeign && con.ReferencedTable == "" {
		return model.Constraint{}, fmt.Errorf("foreign key needs referenced_table")
	}
	return con, nil
}

func convertRefAction(s string) (model.RefAction, error) {
	switch action := model.RefAction(strings.ToUpper(strings.TrimSpace(s))); action {
	case model.RefActionNone, model.RefActionCascade, model.RefActionRestrict,
		model.RefActionSetNull, model.RefActionSetDefault:
		return action, nil
	default:
		return "", fmt.Errorf("unknown referential action %q", s)
	}
}

func convertRelationship(tr *tomlRelationship) (model.Relationship, error) {
	srcTable, srcColumn, ok := splitRef(tr.Source)
	if !ok {
		return model.Relationship{}, fmt.Errorf("invalid source %q: expected \"table.column\"", tr.Source)
	}
	dstTable, dstColumn, ok := splitRef(tr.Target)
	if !ok {
		return model.Relationship{}, fmt.Errorf("invalid target %q: expected \"table.column\"", tr.Target)
	}

	card := model.Cardinality(strings.ToLower(strings.TrimSpace(tr.Cardinality)))
	switch card {
	case model.OneToOne, model.OneToMany, model.ManyToMany:
	default:
		return model.Relationship{}, fmt.Errorf("unknown cardinality %q", tr.Cardinality)
	}

	return model.Relationship{
		ID:           tr.ID,
		SourceTable:  srcTable,
		SourceColumn: srcColumn,
		TargetTable:  dstTable,
		TargetColumn: dstColumn,
		Cardinality:  card,
		Label:        tr.Label,
	}, nil
}

// splitRef splits a "table.column" reference.
func splitRef(ref string) (table, column string, ok bool) {
	table, column, found := strings.Cut(strings.TrimSpace(ref), ".")
	if !found || table == "" || column == "" {
		return "", "", false
	}
	return table, column, true
}
