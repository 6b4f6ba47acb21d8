package toml

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"schemaforge/internal/model"
)

// Marshal renders a schema as a TOML document, mirroring the JSON document
// field for field. Parsing the result yields an equivalent schema.
func Marshal(s model.Schema) ([]byte, error) {
	sf := schemaFile{
		Schema: tomlSchema{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Version:     s.Version,
			Engine:      string(s.Engine),
		},
	}

	for i := range s.Tables {
		sf.Tables = append(sf.Tables, marshalTable(&s.Tables[i]))
	}
	for i := range s.Relationships {
		r := &s.Relationships[i]
		sf.Relationships = append(sf.Relationships, tomlRelationship{
			ID:          r.ID,
			Source:      r.SourceTable + "." + r.SourceColumn,
			Target:      r.TargetTable + "." + r.TargetColumn,
			Cardinality: string(r.Cardinality),
			Label:       r.Label,
		})
	}

	data, err := toml.Marshal(sf)
	if err != nil {
		return nil, fmt.Errorf("toml: encode error: %w", err)
	}
	return data, nil
}

func marshalTable(t *model.Table) tomlTable {
	tt := tomlTable{
		ID:      t.ID,
		Name:    t.Name,
		X:       t.X,
		Y:       t.Y,
		Comment: t.Comment,
	}
	for i := range t.Columns {
		c := &t.Columns[i]
		tc := tomlColumn{
			ID:            c.ID,
			Name:          c.Name,
			Type:          string(c.Type),
			Length:        c.Length,
			Nullable:      c.Nullable,
			PrimaryKey:    c.PrimaryKey,
			Unique:        c.Unique,
			AutoIncrement: c.AutoIncrement,
			Comment:       c.Comment,
		}
		if c.Default != nil {
			tc.Default = *c.Default
		}
		tt.Columns = append(tt.Columns, tc)
	}
	for i := range t.Indexes {
		idx := &t.Indexes[i]
		tt.Indexes = append(tt.Indexes, tomlIndex{
			ID:      idx.ID,
			Name:    idx.Name,
			Columns: append([]string(nil), idx.Columns...),
			Unique:  idx.Unique,
			Type:    string(idx.Type),
		})
	}
	for i := range t.Constraints {
		c := &t.Constraints[i]
		tt.Constraints = append(tt.Constraints, tomlConstraint{
			ID:                c.ID,
			Name:              c.Name,
			Type:              string(c.Type),
			Columns:           append([]string(nil), c.Columns...),
			ReferencedTable:   c.ReferencedTable,
			ReferencedColumns: append([]string(nil), c.ReferencedColumns...),
			OnUpdate:          string(c.OnUpdate),
			OnDelete:          string(c.OnDelete),
			Check:             c.CheckExpression,
		})
	}
	return tt
}
