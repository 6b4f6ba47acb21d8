// Package toml provides the TOML rendition of the schema document. It reads
// a dialect-agnostic schema definition from a .toml file and converts it into
// the model.Schema representation the rest of the tool operates on.
package toml

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"schemaforge/internal/model"
)

// schemaFile is the top-level TOML document. [schema], [[tables]], and
// [[relationships]] are all top-level keys.
type schemaFile struct {
	Schema        tomlSchema         `toml:"schema"`
	Tables        []tomlTable        `toml:"tables"`
	Relationships []tomlRelationship `toml:"relationships"`
}

// tomlSchema maps [schema].
type tomlSchema struct {
	ID          string `toml:"id,omitempty"`
	Name        string `toml:"name"`
	Description string `toml:"description,omitempty"`
	Version     string `toml:"version,omitempty"`
	Engine      string `toml:"engine"`
}

// tomlTable maps [[tables]].
type tomlTable struct {
	ID          string           `toml:"id,omitempty"`
	Name        string           `toml:"name"`
	X           float64          `toml:"x,omitempty"`
	Y           float64          `toml:"y,omitempty"`
	Comment     string           `toml:"comment,omitempty"`
	Columns     []tomlColumn     `toml:"columns"`
	Indexes     []tomlIndex      `toml:"indexes,omitempty"`
	Constraints []tomlConstraint `toml:"constraints,omitempty"`
}

// tomlColumn maps [[tables.columns]].
type tomlColumn struct {
	ID            string `toml:"id,omitempty"`
	Name          string `toml:"name"`
	Type          string `toml:"type"`
	Length        int    `toml:"length,omitempty"`
	Nullable      bool   `toml:"nullable,omitempty"`
	PrimaryKey    bool   `toml:"primary_key,omitempty"`
	Unique        bool   `toml:"unique,omitempty"`
	AutoIncrement bool   `toml:"auto_increment,omitempty"`
	Comment       string `toml:"comment,omitempty"`

	// Default accepts string, bool, or number from TOML. The converter
	// normalizes everything to a string literal.
	Default any `toml:"default,omitempty"`
}

// tomlIndex maps [[tables.indexes]].
type tomlIndex struct {
	ID      string   `toml:"id,omitempty"`
	Name    string   `toml:"name"`
	Columns []string `toml:"columns"`
	Unique  bool     `toml:"unique,omitempty"`
	Type    string   `toml:"type,omitempty"`
}

// tomlConstraint maps [[tables.constraints]].
type tomlConstraint struct {
	ID                string   `toml:"id,omitempty"`
	Name              string   `toml:"name,omitempty"`
	Type              string   `toml:"type"`
	Columns           []string `toml:"columns,omitempty"`
	ReferencedTable   string   `toml:"referenced_table,omitempty"`
	ReferencedColumns []string `toml:"referenced_columns,omitempty"`
	OnUpdate          string   `toml:"on_update,omitempty"`
	OnDelete          string   `toml:"on_delete,omitempty"`
	Check             string   `toml:"check,omitempty"`
}

// tomlRelationship maps [[relationships]]. Source and target use the
// "table.column" reference form.
type tomlRelationship struct {
	ID          string `toml:"id,omitempty"`
	Source      string `toml:"source"`
	Target      string `toml:"target"`
	Cardinality string `toml:"cardinality"`
	Label       string `toml:"label,omitempty"`
}

// Parser reads TOML schema documents.
type Parser struct{}

// NewParser creates a new TOML schema parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile opens the file at the given path and parses it as a TOML schema.
func (p *Parser) ParseFile(path string) (model.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Schema{}, fmt.Errorf("toml: open file %q: %w", path, err)
	}
	defer f.Close()

	return p.Parse(f)
}

// Parse reads TOML content from r and returns the corresponding schema.
func (p *Parser) Parse(r io.Reader) (model.Schema, error) {
	var sf schemaFile
	if _, err := toml.NewDecoder(r).Decode(&sf); err != nil {
		return model.Schema{}, fmt.Errorf("toml: decode error: %w", err)
	}

	return newConverter(&sf).convert()
}
