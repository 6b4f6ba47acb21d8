package generator

import (
	"errors"
	"fmt"
	"strings"

	"schemaforge/internal/dialect"
	"schemaforge/internal/model"
)

// Kind selects which statement family Generate emits.
type Kind string

const (
	KindCreate Kind = "create"
	KindAlter  Kind = "alter"
	KindDrop   Kind = "drop"
	KindInsert Kind = "insert"
)

// ErrAlterUnsupported marks the alter statement kind as an acknowledged gap:
// producing real ALTER statements needs a baseline schema to diff against.
var ErrAlterUnsupported = errors.New("alter generation is not implemented")

// ParseKind converts a user-supplied string into a statement kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindCreate, KindAlter, KindDrop, KindInsert:
		return k, nil
	default:
		return "", fmt.Errorf("unknown statement kind %q", s)
	}
}

// Options are the recognized generation flags.
type Options struct {
	IncludeDropStatements bool
	IncludeComments       bool
	IncludeIndexes        bool
	IncludeConstraints    bool
	IncludeSampleData     bool
	FormatSQL             bool
	CreateDatabase        bool
	UseIfNotExists        bool
}

// DefaultOptions returns the options used when the caller does not care.
func DefaultOptions() Options {
	return Options{
		IncludeComments:    true,
		IncludeIndexes:     true,
		IncludeConstraints: true,
		FormatSQL:          true,
	}
}

// Generate renders SQL of the given kind for the selected tables. An empty
// tableIDs slice selects every table. The function is pure: identical inputs
// produce byte-identical output.
func Generate(schema model.Schema, tableIDs []string, kind Kind, opts Options) (string, error) {
	adapter, err := dialect.ForEngine(schema.Engine)
	if err != nil {
		return "", err
	}

	tables := selectTables(&schema, tableIDs)
	s := &Script{}

	switch kind {
	case KindCreate:
		addCreate(s, &schema, tables, adapter, opts)
	case KindDrop:
		addDrop(s, tables, adapter, opts)
	case KindInsert:
		addInserts(s, tables, adapter)
	case KindAlter:
		s.Comment("ALTER generation needs a baseline schema to diff against and is not available yet.")
		return s.Render(opts.FormatSQL), fmt.Errorf("kind %q: %w", kind, ErrAlterUnsupported)
	default:
		return "", fmt.Errorf("unknown statement kind %q", kind)
	}

	return s.Render(opts.FormatSQL), nil
}

// selectTables resolves ids against the schema, preserving declared order.
// Unknown ids are skipped.
func selectTables(schema *model.Schema, tableIDs []string) []*model.Table {
	var tables []*model.Table
	if len(tableIDs) == 0 {
		for i := range schema.Tables {
			tables = append(tables, &schema.Tables[i])
		}
		return tables
	}
	selected := make(map[string]bool, len(tableIDs))
	for _, id := range tableIDs {
		selected[id] = true
	}
	for i := range schema.Tables {
		if selected[schema.Tables[i].ID] {
			tables = append(tables, &schema.Tables[i])
		}
	}
	return tables
}

func addCreate(s *Script, schema *model.Schema, tables []*model.Table, a dialect.Adapter, opts Options) {
	if opts.CreateDatabase {
		s.Raw(a.DatabasePreamble(schema.Name, opts.UseIfNotExists)...)
	}
	if opts.IncludeDropStatements {
		addDrop(s, tables, a, opts)
	}

	for _, t := range tables {
		if opts.IncludeComments && a.CommentStyle() == dialect.CommentNone && t.Comment != "" {
			s.Comment(t.Name + ": " + t.Comment)
		}
		s.Add(createTableStatement(schema, t, a, opts))
		if opts.IncludeComments && a.CommentStyle() == dialect.CommentStatement {
			addCommentStatements(s, t, a)
		}
	}

	if opts.IncludeIndexes {
		for _, t := range tables {
			for i := range t.Indexes {
				if stmt := createIndexStatement(t, &t.Indexes[i], a); stmt != "" {
					s.Add(stmt)
				}
			}
		}
	}

	if opts.IncludeConstraints {
		for _, t := range tables {
			for _, fk := range t.ForeignKeys() {
				if stmt := addForeignKeyStatement(t, &fk, a); stmt != "" {
					s.Add(stmt)
				}
			}
		}
	}

	if opts.IncludeSampleData {
		addInserts(s, tables, a)
	}
}

func createTableStatement(schema *model.Schema, t *model.Table, a dialect.Adapter, opts Options) string {
	var defs []string
	for i := range t.Columns {
		defs = append(defs, columnDefinition(&t.Columns[i], a, opts))
	}

	if pk := t.PrimaryKeyColumns(); len(pk) > 0 {
		defs = append(defs, "PRIMARY KEY ("+joinQuoted(pk, a)+")")
	}
	for i := range t.Constraints {
		if def := constraintDefinition(&t.Constraints[i], a); def != "" {
			defs = append(defs, def)
		}
	}

	head := "CREATE TABLE "
	if opts.UseIfNotExists {
		head += "IF NOT EXISTS "
	}
	head += a.QuoteIdentifier(t.Name)

	suffix := a.TableSuffix(schema)
	if opts.IncludeComments && a.CommentStyle() == dialect.CommentInline && t.Comment != "" {
		suffix += " COMMENT=" + a.QuoteString(t.Comment)
	}

	if opts.FormatSQL {
		return head + " (\n  " + strings.Join(defs, ",\n  ") + "\n)" + suffix + ";"
	}
	return head + " (" + strings.Join(defs, ", ") + ")" + suffix + ";"
}

func columnDefinition(c *model.Column, a dialect.Adapter, opts Options) string {
	parts := []string{a.QuoteIdentifier(c.Name), a.ColumnType(*c)}

	if c.AutoIncrement {
		if clause := a.AutoIncrementClause(c.Type); clause != "" {
			parts = append(parts, clause)
		}
	}
	if !c.Nullable {
		parts = append(parts, "NOT NULL")
	}
	if c.Default != nil {
		parts = append(parts, "DEFAULT", defaultLiteral(c, a))
	}
	if c.Unique && !c.PrimaryKey {
		parts = append(parts, "UNIQUE")
	}
	if opts.IncludeComments && a.CommentStyle() == dialect.CommentInline && c.Comment != "" {
		parts = append(parts, "COMMENT", a.QuoteString(c.Comment))
	}
	return strings.Join(parts, " ")
}

// defaultLiteral quotes a default value according to the column type, letting
// well-known SQL functions through unquoted.
func defaultLiteral(c *model.Column, a dialect.Adapter) string {
	v := *c.Default
	switch upper := strings.ToUpper(strings.TrimSpace(v)); upper {
	case "CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME", "NOW()", "NULL":
		return upper
	}
	if c.Type == model.TypeBoolean {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1":
			return a.BooleanLiteral(true)
		case "false", "0":
			return a.BooleanLiteral(false)
		}
	}
	if c.Type.Textual() || c.Type.Temporal() ||
		c.Type == model.TypeJSON || c.Type == model.TypeUUID || c.Type == model.TypeBlob {
		return a.QuoteString(v)
	}
	return v
}

func constraintDefinition(c *model.Constraint, a dialect.Adapter) string {
	switch c.Type {
	case model.ConstraintUnique:
		if len(c.Columns) == 0 {
			return ""
		}
		return a.UniqueConstraintClause(c.Name, joinQuoted(c.Columns, a))
	case model.ConstraintCheck:
		if strings.TrimSpace(c.CheckExpression) == "" {
			return ""
		}
		if c.Name != "" {
			return fmt.Sprintf("CONSTRAINT %s CHECK (%s)", a.QuoteIdentifier(c.Name), c.CheckExpression)
		}
		return fmt.Sprintf("CHECK (%s)", c.CheckExpression)
	default:
		// primary is rendered from PrimaryKeyColumns, foreign as ALTERs.
		return ""
	}
}

func createIndexStatement(t *model.Table, idx *model.Index, a dialect.Adapter) string {
	if idx.Name == "" || len(idx.Columns) == 0 {
		return ""
	}

	typ := idx.Type
	if !a.SupportsIndexType(typ) {
		typ = model.IndexBTree
	}

	var sb strings.Builder
	sb.WriteString("CREATE ")
	if idx.Unique {
		sb.WriteString("UNIQUE ")
	}
	sb.WriteString("INDEX ")
	sb.WriteString(a.QuoteIdentifier(idx.Name))
	sb.WriteString(" ON ")
	sb.WriteString(a.QuoteIdentifier(t.Name))
	sb.WriteString(" (")
	sb.WriteString(joinQuoted(idx.Columns, a))
	sb.WriteString(")")
	if using := a.IndexUsingClause(typ); using != "" {
		sb.WriteString(" ")
		sb.WriteString(using)
	}
	sb.WriteString(";")
	return sb.String()
}

func addForeignKeyStatement(t *model.Table, c *model.Constraint, a dialect.Adapter) string {
	if len(c.Columns) == 0 || c.ReferencedTable == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(128)
	sb.WriteString("ALTER TABLE ")
	sb.WriteString(a.QuoteIdentifier(t.Name))
	sb.WriteString(" ADD CONSTRAINT ")
	sb.WriteString(a.QuoteIdentifier(foreignKeyName(t, c)))
	sb.WriteString(" FOREIGN KEY (")
	sb.WriteString(joinQuoted(c.Columns, a))
	sb.WriteString(") REFERENCES ")
	sb.WriteString(a.QuoteIdentifier(c.ReferencedTable))
	sb.WriteString(" (")
	sb.WriteString(joinQuoted(c.ReferencedColumns, a))
	sb.WriteString(")")
	if c.OnUpdate != model.RefActionNone {
		sb.WriteString(" ON UPDATE ")
		sb.WriteString(string(c.OnUpdate))
	}
	if c.OnDelete != model.RefActionNone {
		sb.WriteString(" ON DELETE ")
		sb.WriteString(string(c.OnDelete))
	}
	sb.WriteString(";")
	return sb.String()
}

// foreignKeyName falls back to a deterministic synthesized name so unnamed
// foreign keys stay addressable by the drop sequence.
func foreignKeyName(t *model.Table, c *model.Constraint) string {
	if c.Name != "" {
		return c.Name
	}
	return "fk_" + t.Name + "_" + c.Columns[0]
}

func addCommentStatements(s *Script, t *model.Table, a dialect.Adapter) {
	qt := a.QuoteIdentifier(t.Name)
	if t.Comment != "" {
		s.Addf("COMMENT ON TABLE %s IS %s;", qt, a.QuoteString(t.Comment))
	}
	for i := range t.Columns {
		c := &t.Columns[i]
		if c.Comment != "" {
			s.Addf("COMMENT ON COLUMN %s.%s IS %s;", qt, a.QuoteIdentifier(c.Name), a.QuoteString(c.Comment))
		}
	}
}

// addDrop emits foreign-key drops for all selected tables first, then DROP
// TABLE statements in exactly the reverse of the declared order. Referencing
// tables declared after their targets are therefore always dropped first.
func addDrop(s *Script, tables []*model.Table, a dialect.Adapter, opts Options) {
	for _, t := range tables {
		for _, fk := range t.ForeignKeys() {
			if len(fk.Columns) == 0 || fk.ReferencedTable == "" {
				continue
			}
			clause := a.DropForeignKeyClause(foreignKeyName(t, &fk))
			if clause == "" {
				s.Comment("foreign keys on " + t.Name + " cannot be dropped separately; they disappear with the table.")
				continue
			}
			s.Addf("ALTER TABLE %s %s;", a.QuoteIdentifier(t.Name), clause)
		}
	}

	for i := len(tables) - 1; i >= 0; i-- {
		if opts.UseIfNotExists {
			s.Addf("DROP TABLE IF EXISTS %s;", a.QuoteIdentifier(tables[i].Name))
		} else {
			s.Addf("DROP TABLE %s;", a.QuoteIdentifier(tables[i].Name))
		}
	}
}

func addInserts(s *Script, tables []*model.Table, a dialect.Adapter) {
	for _, t := range tables {
		var cols, vals []string
		for i := range t.Columns {
			c := &t.Columns[i]
			if c.AutoIncrement {
				continue
			}
			cols = append(cols, a.QuoteIdentifier(c.Name))
			vals = append(vals, sampleLiteral(c, a))
		}
		if len(cols) == 0 {
			continue
		}
		s.Addf("INSERT INTO %s (%s) VALUES (%s);",
			a.QuoteIdentifier(t.Name),
			strings.Join(cols, ", "),
			strings.Join(vals, ", "))
	}
}

func joinQuoted(names []string, a dialect.Adapter) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = a.QuoteIdentifier(n)
	}
	return strings.Join(quoted, ", ")
}
