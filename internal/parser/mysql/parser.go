// Package mysql imports existing databases onto the canvas by parsing a
// MySQL CREATE TABLE dump into a schema document. Native column types are
// mapped back onto the generic type tags.
package mysql

import (
	"fmt"
	"os"
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/format"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver" // registers the parser driver

	"schemaforge/internal/model"
)

// Parser reads MySQL dumps.
type Parser struct {
	p *parser.Parser
}

// NewParser creates a new MySQL dump parser.
func NewParser() *Parser {
	return &Parser{
		p: parser.New(),
	}
}

// ParseFile reads and parses a dump from disk.
func (p *Parser) ParseFile(path string) (model.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Schema{}, fmt.Errorf("mysql: read file %q: %w", path, err)
	}
	return p.Parse(string(data))
}

// Parse converts the CREATE TABLE statements of a dump into a schema. A
// CREATE DATABASE statement, when present, names the schema. Statements of
// other kinds are ignored.
func (p *Parser) Parse(sql string) (model.Schema, error) {
	stmtNodes, _, err := p.p.Parse(sql, "", "")
	if err != nil {
		return model.Schema{}, fmt.Errorf("mysql: parse dump: %w", err)
	}

	schema := model.Schema{
		Engine: model.EngineMySQL,
	}

	for _, stmtNode := range stmtNodes {
		switch stmt := stmtNode.(type) {
		case *ast.CreateDatabaseStmt:
			schema.Name = stmt.Name.O
		case *ast.CreateTableStmt:
			table, err := p.convertCreateTable(stmt)
			if err != nil {
				return model.Schema{}, err
			}
			schema.Tables = append(schema.Tables, table)
		}
	}

	return schema, nil
}

func (p *Parser) convertCreateTable(stmt *ast.CreateTableStmt) (model.Table, error) {
	table := model.Table{
		Name: stmt.Table.Name.O,
	}

	for _, opt := range stmt.Options {
		if opt.Tp == ast.TableOptionComment {
			table.Comment = opt.StrValue
		}
	}

	for _, colDef := range stmt.Cols {
		col := p.convertColumn(colDef, &table)
		table.Columns = append(table.Columns, col)
	}

	for _, constraint := range stmt.Constraints {
		p.convertConstraint(constraint, &table)
	}

	return table, nil
}

func (p *Parser) convertConstraint(constraint *ast.Constraint, table *model.Table) {
	columns := make([]string, 0, len(constraint.Keys))
	for _, key := range constraint.Keys {
		columns = append(columns, key.Column.Name.O)
	}

	switch constraint.Tp {
	case ast.ConstraintPrimaryKey:
		for _, colName := range columns {
			if col := table.FindColumn(colName); col != nil {
				col.PrimaryKey = true
			}
		}
	case ast.ConstraintUniq, ast.ConstraintUniqKey, ast.ConstraintUniqIndex:
		table.Constraints = append(table.Constraints, model.Constraint{
			Name:    constraint.Name,
			Type:    model.ConstraintUnique,
			Columns: columns,
		})
	case ast.ConstraintForeignKey:
		fk := model.Constraint{
			Name:            constraint.Name,
			Type:            model.ConstraintForeign,
			Columns:         columns,
			ReferencedTable: constraint.Refer.Table.Name.O,
		}
		for _, spec := range constraint.Refer.IndexPartSpecifications {
			if spec.Column != nil {
				fk.ReferencedColumns = append(fk.ReferencedColumns, spec.Column.Name.O)
			}
		}
		if constraint.Refer.OnDelete != nil {
			fk.OnDelete = mapRefAction(constraint.Refer.OnDelete.ReferOpt.String())
		}
		if constraint.Refer.OnUpdate != nil {
			fk.OnUpdate = mapRefAction(constraint.Refer.OnUpdate.ReferOpt.String())
		}
		table.Constraints = append(table.Constraints, fk)
	case ast.ConstraintIndex, ast.ConstraintKey:
		table.Indexes = append(table.Indexes, model.Index{
			Name:    constraint.Name,
			Columns: columns,
			Type:    model.IndexBTree,
		})
	case ast.ConstraintFulltext:
		table.Indexes = append(table.Indexes, model.Index{
			Name:    constraint.Name,
			Columns: columns,
			Type:    model.IndexFullText,
		})
	case ast.ConstraintCheck:
		check := model.Constraint{
			Name:    constraint.Name,
			Type:    model.ConstraintCheck,
			Columns: columns,
		}
		if constraint.Expr != nil {
			if s := p.exprToString(constraint.Expr); s != nil {
				check.CheckExpression = *s
			}
		}
		table.Constraints = append(table.Constraints, check)
	}
}

// exprToString restores an expression to its SQL text, unwrapping string
// literals from their quotes.
func (p *Parser) exprToString(expr ast.ExprNode) *string {
	if expr == nil {
		return nil
	}
	var sb strings.Builder
	restoreCtx := format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)
	if err := expr.Restore(restoreCtx); err != nil {
		return nil
	}
	s := sb.String()

	if start := strings.Index(s, "'"); start != -1 {
		if end := strings.LastIndex(s, "'"); start < end {
			s = s[start+1 : end]
		}
	}

	return &s
}

func mapRefAction(s string) model.RefAction {
	switch action := model.RefAction(strings.ToUpper(strings.TrimSpace(s))); action {
	case model.RefActionCascade, model.RefActionRestrict, model.RefActionSetNull, model.RefActionSetDefault:
		return action
	default:
		return model.RefActionNone
	}
}
