package mysql

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pingcap/tidb/pkg/parser/ast"

	"schemaforge/internal/model"
)

func (p *Parser) convertColumn(colDef *ast.ColumnDef, table *model.Table) model.Column {
	typ, length := mapColumnType(colDef.Tp.String())
	col := model.Column{
		Name:     colDef.Name.Name.O,
		Type:     typ,
		Length:   length,
		Nullable: true,
	}

	for _, opt := range colDef.Options {
		switch opt.Tp {
		case ast.ColumnOptionNotNull:
			col.Nullable = false
		case ast.ColumnOptionNull:
			col.Nullable = true
		case ast.ColumnOptionPrimaryKey:
			col.PrimaryKey = true
		case ast.ColumnOptionAutoIncrement:
			col.AutoIncrement = true
		case ast.ColumnOptionUniqKey:
			col.Unique = true
		case ast.ColumnOptionDefaultValue:
			col.Default = p.exprToString(opt.Expr)
		case ast.ColumnOptionComment:
			if s := p.exprToString(opt.Expr); s != nil {
				col.Comment = *s
			}
		case ast.ColumnOptionCheck:
			if s := p.exprToString(opt.Expr); s != nil {
				table.Constraints = append(table.Constraints, model.Constraint{
					Type:            model.ConstraintCheck,
					Columns:         []string{col.Name},
					CheckExpression: *s,
				})
			}
		case ast.ColumnOptionReference:
			fk := model.Constraint{
				Type:            model.ConstraintForeign,
				Columns:         []string{col.Name},
				ReferencedTable: opt.Refer.Table.Name.O,
			}
			for _, spec := range opt.Refer.IndexPartSpecifications {
				if spec.Column != nil {
					fk.ReferencedColumns = append(fk.ReferencedColumns, spec.Column.Name.O)
				}
			}
			if opt.Refer.OnDelete != nil {
				fk.OnDelete = mapRefAction(opt.Refer.OnDelete.ReferOpt.String())
			}
			if opt.Refer.OnUpdate != nil {
				fk.OnUpdate = mapRefAction(opt.Refer.OnUpdate.ReferOpt.String())
			}
			table.Constraints = append(table.Constraints, fk)
		}
	}

	return col
}

// reTypeParts splits a native type like "varchar(50)" into base and length.
var reTypeParts = regexp.MustCompile(`^([a-z ]+)(?:\((\d+)[^)]*\))?`)

// mapColumnType folds a native MySQL type back onto the generic type tags.
// The length is only kept for types that take one in the designer.
func mapColumnType(raw string) (model.ColumnType, int) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	m := reTypeParts.FindStringSubmatch(raw)
	if m == nil {
		return model.TypeText, 0
	}
	base := strings.TrimSpace(m[1])
	length := 0
	if m[2] != "" {
		length, _ = strconv.Atoi(m[2])
	}

	switch base {
	case "tinyint":
		if length == 1 {
			return model.TypeBoolean, 0
		}
		return model.TypeTinyInt, 0
	case "smallint":
		return model.TypeSmallInt, 0
	case "mediumint":
		return model.TypeMediumInt, 0
	case "int", "integer":
		return model.TypeInteger, 0
	case "bigint":
		return model.TypeBigInt, 0
	case "varchar", "varbinary":
		return model.TypeVarchar, length
	case "char", "binary":
		if length == 36 {
			return model.TypeUUID, 0
		}
		return model.TypeChar, length
	case "tinytext", "text", "mediumtext", "longtext", "enum", "set":
		return model.TypeText, 0
	case "bool", "boolean":
		return model.TypeBoolean, 0
	case "date":
		return model.TypeDate, 0
	case "time":
		return model.TypeTime, 0
	case "datetime":
		return model.TypeDatetime, 0
	case "timestamp":
		return model.TypeTimestamp, 0
	case "decimal", "numeric":
		return model.TypeDecimal, length
	case "float":
		return model.TypeFloat, 0
	case "double", "double precision", "real":
		return model.TypeDouble, 0
	case "tinyblob", "blob", "mediumblob", "longblob":
		return model.TypeBlob, 0
	case "json":
		return model.TypeJSON, 0
	default:
		return model.TypeText, 0
	}
}
