package query

import (
	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
)

var (
	// ErrNoColumns is returned when a selectable has no inspectable columns.
	ErrNoColumns = errors.New("selectable has no inspectable columns")

	// ErrUnsupportedItem is returned for select list items that aren't
	// columns, tables or expressions.
	ErrUnsupportedItem = errors.New("unsupported select item")

	// ErrUnboundParameter is returned when a text query references a
	// parameter that was never bound.
	ErrUnboundParameter = errors.New("unbound parameter")
)

// ColumnInfo describes one output column of a selectable.
type ColumnInfo struct {
	Name       string
	Type       schema.Type
	PrimaryKey bool
}

// Columns returns the output columns of src in select list order. src may be
// a *SelectStmt, a *TextStmt with declared columns or anything exposing
// Columns() []*schema.Column such as tables and views.
func Columns(src any) ([]ColumnInfo, error) {
	switch val := src.(type) {
	case *SelectStmt:
		return val.columns()
	case *TextStmt:
		if len(val.columns) == 0 {
			return nil, errors.Wrap(ErrNoColumns, "text query declares no columns")
		}
		return fromColumns(val.columns), nil
	case columnSet:
		cols := val.Columns()
		if len(cols) == 0 {
			return nil, errors.Wrapf(ErrNoColumns, "%T has no columns", src)
		}
		return fromColumns(cols), nil
	}

	return nil, errors.Wrapf(ErrNoColumns, "unsupported selectable %T", src)
}

// Dependencies returns the keys of the relations sel reads from. Text queries
// have none.
func Dependencies(sel Selectable) []string {
	s, ok := sel.(*SelectStmt)
	if !ok {
		return nil
	}

	var keys []string
	for _, t := range s.Tables() {
		keys = append(keys, t.Key())
	}
	return keys
}

func (s *SelectStmt) columns() ([]ColumnInfo, error) {
	if s.err != nil {
		return nil, s.err
	}

	if len(s.items) == 0 {
		return nil, errors.Wrap(ErrNoColumns, "select list is empty")
	}

	out := make([]ColumnInfo, 0, len(s.items))
	for i, item := range s.items {
		switch e := item.(type) {
		case columnExpr:
			out = append(out, columnInfo(e.col))
		case *LabelExpr:
			info := ColumnInfo{Name: e.name, Type: exprType(e.expr)}
			if col, ok := e.expr.(columnExpr); ok {
				info.PrimaryKey = col.col.IsPrimaryKey()
			}
			out = append(out, info)
		default:
			return nil, errors.Wrapf(ErrNoColumns, "select item %d (%T) has no name, wrap it in query.Label", i, item)
		}
	}
	return out, nil
}

func exprType(e Expr) schema.Type {
	switch val := e.(type) {
	case columnExpr:
		return val.col.Type()
	case *FuncExpr:
		if val.typ != nil {
			return *val.typ
		}
		for _, a := range val.args {
			if col, ok := a.(columnExpr); ok {
				return col.col.Type()
			}
		}
	case literalExpr:
		return inferType(val.value)
	case bindExpr:
		return inferType(val.value)
	case *LabelExpr:
		return exprType(val.expr)
	}
	return schema.Type{}
}

func columnInfo(c *schema.Column) ColumnInfo {
	return ColumnInfo{Name: c.Name(), Type: c.Type(), PrimaryKey: c.IsPrimaryKey()}
}

func fromColumns(cols []*schema.Column) []ColumnInfo {
	out := make([]ColumnInfo, len(cols))
	for i, c := range cols {
		out[i] = columnInfo(c)
	}
	return out
}
