package query

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/dialect"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
)

type (
	// Selectable is a query a view can be defined over.
	Selectable interface {
		Compile(d dialect.Dialect, opts CompileOptions) (string, []any, error)
	}

	// CompileOptions control query rendering.
	CompileOptions struct {
		// LiteralBinds renders every bound parameter inline as a literal.
		// View definitions need this since they are stored as plain SQL.
		LiteralBinds bool
	}

	// SelectStmt is a SELECT built from schema objects.
	SelectStmt struct {
		items    []Expr
		from     []*schema.Table
		joins    []join
		where    []Expr
		groupBy  []Expr
		orderBy  []Expr
		limit    int
		distinct bool
		err      error
	}

	join struct {
		kind  string
		table *schema.Table
		on    Expr
	}

	columnSet interface {
		Columns() []*schema.Column
	}
)

// Select starts a SELECT over items. Items may be columns, tables or views
// (expanded to all of their columns) or expressions.
//
// Example:
//
//	q := query.Select(users.Column("id"), query.Label("n", query.Func("count", query.Raw("*")))).
//		Join(orders, query.Eq(orders.Column("user_id"), users.Column("id"))).
//		GroupBy(users.Column("id"))
func Select(items ...any) *SelectStmt {
	s := &SelectStmt{}
	for i, item := range items {
		switch val := item.(type) {
		case *schema.Column:
			s.items = append(s.items, columnExpr{col: val})
		case Expr:
			s.items = append(s.items, val)
		case columnSet:
			for _, c := range val.Columns() {
				s.items = append(s.items, columnExpr{col: c})
			}
		default:
			if s.err == nil {
				s.err = errors.Wrapf(ErrUnsupportedItem, "item %d (%T)", i, item)
			}
		}
	}
	return s
}

// From adds tables to the FROM clause ahead of those derived from columns.
func (s *SelectStmt) From(tables ...*schema.Table) *SelectStmt {
	s.from = append(s.from, tables...)
	return s
}

// Join adds an inner join.
func (s *SelectStmt) Join(t *schema.Table, on Expr) *SelectStmt {
	s.joins = append(s.joins, join{kind: "JOIN", table: t, on: on})
	return s
}

// LeftJoin adds a left outer join.
func (s *SelectStmt) LeftJoin(t *schema.Table, on Expr) *SelectStmt {
	s.joins = append(s.joins, join{kind: "LEFT OUTER JOIN", table: t, on: on})
	return s
}

// Where adds predicates. Multiple predicates (and calls) are ANDed.
func (s *SelectStmt) Where(preds ...Expr) *SelectStmt {
	s.where = append(s.where, preds...)
	return s
}

func (s *SelectStmt) GroupBy(items ...any) *SelectStmt {
	for _, item := range items {
		s.groupBy = append(s.groupBy, toExpr(item))
	}
	return s
}

// OrderBy adds ordering terms. Wrap terms in Desc for descending order.
func (s *SelectStmt) OrderBy(items ...any) *SelectStmt {
	for _, item := range items {
		s.orderBy = append(s.orderBy, toExpr(item))
	}
	return s
}

func (s *SelectStmt) Limit(n int) *SelectStmt {
	s.limit = n
	return s
}

func (s *SelectStmt) Distinct() *SelectStmt {
	s.distinct = true
	return s
}

// Tables returns every table the statement reads from in FROM order.
func (s *SelectStmt) Tables() []*schema.Table {
	tables := s.fromTables()
	for _, j := range s.joins {
		tables = append(tables, j.table)
	}
	return tables
}

// Compile renders the statement. Bound parameters become placeholders (and
// are returned as args) unless opts.LiteralBinds is set.
func (s *SelectStmt) Compile(d dialect.Dialect, opts CompileOptions) (string, []any, error) {
	if s.err != nil {
		return "", nil, s.err
	}

	if len(s.items) == 0 {
		return "", nil, errors.Wrap(ErrNoColumns, "select list is empty")
	}

	c := &compiler{d: d, opts: opts}

	cols, err := c.list(s.items)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	if s.distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(cols)

	if from := s.fromTables(); len(from) > 0 {
		names := make([]string, len(from))
		for i, t := range from {
			names[i] = c.tableName(t)
		}

		sb.WriteString(" FROM ")
		sb.WriteString(names[0])
		for _, j := range s.joins {
			on, err := j.on.compile(c)
			if err != nil {
				return "", nil, err
			}
			sb.WriteString(" " + j.kind + " " + c.tableName(j.table) + " ON " + on)
		}

		if len(names) > 1 {
			sb.WriteString(", " + strings.Join(names[1:], ", "))
		}
	}

	if len(s.where) > 0 {
		parts := make([]string, len(s.where))
		for i, w := range s.where {
			if parts[i], err = w.compile(c); err != nil {
				return "", nil, err
			}
		}
		sb.WriteString(" WHERE " + strings.Join(parts, " AND "))
	}

	if len(s.groupBy) > 0 {
		group, err := c.list(s.groupBy)
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(" GROUP BY " + group)
	}

	if len(s.orderBy) > 0 {
		order, err := c.list(s.orderBy)
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(" ORDER BY " + order)
	}

	if s.limit > 0 {
		sb.WriteString(" LIMIT " + strconv.Itoa(s.limit))
	}

	return sb.String(), c.args, nil
}

// fromTables returns explicit FROM tables followed by tables referenced from
// the select list and WHERE clause, in first seen order. Joined tables are
// excluded.
func (s *SelectStmt) fromTables() []*schema.Table {
	seen := make(map[*schema.Table]bool)
	for _, j := range s.joins {
		seen[j.table] = true
	}

	var tables []*schema.Table
	add := func(t *schema.Table) {
		if !seen[t] {
			seen[t] = true
			tables = append(tables, t)
		}
	}

	for _, t := range s.from {
		add(t)
	}
	for _, e := range s.items {
		e.walk(add)
	}
	for _, e := range s.where {
		e.walk(add)
	}
	return tables
}
