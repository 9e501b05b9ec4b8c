package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/dialect"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
)

// Expr is a SQL expression usable in a select list, predicate or ordering.
type Expr interface {
	compile(c *compiler) (string, error)
	walk(fn func(*schema.Table))
}

type (
	columnExpr struct {
		col *schema.Column
	}

	// LabelExpr is an expression with an output name.
	LabelExpr struct {
		name string
		expr Expr
	}

	// FuncExpr is a SQL function call.
	FuncExpr struct {
		name string
		args []Expr
		typ  *schema.Type
	}

	literalExpr struct {
		value any
	}

	bindExpr struct {
		name  string
		value any
	}

	rawExpr struct {
		sql string
	}

	binaryExpr struct {
		op          string
		left, right Expr
	}

	listExpr struct {
		op     string
		left   Expr
		values []Expr
	}

	postfixExpr struct {
		op   string
		expr Expr
	}

	boolExpr struct {
		op    string
		exprs []Expr
	}

	notExpr struct {
		expr Expr
	}

	orderExpr struct {
		expr Expr
		desc bool
	}
)

// Col wraps a column as an expression. Builder functions do this implicitly
// for *schema.Column arguments.
func Col(c *schema.Column) Expr { return columnExpr{col: c} }

// Label names expr in the select list (expr AS name).
func Label(name string, expr any) *LabelExpr {
	return &LabelExpr{name: name, expr: toExpr(expr)}
}

// Name returns the output name.
func (l *LabelExpr) Name() string { return l.name }

// Func builds name(args...). Column arguments are rendered qualified and any
// other Go value becomes a bound parameter.
func Func(name string, args ...any) *FuncExpr {
	exprs := make([]Expr, len(args))
	for i, a := range args {
		exprs[i] = toExpr(a)
	}
	return &FuncExpr{name: name, args: exprs}
}

// Typed sets the result type reported when the call is introspected.
func (f *FuncExpr) Typed(t schema.Type) *FuncExpr {
	f.typ = &t
	return f
}

// Literal renders v inline regardless of compile options.
func Literal(v any) Expr { return literalExpr{value: v} }

// Bind is a named bound parameter.
func Bind(name string, v any) Expr { return bindExpr{name: name, value: v} }

// Raw is a verbatim SQL fragment such as * in count(*).
func Raw(sql string) Expr { return rawExpr{sql: sql} }

func Eq(l, r any) Expr { return binary("=", l, r) }
func NotEq(l, r any) Expr { return binary("!=", l, r) }
func Gt(l, r any) Expr { return binary(">", l, r) }
func Gte(l, r any) Expr { return binary(">=", l, r) }
func Lt(l, r any) Expr { return binary("<", l, r) }
func Lte(l, r any) Expr { return binary("<=", l, r) }
func Like(l, r any) Expr { return binary("LIKE", l, r) }

// In renders l IN (values...).
func In(l any, values ...any) Expr {
	exprs := make([]Expr, len(values))
	for i, v := range values {
		exprs[i] = toExpr(v)
	}
	return listExpr{op: "IN", left: toExpr(l), values: exprs}
}

func IsNull(e any) Expr { return postfixExpr{op: "IS NULL", expr: toExpr(e)} }
func IsNotNull(e any) Expr { return postfixExpr{op: "IS NOT NULL", expr: toExpr(e)} }

func And(exprs ...Expr) Expr { return boolExpr{op: "AND", exprs: exprs} }
func Or(exprs ...Expr) Expr { return boolExpr{op: "OR", exprs: exprs} }
func Not(e Expr) Expr { return notExpr{expr: e} }

// Desc orders by e descending.
func Desc(e any) Expr { return orderExpr{expr: toExpr(e), desc: true} }

func binary(op string, l, r any) Expr {
	return binaryExpr{op: op, left: toExpr(l), right: toExpr(r)}
}

func toExpr(v any) Expr {
	switch val := v.(type) {
	case Expr:
		return val
	case *schema.Column:
		return columnExpr{col: val}
	}
	return bindExpr{value: v}
}

func (e columnExpr) compile(c *compiler) (string, error) {
	t := e.col.Table()
	name := c.d.QuoteIfNeeded(e.col.Name())
	if t == nil {
		return name, nil
	}
	return c.tableName(t) + "." + name, nil
}

func (e columnExpr) walk(fn func(*schema.Table)) {
	if t := e.col.Table(); t != nil {
		fn(t)
	}
}

func (l *LabelExpr) compile(c *compiler) (string, error) {
	inner, err := l.expr.compile(c)
	if err != nil {
		return "", err
	}
	return inner + " AS " + c.d.QuoteIfNeeded(l.name), nil
}

func (l *LabelExpr) walk(fn func(*schema.Table)) { l.expr.walk(fn) }

func (f *FuncExpr) compile(c *compiler) (string, error) {
	args, err := c.list(f.args)
	if err != nil {
		return "", err
	}
	return f.name + "(" + args + ")", nil
}

func (f *FuncExpr) walk(fn func(*schema.Table)) {
	for _, a := range f.args {
		a.walk(fn)
	}
}

func (e literalExpr) compile(c *compiler) (string, error) {
	lit, err := c.d.Literal(e.value)
	return lit, errors.Wrap(err, "failed to render literal")
}

func (literalExpr) walk(func(*schema.Table)) {}

func (e bindExpr) compile(c *compiler) (string, error) {
	return c.bind(e.name, e.value)
}

func (bindExpr) walk(func(*schema.Table)) {}

func (e rawExpr) compile(*compiler) (string, error) { return e.sql, nil }

func (rawExpr) walk(func(*schema.Table)) {}

func (e binaryExpr) compile(c *compiler) (string, error) {
	l, err := e.left.compile(c)
	if err != nil {
		return "", err
	}

	r, err := e.right.compile(c)
	if err != nil {
		return "", err
	}
	return l + " " + e.op + " " + r, nil
}

func (e binaryExpr) walk(fn func(*schema.Table)) {
	e.left.walk(fn)
	e.right.walk(fn)
}

func (e listExpr) compile(c *compiler) (string, error) {
	l, err := e.left.compile(c)
	if err != nil {
		return "", err
	}

	values, err := c.list(e.values)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s (%s)", l, e.op, values), nil
}

func (e listExpr) walk(fn func(*schema.Table)) {
	e.left.walk(fn)
	for _, v := range e.values {
		v.walk(fn)
	}
}

func (e postfixExpr) compile(c *compiler) (string, error) {
	inner, err := e.expr.compile(c)
	if err != nil {
		return "", err
	}
	return inner + " " + e.op, nil
}

func (e postfixExpr) walk(fn func(*schema.Table)) { e.expr.walk(fn) }

func (e boolExpr) compile(c *compiler) (string, error) {
	parts := make([]string, len(e.exprs))
	for i, x := range e.exprs {
		s, err := x.compile(c)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}

	if len(parts) == 1 {
		return parts[0], nil
	}
	return "(" + strings.Join(parts, " "+e.op+" ") + ")", nil
}

func (e boolExpr) walk(fn func(*schema.Table)) {
	for _, x := range e.exprs {
		x.walk(fn)
	}
}

func (e notExpr) compile(c *compiler) (string, error) {
	inner, err := e.expr.compile(c)
	if err != nil {
		return "", err
	}
	return "NOT (" + inner + ")", nil
}

func (e notExpr) walk(fn func(*schema.Table)) { e.expr.walk(fn) }

func (e orderExpr) compile(c *compiler) (string, error) {
	inner, err := e.expr.compile(c)
	if err != nil {
		return "", err
	}
	if e.desc {
		return inner + " DESC", nil
	}
	return inner, nil
}

func (e orderExpr) walk(fn func(*schema.Table)) { e.expr.walk(fn) }

// inferType maps a Go value to the column type a literal or bind produces.
func inferType(v any) schema.Type {
	switch v.(type) {
	case bool:
		return schema.Boolean()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return schema.BigInteger()
	case float32, float64:
		return schema.Float()
	case time.Time:
		return schema.DateTime()
	}
	return schema.Text()
}

type compiler struct {
	d    dialect.Dialect
	opts CompileOptions
	args []any
}

func (c *compiler) bind(name string, v any) (string, error) {
	if c.opts.LiteralBinds {
		lit, err := c.d.Literal(v)
		if err != nil {
			if name != "" {
				return "", errors.Wrapf(err, "failed to render parameter %q", name)
			}
			return "", errors.Wrap(err, "failed to render parameter")
		}
		return lit, nil
	}

	c.args = append(c.args, v)
	return c.d.Placeholder(len(c.args)), nil
}

func (c *compiler) list(exprs []Expr) (string, error) {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		s, err := e.compile(c)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

func (c *compiler) tableName(t *schema.Table) string {
	if t.Schema() == "" {
		return c.d.QuoteIfNeeded(t.Name())
	}
	return c.d.QuoteIfNeeded(t.Schema()) + "." + c.d.QuoteIfNeeded(t.Name())
}
