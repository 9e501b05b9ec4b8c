package query

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/dialect"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
)

// TextStmt is a hand written query with :name parameters. Its output columns
// can't be inferred so they are declared with Columns.
type TextStmt struct {
	sql     string
	columns []*schema.Column
	binds   map[string]any
}

// Text wraps sql as a Selectable.
//
// Example:
//
//	q := query.Text("SELECT id, name FROM users WHERE status = :status").
//		Columns(
//			schema.NewColumn("id", schema.BigInteger(), schema.PrimaryKey()),
//			schema.NewColumn("name", schema.Text()),
//		).
//		Bind("status", "active")
func Text(sql string) *TextStmt {
	return &TextStmt{sql: sql, binds: make(map[string]any)}
}

// Columns declares the output columns of the query.
func (s *TextStmt) Columns(cols ...*schema.Column) *TextStmt {
	s.columns = append(s.columns, cols...)
	return s
}

// Bind sets the value of the :name parameter.
func (s *TextStmt) Bind(name string, v any) *TextStmt {
	s.binds[name] = v
	return s
}

// Compile substitutes parameters. PostgreSQL casts (::type), quoted strings
// and identifiers, and comments are left alone.
func (s *TextStmt) Compile(d dialect.Dialect, opts CompileOptions) (string, []any, error) {
	c := &compiler{d: d, opts: opts}

	var sb strings.Builder
	src := s.sql

	for i := 0; i < len(src); i++ {
		ch := src[i]

		switch {
		case ch == '\'' || ch == '"' || ch == '`':
			j := skipQuoted(src, i)
			sb.WriteString(src[i:j])
			i = j - 1

		case strings.HasPrefix(src[i:], "--"):
			j := strings.IndexByte(src[i:], '\n')
			if j < 0 {
				j = len(src) - i
			}
			sb.WriteString(src[i : i+j])
			i += j - 1

		case strings.HasPrefix(src[i:], "/*"):
			j := strings.Index(src[i+2:], "*/")
			if j < 0 {
				j = len(src) - i
			} else {
				j += 4
			}
			sb.WriteString(src[i : i+j])
			i += j - 1

		case ch != ':':
			sb.WriteByte(ch)

		case i+1 < len(src) && src[i+1] == ':':
			sb.WriteString("::")
			i++

		case i > 0 && src[i-1] == ':':
			sb.WriteByte(ch)

		default:
			j := i + 1
			for j < len(src) && isIdentByte(src[j]) {
				j++
			}

			if j == i+1 {
				sb.WriteByte(ch)
				continue
			}

			name := src[i+1 : j]
			v, ok := s.binds[name]
			if !ok {
				return "", nil, errors.Wrapf(ErrUnboundParameter, ":%s", name)
			}

			rendered, err := c.bind(name, v)
			if err != nil {
				return "", nil, err
			}
			sb.WriteString(rendered)
			i = j - 1
		}
	}

	return sb.String(), c.args, nil
}

// skipQuoted returns the index just past the quoted run starting at src[i].
// A doubled quote is part of the run. Unterminated runs end at len(src).
func skipQuoted(src string, i int) int {
	q := src[i]
	for j := i + 1; j < len(src); j++ {
		if src[j] != q {
			continue
		}
		if j+1 < len(src) && src[j+1] == q {
			j++
			continue
		}
		return j + 1
	}

	return len(src)
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
