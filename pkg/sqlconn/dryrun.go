package sqlconn

import (
	"context"
	"fmt"
	"io"

	"github.com/pseudomuto/viewkeeper/pkg/dialect"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
)

// DryRun records statements instead of running them. Nothing exists in a dry
// run, so check-first passes create (and never drop) everything.
type DryRun struct {
	dialect    dialect.Dialect
	out        io.Writer
	statements []string
}

// NewDryRun returns a recorder for d. When out is not nil every statement is
// also written to it terminated by ";\n".
func NewDryRun(d dialect.Dialect, out io.Writer) *DryRun {
	return &DryRun{dialect: d, out: out}
}

func (r *DryRun) Dialect() dialect.Dialect { return r.dialect }

// Statements returns the recorded statements in execution order.
func (r *DryRun) Statements() []string {
	out := make([]string, len(r.statements))
	copy(out, r.statements)
	return out
}

func (r *DryRun) Exec(_ context.Context, query string, _ ...any) error {
	r.statements = append(r.statements, query)
	if r.out == nil {
		return nil
	}

	_, err := fmt.Fprintf(r.out, "%s;\n", query)
	return err
}

func (r *DryRun) HasRelation(context.Context, string, string, schema.Kind) (bool, error) {
	return false, nil
}
