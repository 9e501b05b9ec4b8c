package schema

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/dialect"
)

type (
	// Conn is the narrow connection interface DDL is executed through.
	// Implementations live in pkg/sqlconn and pkg/clickhouse.
	Conn interface {
		// Exec runs a single statement.
		Exec(ctx context.Context, sql string, args ...any) error
		// Dialect returns the dialect statements are compiled for.
		Dialect() dialect.Dialect
		// HasRelation reports whether a relation of the given kind exists.
		HasRelation(ctx context.Context, schema, name string, kind Kind) (bool, error)
	}

	// Executable is a statement that can be compiled for a dialect.
	Executable interface {
		Compile(d dialect.Dialect) (string, error)
	}

	// DDLElement is an Executable that targets a relation.
	DDLElement interface {
		Executable
		Target() Relation
	}

	// EventTarget is anything that fires lifecycle events.
	EventTarget interface {
		Fire(ctx context.Context, ev Event, conn Conn) error
	}
)

// ExecuteDDL compiles stmt for the connection's dialect and runs it.
func ExecuteDDL(ctx context.Context, conn Conn, stmt Executable) error {
	sql, err := stmt.Compile(conn.Dialect())
	if err != nil {
		return errors.Wrap(err, "failed to compile statement")
	}

	return errors.Wrapf(conn.Exec(ctx, sql), "failed to execute: %s", sql)
}

// WithDDLEvents fires before on target, runs fn and fires after. Nothing after
// a failing step is run.
func WithDDLEvents(ctx context.Context, conn Conn, target EventTarget, before, after Event, fn func() error) error {
	if err := target.Fire(ctx, before, conn); err != nil {
		return err
	}

	if err := fn(); err != nil {
		return err
	}

	return target.Fire(ctx, after, conn)
}
