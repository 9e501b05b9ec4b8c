package view

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
)

// Session is the unit of work Refresh runs against. *session.Session
// implements it.
type Session interface {
	// Flush writes pending changes so the refresh can see them.
	Flush(ctx context.Context) error
	// Execute compiles and runs a statement.
	Execute(ctx context.Context, stmt schema.Executable) error
}

// Refresh flushes sess and then refreshes the materialized view called name.
// Execution errors are returned as is.
func Refresh(ctx context.Context, sess Session, name string, concurrently bool) error {
	return RefreshStatement(ctx, sess, NewRefreshMaterializedView(name, concurrently))
}

// RefreshStatement is Refresh for a prepared statement, e.g. one carrying a
// schema qualifier.
func RefreshStatement(ctx context.Context, sess Session, stmt *RefreshMaterializedView) error {
	if err := sess.Flush(ctx); err != nil {
		return errors.Wrap(err, "failed to flush session")
	}

	return sess.Execute(ctx, stmt)
}
