package session

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/dialect"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
)

// ErrNoDatabase is returned when a session without a database handle needs a
// transaction.
var ErrNoDatabase = errors.New("session has no database")

type (
	// Session is a small unit of work over a database handle.
	//
	// Writes queued with Stage or Insert are held in memory until Flush, which
	// runs them in order inside a transaction that is begun lazily on first
	// use. Execute runs a compiled statement in the same transaction so it
	// observes everything flushed before it. Commit flushes and commits;
	// Rollback discards pending writes and rolls the transaction back.
	//
	// A Session is not safe for concurrent use.
	//
	// Example usage:
	//
	//	sess := session.New(db, dialect.MustGet("postgresql"))
	//	sess.Insert("orders", map[string]any{"id": 1, "total": 9.99})
	//
	//	if err := view.Refresh(ctx, sess, "order_totals", false); err != nil {
	//		_ = sess.Rollback()
	//		return err
	//	}
	//
	//	return sess.Commit(ctx)
	Session struct {
		db      *sql.DB
		dialect dialect.Dialect
		tx      *sql.Tx
		pending []statement
	}

	statement struct {
		sql  string
		args []any
	}
)

func New(db *sql.DB, d dialect.Dialect) *Session {
	return &Session{db: db, dialect: d}
}

func (s *Session) Dialect() dialect.Dialect { return s.dialect }

// Pending returns the number of queued writes.
func (s *Session) Pending() int { return len(s.pending) }

// InTransaction reports whether a transaction has been begun.
func (s *Session) InTransaction() bool { return s.tx != nil }

// Stage queues a raw statement.
func (s *Session) Stage(sql string, args ...any) {
	s.pending = append(s.pending, statement{sql: sql, args: args})
}

// Insert queues an INSERT of values into table. table may be schema
// qualified (schema.name). Columns are written in sorted order.
func (s *Session) Insert(table string, values map[string]any) {
	cols := make([]string, 0, len(values))
	for c := range values {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		names[i] = s.dialect.QuoteIfNeeded(c)
		marks[i] = s.dialect.Placeholder(i + 1)
		args[i] = values[c]
	}

	sch, name := schema.SplitKey(table)
	s.Stage(
		"INSERT INTO "+schema.QualifiedName(s.dialect, sch, name)+
			" ("+strings.Join(names, ", ")+") VALUES ("+strings.Join(marks, ", ")+")",
		args...,
	)
}

// Flush runs queued writes in order. Writes that ran are removed from the
// queue; on error the failing write and those after it stay queued.
func (s *Session) Flush(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}

	for len(s.pending) > 0 {
		stmt := s.pending[0]
		if _, err := tx.ExecContext(ctx, stmt.sql, stmt.args...); err != nil {
			return errors.Wrapf(err, "failed to execute: %s", stmt.sql)
		}
		s.pending = s.pending[1:]
	}
	return nil
}

// Execute compiles stmt for the session's dialect and runs it in the
// session's transaction. Errors from the database are returned unwrapped.
func (s *Session) Execute(ctx context.Context, stmt schema.Executable) error {
	query, err := stmt.Compile(s.dialect)
	if err != nil {
		return errors.Wrap(err, "failed to compile statement")
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, query)
	return err
}

// Commit flushes pending writes and commits. The session can be reused
// afterwards.
func (s *Session) Commit(ctx context.Context) error {
	if err := s.Flush(ctx); err != nil {
		return err
	}

	if s.tx == nil {
		return nil
	}

	tx := s.tx
	s.tx = nil
	return errors.Wrap(tx.Commit(), "failed to commit")
}

// Rollback drops pending writes and rolls back the open transaction, if any.
func (s *Session) Rollback() error {
	s.pending = nil
	if s.tx == nil {
		return nil
	}

	tx := s.tx
	s.tx = nil
	return errors.Wrap(tx.Rollback(), "failed to roll back")
}

func (s *Session) begin(ctx context.Context) (*sql.Tx, error) {
	if s.tx != nil {
		return s.tx, nil
	}

	if s.db == nil {
		return nil, ErrNoDatabase
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}

	s.tx = tx
	return tx, nil
}
