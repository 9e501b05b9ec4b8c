package view_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/dialect"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
	"github.com/pseudomuto/viewkeeper/pkg/view"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	dialect  dialect.Dialect
	calls    []string
	flushErr error
	execErr  error
}

func (s *fakeSession) Flush(context.Context) error {
	s.calls = append(s.calls, "flush")
	return s.flushErr
}

func (s *fakeSession) Execute(_ context.Context, stmt schema.Executable) error {
	sql, err := stmt.Compile(s.dialect)
	if err != nil {
		return err
	}

	s.calls = append(s.calls, "execute: "+sql)
	return s.execErr
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("flushes then refreshes", func(t *testing.T) {
		sess := &fakeSession{dialect: dialect.MustGet("postgresql")}
		require.NoError(t, view.Refresh(ctx, sess, "v1", true))
		require.Equal(t, []string{
			"flush",
			`execute: REFRESH MATERIALIZED VIEW CONCURRENTLY "v1"`,
		}, sess.calls)
	})

	t.Run("plain refresh", func(t *testing.T) {
		sess := &fakeSession{dialect: dialect.MustGet("postgresql")}
		require.NoError(t, view.Refresh(ctx, sess, "v1", false))
		require.Equal(t, []string{"flush", `execute: REFRESH MATERIALIZED VIEW "v1"`}, sess.calls)
	})

	t.Run("schema qualified", func(t *testing.T) {
		sess := &fakeSession{dialect: dialect.MustGet("postgresql")}
		stmt := &view.RefreshMaterializedView{Name: "v1", Schema: "reporting"}
		require.NoError(t, view.RefreshStatement(ctx, sess, stmt))
		require.Equal(t, []string{"flush", `execute: REFRESH MATERIALIZED VIEW "reporting"."v1"`}, sess.calls)
	})

	t.Run("flush errors skip execution", func(t *testing.T) {
		sess := &fakeSession{dialect: dialect.MustGet("postgresql"), flushErr: errors.New("boom")}
		err := view.Refresh(ctx, sess, "v1", false)
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to flush session")
		require.Equal(t, []string{"flush"}, sess.calls)
	})

	t.Run("execution errors propagate unchanged", func(t *testing.T) {
		execErr := errors.New("relation does not exist")
		sess := &fakeSession{dialect: dialect.MustGet("postgresql"), execErr: execErr}
		err := view.Refresh(ctx, sess, "v1", false)
		require.Same(t, execErr, err)
	})

	t.Run("unsupported dialect", func(t *testing.T) {
		sess := &fakeSession{dialect: dialect.MustGet("sqlite")}
		err := view.Refresh(ctx, sess, "v1", false)
		require.True(t, errors.Is(err, dialect.ErrUnsupported))
	})
}
