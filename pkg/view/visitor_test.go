package view_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/query"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
	"github.com/pseudomuto/viewkeeper/pkg/view"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

func reportingMetaData(t *testing.T) *schema.MetaData {
	t.Helper()

	md := schema.NewMetaData()
	users := usersTable(t, nil)
	orders, err := schema.NewTable(nil, "orders",
		schema.NewColumn("id", schema.BigInteger(), schema.PrimaryKey()),
		schema.NewColumn("user_id", schema.BigInteger(), schema.References("users", "id")),
		schema.NewColumn("total", schema.Numeric(10, 2)),
	)
	require.NoError(t, err)

	// Registered view first so ordering has to come from dependencies.
	sel := query.Select(
		users.Column("id"),
		query.Label("order_total", query.Func("sum", orders.Column("total"))),
	).
		Join(orders, query.Eq(orders.Column("user_id"), users.Column("id"))).
		GroupBy(users.Column("id"))

	_, err = view.FromSelectable("user_totals", sel, md, view.Options{
		Materialized: true,
		Cascade:      true,
		Indexes:      []*schema.Index{schema.NewIndex("ix_user_totals_id", "id").Unique()},
		DialectOptions: view.DialectOptions{
			PostgreSQL: view.PostgreSQLOptions{With: map[string]string{"fillfactor": "70"}},
		},
	})
	require.NoError(t, err)

	require.NoError(t, md.Add(users))
	require.NoError(t, md.Add(orders))
	return md
}

func TestCreateAll(t *testing.T) {
	ctx := context.Background()
	md := reportingMetaData(t)

	conn := newMockConn("postgresql")
	require.NoError(t, view.CreateAll(ctx, conn, md, false))

	conn2 := newMockConn("postgresql")
	require.NoError(t, view.DropAll(ctx, conn2, md, false))

	golden.Assert(t, strings.Join(conn.execs, ";\n")+";\n", "create_all.sql")
	golden.Assert(t, strings.Join(conn2.execs, ";\n")+";\n", "drop_all.sql")
}

func TestCreateAll_CheckFirst(t *testing.T) {
	ctx := context.Background()
	md := reportingMetaData(t)

	conn := newMockConn("postgresql")
	conn.existing["users"] = true
	conn.existing["user_totals"] = true
	require.NoError(t, view.CreateAll(ctx, conn, md, true))
	require.Len(t, conn.execs, 1)
	require.True(t, strings.HasPrefix(conn.execs[0], `CREATE TABLE "orders"`))

	conn = newMockConn("postgresql")
	conn.existing["user_totals"] = true
	require.NoError(t, view.DropAll(ctx, conn, md, true))
	require.Equal(t, []string{`DROP MATERIALIZED VIEW IF EXISTS "user_totals" CASCADE`}, conn.execs)
}

func TestSchemaPassRejectsViews(t *testing.T) {
	md := reportingMetaData(t)

	err := md.CreateAll(context.Background(), newMockConn("postgresql"))
	require.True(t, errors.Is(err, schema.ErrUnhandledRelation))
}
