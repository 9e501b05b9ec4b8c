package view_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/query"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
	"github.com/pseudomuto/viewkeeper/pkg/view"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tbl := baseTable(t, nil)
	sel := query.Select(tbl.Column("id"))

	t.Run("materialized replace is rejected", func(t *testing.T) {
		_, err := view.New("v1", nil, sel, view.Options{Materialized: true, Replace: true})
		require.True(t, errors.Is(err, view.ErrMaterializedReplace))
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := view.New("", nil, sel, view.Options{})
		require.True(t, errors.Is(err, schema.ErrEmptyName))
	})

	t.Run("duplicate key", func(t *testing.T) {
		md := schema.NewMetaData()
		_, err := view.New("v1", md, sel, view.Options{})
		require.NoError(t, err)

		_, err = view.New("v1", md, sel, view.Options{})
		require.True(t, errors.Is(err, schema.ErrDuplicateRelation))
	})

	t.Run("private container", func(t *testing.T) {
		v, err := view.New("v1", nil, sel, view.Options{Schema: "reporting"})
		require.NoError(t, err)
		require.NotNil(t, v.MetaData())
		require.Equal(t, "reporting.v1", v.Key())

		rel, ok := v.MetaData().Get("reporting.v1")
		require.True(t, ok)
		require.Same(t, v, rel)
	})

	t.Run("accessors", func(t *testing.T) {
		opts := view.DialectOptions{ClickHouse: view.ClickHouseOptions{OnCluster: "prod"}}
		v, err := view.New("v1", nil, sel, view.Options{Replace: true, Cascade: true, DialectOptions: opts})
		require.NoError(t, err)

		require.Equal(t, "v1", v.Name())
		require.Equal(t, schema.KindView, v.Kind())
		require.True(t, schema.IsView(v))
		require.True(t, v.Replace())
		require.True(t, v.Cascade())
		require.False(t, v.Materialized())
		require.Equal(t, opts, v.DialectOptions())
		require.Same(t, sel, v.Selectable())
	})
}

func TestView_Dependencies(t *testing.T) {
	md := schema.NewMetaData()
	users := usersTable(t, md)
	orders, err := schema.NewTable(md, "orders",
		schema.NewColumn("id", schema.BigInteger(), schema.PrimaryKey()),
		schema.NewColumn("user_id", schema.BigInteger()),
	)
	require.NoError(t, err)

	sel := query.Select(users.Column("id"), orders.Column("id")).
		Join(orders, query.Eq(orders.Column("user_id"), users.Column("id")))

	v, err := view.New("user_orders", nil, sel, view.Options{
		Columns: []*schema.Column{schema.NewColumn("account_id", schema.BigInteger(), schema.References("accounts", "id"))},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"users", "orders", "accounts"}, v.Dependencies())

	v.SetSelectable(query.Text("SELECT 1"))
	require.Equal(t, []string{"accounts"}, v.Dependencies())
}

func TestView_CreateDrop(t *testing.T) {
	ctx := context.Background()
	tbl := baseTable(t, nil)

	v, err := view.New("v1", nil, query.Select(tbl.Column("id")), view.Options{
		Materialized: true,
		Cascade:      true,
		Indexes:      []*schema.Index{schema.NewIndex("ix_v1_id", "id")},
	})
	require.NoError(t, err)

	conn := newMockConn("postgresql")
	require.NoError(t, v.Create(ctx, conn, false))
	require.NoError(t, v.Drop(ctx, conn, false))
	require.Equal(t, []string{
		`CREATE MATERIALIZED VIEW "v1" AS SELECT t.id FROM t`,
		`DROP MATERIALIZED VIEW IF EXISTS "v1" CASCADE`,
	}, conn.execs)

	t.Run("check first", func(t *testing.T) {
		conn := newMockConn("postgresql")
		require.NoError(t, v.Drop(ctx, conn, true))
		require.Empty(t, conn.execs)

		conn.existing["v1"] = true
		require.NoError(t, v.Create(ctx, conn, true))
		require.Empty(t, conn.execs)
	})

	t.Run("unsupported dialect", func(t *testing.T) {
		err := v.Create(ctx, newMockConn("sqlite"), false)
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create view v1")
	})
}

func TestView_Events(t *testing.T) {
	tbl := baseTable(t, nil)
	v, err := view.New("v1", nil, query.Select(tbl.Column("id")), view.Options{})
	require.NoError(t, err)

	var fired []string
	record := func(name string) schema.Hook {
		return func(context.Context, schema.Conn) error {
			fired = append(fired, name)
			return nil
		}
	}

	v.Listen(schema.BeforeCreate, record("before_create"))
	v.Listen(schema.AfterCreate, record("after_create"))
	v.Listen(schema.BeforeDrop, record("before_drop"))
	v.Listen(schema.AfterDrop, record("after_drop"))

	conn := newMockConn("sqlite")
	conn.execFunc = func(sql string) error {
		fired = append(fired, sql)
		return nil
	}

	require.NoError(t, v.Create(context.Background(), conn, false))
	require.NoError(t, v.Drop(context.Background(), conn, false))
	require.Equal(t, []string{
		"before_create",
		`CREATE VIEW "v1" AS SELECT t.id FROM t`,
		"after_create",
		"before_drop",
		`DROP VIEW IF EXISTS "v1"`,
		"after_drop",
	}, fired)
}
