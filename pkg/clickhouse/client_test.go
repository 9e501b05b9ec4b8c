package clickhouse_test

import (
	"context"
	"testing"

	"github.com/pseudomuto/viewkeeper/pkg/clickhouse"
	"github.com/pseudomuto/viewkeeper/pkg/docker"
	"github.com/pseudomuto/viewkeeper/pkg/query"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
	"github.com/pseudomuto/viewkeeper/pkg/view"
	"github.com/stretchr/testify/require"
)

func TestClient_ViewLifecycle(t *testing.T) {
	container := docker.StartForTest(t, docker.DockerOptions{})

	dsn, err := container.GetDSN()
	require.NoError(t, err)

	ctx := context.Background()
	client, err := clickhouse.NewClient(ctx, dsn)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	require.Equal(t, "clickhouse", client.Dialect().Name())

	md := schema.NewMetaData()
	events, err := schema.NewTable(md, "events",
		schema.NewColumn("id", schema.BigInteger(), schema.PrimaryKey()),
		schema.NewColumn("kind", schema.String(32), schema.NotNull()),
	)
	require.NoError(t, err)

	_, err = view.Define("event_kinds", query.Select(events.Column("id"), events.Column("kind")), md, view.Options{})
	require.NoError(t, err)

	_, err = view.DefineMaterialized("event_copy", query.Select(events.Column("id"), events.Column("kind")), md, view.Options{
		DialectOptions: view.DialectOptions{
			ClickHouse: view.ClickHouseOptions{Engine: "MergeTree() ORDER BY id"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, md.CreateAll(ctx, client))
	requireRelation(t, client, "events", schema.KindTable, true)
	requireRelation(t, client, "event_kinds", schema.KindView, true)
	requireRelation(t, client, "event_copy", schema.KindMaterializedView, true)
	requireRelation(t, client, "event_copy", schema.KindView, false)

	version, err := client.GetVersion(ctx)
	require.NoError(t, err)
	require.True(t, version.IsAtLeast(20, 1))

	require.NoError(t, md.DropAll(ctx, client))
	requireRelation(t, client, "event_copy", schema.KindMaterializedView, false)
	requireRelation(t, client, "event_kinds", schema.KindView, false)
	requireRelation(t, client, "events", schema.KindTable, false)
}

func requireRelation(t *testing.T, conn schema.Conn, name string, kind schema.Kind, exists bool) {
	t.Helper()

	ok, err := conn.HasRelation(context.Background(), "", name, kind)
	require.NoError(t, err)
	require.Equal(t, exists, ok, "%s %s", kind, name)
}
