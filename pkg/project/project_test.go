package project_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/config"
	"github.com/pseudomuto/viewkeeper/pkg/dialect"
	"github.com/pseudomuto/viewkeeper/pkg/project"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
	"github.com/pseudomuto/viewkeeper/pkg/sqlconn"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

func loadProject(t *testing.T, dialectName string) *project.Project {
	t.Helper()

	cfg, err := config.LoadConfigFile("testdata/reporting.yaml")
	require.NoError(t, err)
	cfg.Dialect = dialectName

	p, err := project.New(cfg)
	require.NoError(t, err)
	return p
}

func TestProject_Render(t *testing.T) {
	for _, name := range []string{"postgresql", "clickhouse"} {
		t.Run(name, func(t *testing.T) {
			p := loadProject(t, name)

			var buf bytes.Buffer
			require.NoError(t, p.Render(context.Background(), &buf, false))
			golden.Assert(t, buf.String(), name+"_create.sql")

			buf.Reset()
			require.NoError(t, p.Render(context.Background(), &buf, true))
			golden.Assert(t, buf.String(), name+"_drop.sql")
		})
	}
}

func TestProject_RenderUnsupported(t *testing.T) {
	p := loadProject(t, "sqlite")

	var buf bytes.Buffer
	err := p.Render(context.Background(), &buf, false)
	require.Error(t, err)
	require.True(t, errors.Is(err, dialect.ErrUnsupported))
	require.Contains(t, err.Error(), "failed to create user_totals")

	// tables were written before the failure
	require.Contains(t, buf.String(), `CREATE TABLE "orders"`)
}

func TestProject_Views(t *testing.T) {
	p := loadProject(t, "postgresql")
	require.Equal(t, "postgresql", p.Dialect().Name())
	require.Len(t, p.Views(), 2)

	totals, ok := p.View("user_totals")
	require.True(t, ok)
	require.True(t, totals.Materialized())
	require.True(t, totals.Cascade())
	require.Equal(t, []string{"id"}, totals.PrimaryKey())
	require.Len(t, totals.Indexes(), 1)
	require.Equal(t, map[string]string{"fillfactor": "70"}, totals.DialectOptions().PostgreSQL.With)
	require.Equal(t, "prod", totals.DialectOptions().ClickHouse.OnCluster)

	emails, ok := p.View("user_emails")
	require.True(t, ok)
	require.False(t, emails.Materialized())
	require.False(t, emails.Cascade())

	_, ok = p.View("orders")
	require.False(t, ok)

	rel, ok := p.MetaData().Get("user_totals")
	require.True(t, ok)
	require.Equal(t, schema.KindMaterializedView, rel.Kind())
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{
			name: "bad column",
			yaml: "tables: [{name: users, columns: [id]}]",
			msg:  "failed to build table users",
		},
		{
			name: "bad index",
			yaml: "tables: [{name: users, columns: [id INT], indexes: [ix (id)]}]",
			msg:  "failed to parse index",
		},
		{
			name: "view without columns",
			yaml: "views: [{name: v1, query: SELECT 1}]",
			msg:  "failed to build view v1",
		},
		{
			name: "materialized replace",
			yaml: "views: [{name: v1, query: SELECT 1, materialized: true, replace: true, columns: [one INT]}]",
			msg:  "cannot use CREATE OR REPLACE with materialized views",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.LoadConfig(strings.NewReader(tt.yaml))
			require.NoError(t, err)

			p, err := project.New(cfg)
			require.Error(t, err)
			require.Nil(t, p)
			require.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestProject_DialectMismatch(t *testing.T) {
	p := loadProject(t, "postgresql")
	rec := sqlconn.NewDryRun(dialect.MustGet("clickhouse"), nil)

	err := p.CreateAll(context.Background(), rec, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "connection dialect clickhouse does not match project dialect postgresql")
	require.Empty(t, rec.Statements())

	require.Error(t, p.DropAll(context.Background(), rec, false))
}
