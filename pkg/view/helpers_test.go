package view_test

import (
	"context"
	"testing"

	"github.com/pseudomuto/viewkeeper/pkg/dialect"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
	"github.com/stretchr/testify/require"
)

type mockConn struct {
	dialect  dialect.Dialect
	execs    []string
	existing map[string]bool
	execFunc func(string) error
}

func newMockConn(name string) *mockConn {
	return &mockConn{
		dialect:  dialect.MustGet(name),
		existing: make(map[string]bool),
	}
}

func (m *mockConn) Exec(_ context.Context, sql string, _ ...any) error {
	m.execs = append(m.execs, sql)
	if m.execFunc != nil {
		return m.execFunc(sql)
	}
	return nil
}

func (m *mockConn) Dialect() dialect.Dialect { return m.dialect }

func (m *mockConn) HasRelation(_ context.Context, s, name string, _ schema.Kind) (bool, error) {
	return m.existing[schema.TableKey(s, name)], nil
}

// baseTable registers t(id INTEGER PRIMARY KEY) in md.
func baseTable(t *testing.T, md *schema.MetaData) *schema.Table {
	t.Helper()

	tbl, err := schema.NewTable(md, "t", schema.NewColumn("id", schema.Integer(), schema.PrimaryKey()))
	require.NoError(t, err)
	return tbl
}

func usersTable(t *testing.T, md *schema.MetaData) *schema.Table {
	t.Helper()

	users, err := schema.NewTable(md, "users",
		schema.NewColumn("id", schema.BigInteger(), schema.PrimaryKey()),
		schema.NewColumn("full_name", schema.Text()),
		schema.NewColumn("email", schema.String(255)),
	)
	require.NoError(t, err)
	return users
}
