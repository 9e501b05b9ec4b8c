package schema

import "context"

// Index is a secondary index on a relation's columns.
type Index struct {
	name    string
	columns []string
	unique  bool
	table   *Table
}

// NewIndex creates a detached index over columns. It is bound to a relation
// by NewTable or Table.AppendIndex.
func NewIndex(name string, columns ...string) *Index {
	return &Index{name: name, columns: columns}
}

// Unique marks the index unique and returns it.
func (ix *Index) Unique() *Index {
	ix.unique = true
	return ix
}

func (ix *Index) Name() string { return ix.name }
func (ix *Index) Columns() []string { return ix.columns }
func (ix *Index) IsUnique() bool { return ix.unique }
func (ix *Index) Table() *Table { return ix.table }

// Create issues CREATE INDEX.
func (ix *Index) Create(ctx context.Context, conn Conn) error {
	return ExecuteDDL(ctx, conn, NewCreateIndex(ix))
}

// Drop issues DROP INDEX.
func (ix *Index) Drop(ctx context.Context, conn Conn) error {
	return ExecuteDDL(ctx, conn, NewDropIndex(ix, conn.Dialect().Features().DropIndexIfExists))
}

func (ix *Index) apply(t *Table) { t.AppendIndex(ix) }
