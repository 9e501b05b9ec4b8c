package schema

import (
	"context"

	"github.com/pkg/errors"
)

type (
	// Table is a base table. Views embed it to reuse its column, constraint
	// and index handling.
	Table struct {
		Events

		name        string
		schema      string
		engine      string
		columns     []*Column
		constraints []Constraint
		indexes     []*Index
	}

	// TableItem is anything NewTable accepts after the name: columns,
	// constraints, indexes and table options.
	TableItem interface {
		apply(t *Table)
	}

	tableOption func(*Table)
)

func (o tableOption) apply(t *Table) { o(t) }

// InSchema places the table in the given schema (database for ClickHouse).
func InSchema(schema string) TableItem {
	return tableOption(func(t *Table) { t.schema = schema })
}

// Engine sets the ClickHouse table engine. Other dialects ignore it.
func Engine(engine string) TableItem {
	return tableOption(func(t *Table) { t.engine = engine })
}

// NewTable creates a table and, when md is not nil, registers it.
//
// Example:
//
//	users, err := schema.NewTable(md, "users",
//		schema.NewColumn("id", schema.BigInteger(), schema.PrimaryKey()),
//		schema.NewColumn("email", schema.String(255), schema.NotNull()),
//		schema.NewIndex("ix_users_email", "email").Unique(),
//	)
func NewTable(md *MetaData, name string, items ...TableItem) (*Table, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	t := &Table{name: name}
	for _, item := range items {
		item.apply(t)
	}

	if md != nil {
		if err := md.Add(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) Name() string { return t.name }
func (t *Table) Schema() string { return t.schema }
func (t *Table) Key() string { return TableKey(t.schema, t.name) }
func (t *Table) Kind() Kind { return KindTable }
func (t *Table) Engine() string { return t.engine }
func (t *Table) Columns() []*Column { return t.columns }
func (t *Table) Constraints() []Constraint { return t.constraints }
func (t *Table) Indexes() []*Index { return t.indexes }
func (t *Table) String() string { return t.Key() }

// Column returns the column exposed under key, or nil.
func (t *Table) Column(key string) *Column {
	for _, c := range t.columns {
		if c.Key() == key {
			return c
		}
	}
	return nil
}

// PrimaryKey returns the primary key column names. An explicit
// PrimaryKeyConstraint wins over columns flagged with PrimaryKey().
func (t *Table) PrimaryKey() []string {
	for _, c := range t.constraints {
		if pk, ok := c.(*PrimaryKeyConstraint); ok {
			return pk.Columns()
		}
	}

	var names []string
	for _, c := range t.columns {
		if c.IsPrimaryKey() {
			names = append(names, c.Name())
		}
	}
	return names
}

// Dependencies returns the keys of tables referenced by foreign keys.
func (t *Table) Dependencies() []string {
	seen := make(map[string]bool)
	var deps []string
	for _, c := range t.columns {
		ref := c.References()
		if ref == nil || ref.Table == t.Key() || seen[ref.Table] {
			continue
		}
		seen[ref.Table] = true
		deps = append(deps, ref.Table)
	}
	return deps
}

// AppendColumn binds c to the table.
func (t *Table) AppendColumn(c *Column) {
	c.table = t
	t.columns = append(t.columns, c)
}

func (t *Table) AppendConstraint(c Constraint) {
	t.constraints = append(t.constraints, c)
}

// AppendIndex binds ix to the table.
func (t *Table) AppendIndex(ix *Index) {
	ix.table = t
	t.indexes = append(t.indexes, ix)
}

// Create issues CREATE TABLE (and its indexes) for this table alone.
func (t *Table) Create(ctx context.Context, conn Conn, checkFirst bool) error {
	return errors.Wrapf(NewGenerator(conn, checkFirst).VisitRelation(ctx, t), "failed to create %s", t.Key())
}

// Drop issues DROP TABLE for this table alone.
func (t *Table) Drop(ctx context.Context, conn Conn, checkFirst bool) error {
	return errors.Wrapf(NewDropper(conn, checkFirst).VisitRelation(ctx, t), "failed to drop %s", t.Key())
}
