package schema

type (
	// Column describes a single column of a relation.
	//
	// Name is the column name in the database. Key is how the column is
	// exposed to callers (Table.Column looks columns up by key) and defaults
	// to Name.
	Column struct {
		name       string
		key        string
		typ        Type
		primaryKey bool
		notNull    bool
		ref        *ForeignKey
		table      *Table
	}

	// ForeignKey points a column at a column of another relation. Table is the
	// referenced relation's key (schema.name or name).
	ForeignKey struct {
		Table  string
		Column string
	}

	// ColumnOption customizes a column created by NewColumn.
	ColumnOption func(*Column)
)

// PrimaryKey marks the column as part of the primary key. Primary key columns
// are always NOT NULL.
func PrimaryKey() ColumnOption {
	return func(c *Column) {
		c.primaryKey = true
		c.notNull = true
	}
}

// NotNull marks the column as not nullable.
func NotNull() ColumnOption {
	return func(c *Column) { c.notNull = true }
}

// Key sets the exposed key of the column.
func Key(key string) ColumnOption {
	return func(c *Column) { c.key = key }
}

// References adds a foreign key to table(column).
func References(table, column string) ColumnOption {
	return func(c *Column) { c.ref = &ForeignKey{Table: table, Column: column} }
}

// NewColumn creates a detached column. It is bound to a table when passed to
// NewTable or Table.AppendColumn.
func NewColumn(name string, typ Type, opts ...ColumnOption) *Column {
	c := &Column{name: name, typ: typ}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Column) Name() string { return c.name }
func (c *Column) Type() Type { return c.typ }
func (c *Column) IsPrimaryKey() bool { return c.primaryKey }
func (c *Column) Nullable() bool { return !c.notNull }
func (c *Column) References() *ForeignKey { return c.ref }
func (c *Column) Table() *Table { return c.table }

// Key returns the exposed key, falling back to the name.
func (c *Column) Key() string {
	if c.key != "" {
		return c.key
	}
	return c.name
}

// Copy returns a detached copy of c with opts applied on top.
func (c *Column) Copy(opts ...ColumnOption) *Column {
	cp := &Column{
		name:       c.name,
		key:        c.key,
		typ:        c.typ,
		primaryKey: c.primaryKey,
		notNull:    c.notNull,
	}
	if c.ref != nil {
		ref := *c.ref
		cp.ref = &ref
	}

	for _, opt := range opts {
		opt(cp)
	}
	return cp
}

func (c *Column) apply(t *Table) { t.AppendColumn(c) }
