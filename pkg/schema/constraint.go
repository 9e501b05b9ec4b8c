package schema

// Constraint is a table level constraint.
type Constraint interface {
	TableItem
	constraint()
}

// PrimaryKeyConstraint declares a (possibly composite) primary key by column
// name.
type PrimaryKeyConstraint struct {
	columns []string
}

// NewPrimaryKeyConstraint returns a primary key over columns.
func NewPrimaryKeyConstraint(columns ...string) *PrimaryKeyConstraint {
	return &PrimaryKeyConstraint{columns: columns}
}

// Columns returns the constrained column names in declaration order.
func (c *PrimaryKeyConstraint) Columns() []string { return c.columns }

func (c *PrimaryKeyConstraint) constraint() {}

func (c *PrimaryKeyConstraint) apply(t *Table) { t.AppendConstraint(c) }
