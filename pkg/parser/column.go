package parser

import (
	"strings"

	"github.com/pseudomuto/viewkeeper/pkg/dialect"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
	"github.com/pseudomuto/viewkeeper/pkg/utils"
)

// typeAliases maps the spellings accepted in declarations to generic type
// names. Anything else is passed through to the dialect verbatim.
var typeAliases = map[string]string{
	"INT":       dialect.TypeInteger,
	"INT4":      dialect.TypeInteger,
	"INTEGER":   dialect.TypeInteger,
	"BIGINT":    dialect.TypeBigInteger,
	"INT8":      dialect.TypeBigInteger,
	"SMALLINT":  dialect.TypeSmallInteger,
	"INT2":      dialect.TypeSmallInteger,
	"VARCHAR":   dialect.TypeString,
	"STRING":    dialect.TypeString,
	"TEXT":      dialect.TypeText,
	"BOOL":      dialect.TypeBoolean,
	"BOOLEAN":   dialect.TypeBoolean,
	"FLOAT":     dialect.TypeFloat,
	"DOUBLE":    dialect.TypeFloat,
	"REAL":      dialect.TypeFloat,
	"NUMERIC":   dialect.TypeNumeric,
	"DECIMAL":   dialect.TypeNumeric,
	"DATE":      dialect.TypeDate,
	"DATETIME":  dialect.TypeDateTime,
	"TIMESTAMP": dialect.TypeDateTime,
}

type (
	// Column is a parsed column declaration:
	//
	//	name TYPE[(args)] [PRIMARY KEY] [NOT NULL | NULL] [AS key] [REFERENCES [schema.]table(column)]
	Column struct {
		Name        string        `parser:"@(Ident | QuotedIdent | BacktickIdent)"`
		Type        *DataType     `parser:"@@"`
		Constraints []*Constraint `parser:"@@*"`
	}

	// DataType is a type name with optional length or precision arguments.
	DataType struct {
		Name string `parser:"@Ident"`
		Args []int  `parser:"('(' @Number (',' @Number)* ')')?"`
	}

	// Constraint is a single column modifier.
	Constraint struct {
		PrimaryKey bool       `parser:"  @('PRIMARY' 'KEY')"`
		NotNull    bool       `parser:"| @('NOT' 'NULL')"`
		Null       bool       `parser:"| @'NULL'"`
		Key        *string    `parser:"| 'AS' @(Ident | QuotedIdent | BacktickIdent)"`
		References *Reference `parser:"| 'REFERENCES' @@"`
	}

	// Reference is the target of a foreign key.
	Reference struct {
		Table  []string `parser:"@(Ident | QuotedIdent | BacktickIdent) ('.' @(Ident | QuotedIdent | BacktickIdent))?"`
		Column string   `parser:"'(' @(Ident | QuotedIdent | BacktickIdent) ')'"`
	}

	// Index is a parsed index declaration:
	//
	//	[UNIQUE] INDEX name (column, ...)
	Index struct {
		Unique  bool     `parser:"@'UNIQUE'? 'INDEX'"`
		Name    string   `parser:"@(Ident | QuotedIdent | BacktickIdent)"`
		Columns []string `parser:"'(' @(Ident | QuotedIdent | BacktickIdent) (',' @(Ident | QuotedIdent | BacktickIdent))* ')'"`
	}
)

// Schema converts the declaration into a detached schema column.
func (c *Column) Schema() *schema.Column {
	var opts []schema.ColumnOption
	for _, con := range c.Constraints {
		switch {
		case con.PrimaryKey:
			opts = append(opts, schema.PrimaryKey())
		case con.NotNull:
			opts = append(opts, schema.NotNull())
		case con.Key != nil:
			opts = append(opts, schema.Key(utils.Unquote(*con.Key)))
		case con.References != nil:
			opts = append(opts, schema.References(con.References.TableKey(), utils.Unquote(con.References.Column)))
		}
	}

	return schema.NewColumn(utils.Unquote(c.Name), c.Type.Schema(), opts...)
}

// Schema resolves the generic type. Unknown names keep their spelling.
func (t *DataType) Schema() schema.Type {
	name, ok := typeAliases[strings.ToUpper(t.Name)]
	if !ok {
		return schema.Type{Name: t.Name, Args: t.Args}
	}

	switch name {
	case dialect.TypeString:
		if len(t.Args) == 0 {
			return schema.String(0)
		}
		return schema.String(t.Args[0])
	case dialect.TypeNumeric:
		if len(t.Args) == 2 {
			return schema.Numeric(t.Args[0], t.Args[1])
		}
	}

	return schema.Type{Name: name, Args: t.Args}
}

// TableKey returns the referenced table as a metadata key.
func (r *Reference) TableKey() string {
	if len(r.Table) == 2 {
		return schema.TableKey(utils.Unquote(r.Table[0]), utils.Unquote(r.Table[1]))
	}
	return utils.Unquote(r.Table[0])
}

// Schema converts the declaration into a detached schema index.
func (ix *Index) Schema() *schema.Index {
	cols := make([]string, len(ix.Columns))
	for i, col := range ix.Columns {
		cols[i] = utils.Unquote(col)
	}

	idx := schema.NewIndex(utils.Unquote(ix.Name), cols...)
	if ix.Unique {
		idx.Unique()
	}
	return idx
}
