package schema

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/dialect"
	"github.com/pseudomuto/viewkeeper/pkg/utils"
)

const clickhouseDefaultEngine = "MergeTree()"

type (
	// CreateTable renders CREATE TABLE for a relation.
	CreateTable struct {
		rel Relation
	}

	// DropTable renders DROP TABLE for a relation.
	DropTable struct {
		rel      Relation
		IfExists bool
	}

	// CreateIndex renders CREATE [UNIQUE] INDEX.
	CreateIndex struct {
		ix *Index
	}

	// DropIndex renders DROP INDEX.
	DropIndex struct {
		ix       *Index
		IfExists bool
	}
)

func NewCreateTable(rel Relation) *CreateTable { return &CreateTable{rel: rel} }

func NewDropTable(rel Relation, ifExists bool) *DropTable {
	return &DropTable{rel: rel, IfExists: ifExists}
}

func NewCreateIndex(ix *Index) *CreateIndex { return &CreateIndex{ix: ix} }

func NewDropIndex(ix *Index, ifExists bool) *DropIndex {
	return &DropIndex{ix: ix, IfExists: ifExists}
}

func (s *CreateTable) Target() Relation { return s.rel }
func (s *DropTable) Target() Relation { return s.rel }
func (s *CreateIndex) Target() Relation { return s.ix.table }
func (s *DropIndex) Target() Relation { return s.ix.table }

// Compile renders CREATE TABLE with column definitions, the primary key and
// foreign keys. ClickHouse gets an ENGINE (plus ORDER BY for the MergeTree
// family) instead of foreign keys, and nullable columns are wrapped in Nullable().
func (s *CreateTable) Compile(d dialect.Dialect) (string, error) {
	cols := s.rel.Columns()
	if len(cols) == 0 {
		return "", errors.Wrapf(ErrNoColumns, "table %s", s.rel.Key())
	}

	clickhouse := d.Name() == "clickhouse"
	defs := make([]string, 0, len(cols)+2)
	for _, c := range cols {
		defs = append(defs, columnDefinition(d, c, clickhouse))
	}

	pk := s.rel.PrimaryKey()
	if len(pk) > 0 {
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", quoteList(d, pk)))
	}

	if !clickhouse {
		for _, c := range cols {
			ref := c.References()
			if ref == nil {
				continue
			}

			refSchema, refName := SplitKey(ref.Table)
			defs = append(defs, fmt.Sprintf(
				"FOREIGN KEY (%s) REFERENCES %s (%s)",
				d.QuoteIfNeeded(c.Name()),
				QualifiedName(d, refSchema, refName),
				d.QuoteIfNeeded(ref.Column),
			))
		}
	}

	b := utils.NewSQLBuilder().
		Create("TABLE").
		Ident(QualifiedName(d, s.rel.Schema(), s.rel.Name())).
		Raw("(" + strings.Join(defs, ", ") + ")")

	if clickhouse {
		engine := clickhouseDefaultEngine
		if e, ok := s.rel.(interface{ Engine() string }); ok && e.Engine() != "" {
			engine = e.Engine()
		}

		b.Engine(engine)
		if strings.Contains(engine, "MergeTree") {
			orderBy := "tuple()"
			if len(pk) > 0 {
				orderBy = "(" + quoteList(d, pk) + ")"
			}
			b.Raw("ORDER BY " + orderBy)
		}
	}

	return b.String(), nil
}

func (s *DropTable) Compile(d dialect.Dialect) (string, error) {
	b := utils.NewSQLBuilder().Drop("TABLE")
	if s.IfExists {
		b.IfExists()
	}
	return b.Ident(QualifiedName(d, s.rel.Schema(), s.rel.Name())).String(), nil
}

func (s *CreateIndex) Compile(d dialect.Dialect) (string, error) {
	if s.ix.table == nil {
		return "", errors.Wrapf(ErrDetachedIndex, "index %s", s.ix.name)
	}

	if !d.Features().StandaloneIndexes {
		return "", errors.Wrapf(dialect.ErrUnsupported, "%s: CREATE INDEX", d.Name())
	}

	kind := "INDEX"
	if s.ix.unique {
		kind = "UNIQUE INDEX"
	}

	t := s.ix.table
	return utils.NewSQLBuilder().
		Create(kind).
		Ident(d.Quote(s.ix.name)).
		Raw("ON").
		Ident(QualifiedName(d, t.Schema(), t.Name())).
		Raw("(" + quoteList(d, s.ix.columns) + ")").
		String(), nil
}

// Compile renders DROP INDEX. PostgreSQL and DuckDB scope indexes to the
// table's schema, MySQL needs the owning table.
func (s *DropIndex) Compile(d dialect.Dialect) (string, error) {
	if s.ix.table == nil {
		return "", errors.Wrapf(ErrDetachedIndex, "index %s", s.ix.name)
	}

	if !d.Features().StandaloneIndexes {
		return "", errors.Wrapf(dialect.ErrUnsupported, "%s: DROP INDEX", d.Name())
	}

	t := s.ix.table
	b := utils.NewSQLBuilder().Drop("INDEX")
	if s.IfExists && d.Features().DropIndexIfExists {
		b.IfExists()
	}

	if d.Name() == "mysql" {
		return b.Ident(d.Quote(s.ix.name)).
			Raw("ON").
			Ident(QualifiedName(d, t.Schema(), t.Name())).
			String(), nil
	}

	return b.Ident(QualifiedName(d, t.Schema(), s.ix.name)).String(), nil
}

func columnDefinition(d dialect.Dialect, c *Column, clickhouse bool) string {
	typ := c.Type().Compile(d)
	if clickhouse {
		if c.Nullable() {
			typ = "Nullable(" + typ + ")"
		}
		return d.QuoteIfNeeded(c.Name()) + " " + typ
	}

	def := d.QuoteIfNeeded(c.Name()) + " " + typ
	if !c.Nullable() {
		def += " NOT NULL"
	}
	return def
}

func quoteList(d dialect.Dialect, names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = d.QuoteIfNeeded(n)
	}
	return strings.Join(quoted, ", ")
}
