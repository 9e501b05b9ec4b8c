package view

import (
	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/dialect"
	"github.com/pseudomuto/viewkeeper/pkg/query"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
	"github.com/pseudomuto/viewkeeper/pkg/utils"
)

type (
	// CreateView renders CREATE [OR REPLACE] [MATERIALIZED] VIEW.
	CreateView struct {
		View        *View
		IfNotExists bool
	}

	// DropView renders DROP [MATERIALIZED] VIEW. IF EXISTS is always
	// rendered; the IfExists field is kept for callers that set it.
	DropView struct {
		View     *View
		IfExists bool
	}

	// RefreshMaterializedView renders a refresh of a materialized view by
	// name. It doesn't need the View itself since refreshing usually happens
	// long after (and elsewhere from) creation.
	RefreshMaterializedView struct {
		Name         string
		Schema       string
		Concurrently bool
	}
)

func NewCreateView(v *View, ifNotExists bool) *CreateView {
	return &CreateView{View: v, IfNotExists: ifNotExists}
}

func NewDropView(v *View, ifExists bool) *DropView {
	return &DropView{View: v, IfExists: ifExists}
}

func NewRefreshMaterializedView(name string, concurrently bool) *RefreshMaterializedView {
	return &RefreshMaterializedView{Name: name, Concurrently: concurrently}
}

func (s *CreateView) Target() schema.Relation { return s.View }
func (s *DropView) Target() schema.Relation { return s.View }

// Compile renders the CREATE statement. The defining query is compiled with
// every bound parameter inlined as a literal.
//
//	CREATE [OR REPLACE ][MATERIALIZED ]VIEW [IF NOT EXISTS ]<name>[ WITH (k = v, ...)] AS <query>
//
// IF NOT EXISTS is only added when requested, when OR REPLACE isn't used and
// when the dialect supports it.
func (s *CreateView) Compile(d dialect.Dialect) (string, error) {
	v := s.View
	f := d.Features()

	if v.materialized && !f.MaterializedViews {
		return "", errors.Wrapf(dialect.ErrUnsupported, "%s: materialized view %s", d.Name(), v.Key())
	}

	if v.replace && !f.CreateOrReplaceView {
		return "", errors.Wrapf(dialect.ErrUnsupported, "%s: CREATE OR REPLACE VIEW %s", d.Name(), v.Key())
	}

	if v.selectable == nil {
		return "", errors.Errorf("view %s has no defining query", v.Key())
	}

	body, _, err := v.selectable.Compile(d, query.CompileOptions{LiteralBinds: true})
	if err != nil {
		return "", errors.Wrapf(err, "failed to compile definition of %s", v.Key())
	}

	kind := "VIEW"
	if v.materialized {
		kind = "MATERIALIZED VIEW"
	}

	b := utils.NewSQLBuilder()
	if v.replace {
		b.CreateOrReplace(kind)
	} else {
		b.Create(kind)
	}

	if s.IfNotExists && !v.replace && supportsIfNotExists(f, v.materialized) {
		b.IfNotExists()
	}

	b.Ident(schema.QualifiedName(d, v.Schema(), v.Name()))

	var withNoData bool
	switch d.Name() {
	case "postgresql":
		pg := v.options.PostgreSQL
		b.With(pg.With)
		if v.materialized {
			if pg.Tablespace != "" {
				b.Raw("TABLESPACE " + d.Quote(pg.Tablespace))
			}
			withNoData = pg.WithNoData
		}
	case "clickhouse":
		ch := v.options.ClickHouse
		b.OnCluster(ch.OnCluster)
		if v.materialized {
			if ch.To != "" && ch.Populate {
				return "", errors.Wrapf(ErrInvalidOption, "%s: POPULATE can't be combined with TO", v.Key())
			}
			b.To(ch.To).Engine(ch.Engine).RawIf(ch.Populate, "POPULATE")
		}
	}

	return b.As(body).RawIf(withNoData, "WITH NO DATA").String(), nil
}

// Compile renders the DROP statement.
//
//	DROP [MATERIALIZED ]VIEW IF EXISTS <name>[ CASCADE]
//
// CASCADE is only rendered where the dialect supports it. ClickHouse drops
// materialized views with DROP TABLE.
func (s *DropView) Compile(d dialect.Dialect) (string, error) {
	v := s.View
	f := d.Features()
	clickhouse := d.Name() == "clickhouse"

	kind := "VIEW"
	if v.materialized {
		if !f.MaterializedViews {
			return "", errors.Wrapf(dialect.ErrUnsupported, "%s: materialized view %s", d.Name(), v.Key())
		}

		kind = "MATERIALIZED VIEW"
		if clickhouse {
			kind = "TABLE"
		}
	}

	b := utils.NewSQLBuilder().
		Drop(kind).
		IfExists().
		Ident(schema.QualifiedName(d, v.Schema(), v.Name()))

	if clickhouse {
		b.OnCluster(v.options.ClickHouse.OnCluster)
	}

	return b.RawIf(v.cascade && f.DropCascade, "CASCADE").String(), nil
}

// Compile renders the refresh statement.
//
//	REFRESH MATERIALIZED VIEW [CONCURRENTLY ]<name>
//
// ClickHouse refreshes with SYSTEM REFRESH VIEW and has no concurrent form.
func (s *RefreshMaterializedView) Compile(d dialect.Dialect) (string, error) {
	f := d.Features()
	if !f.MaterializedViews {
		return "", errors.Wrapf(dialect.ErrUnsupported, "%s: REFRESH MATERIALIZED VIEW", d.Name())
	}

	if s.Concurrently && !f.RefreshConcurrently {
		return "", errors.Wrapf(dialect.ErrUnsupported, "%s: concurrent refresh", d.Name())
	}

	name := schema.QualifiedName(d, s.Schema, s.Name)
	if d.Name() == "clickhouse" {
		return "SYSTEM REFRESH VIEW " + name, nil
	}

	b := utils.NewSQLBuilder().Raw("REFRESH MATERIALIZED VIEW").RawIf(s.Concurrently, "CONCURRENTLY")
	return b.Ident(name).String(), nil
}

func supportsIfNotExists(f dialect.Features, materialized bool) bool {
	if materialized {
		return f.MaterializedViewIfNotExists
	}
	return f.ViewIfNotExists
}
