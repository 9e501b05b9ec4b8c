package project

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/config"
	"github.com/pseudomuto/viewkeeper/pkg/dialect"
	"github.com/pseudomuto/viewkeeper/pkg/parser"
	"github.com/pseudomuto/viewkeeper/pkg/query"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
	"github.com/pseudomuto/viewkeeper/pkg/sqlconn"
	"github.com/pseudomuto/viewkeeper/pkg/utils"
	"github.com/pseudomuto/viewkeeper/pkg/view"
)

var (
	// ErrViewNotFound is returned when a command names a view the project
	// doesn't declare.
	ErrViewNotFound = errors.New("view not found")

	// ErrNotMaterialized is returned when refreshing a plain view.
	ErrNotMaterialized = errors.New("view is not materialized")
)

// Project is the set of tables and views declared by a configuration, built
// into a single schema.MetaData for one dialect.
type Project struct {
	config  *config.Config
	dialect dialect.Dialect
	md      *schema.MetaData
	views   []*view.View
}

// New builds the project described by cfg.
//
// Tables are registered first and views after them in declaration order. A
// view's query is hand written so it can't name its dependencies; declaring
// views after the relations they read from is what orders them.
//
// Example:
//
//	cfg, err := config.LoadConfigFile("viewkeeper.yaml")
//	if err != nil {
//		return err
//	}
//
//	p, err := project.New(cfg)
//	if err != nil {
//		return err
//	}
//
//	return p.Render(ctx, os.Stdout, false)
func New(cfg *config.Config) (*Project, error) {
	d, err := dialect.Get(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	p := &Project{config: cfg, dialect: d, md: schema.NewMetaData()}

	for _, t := range cfg.Tables {
		if err := p.addTable(t); err != nil {
			return nil, errors.Wrapf(err, "failed to build table %s", t.Name)
		}
	}

	for _, v := range cfg.Views {
		if err := p.addView(v); err != nil {
			return nil, errors.Wrapf(err, "failed to build view %s", v.Name)
		}
	}

	return p, nil
}

func (p *Project) Config() *config.Config { return p.config }
func (p *Project) Dialect() dialect.Dialect { return p.dialect }
func (p *Project) MetaData() *schema.MetaData { return p.md }

// Views returns the project's views in declaration order.
func (p *Project) Views() []*view.View { return p.views }

// View looks a view up by key (name or schema.name).
func (p *Project) View(key string) (*view.View, bool) {
	for _, v := range p.views {
		if v.Key() == key || v.Name() == key {
			return v, true
		}
	}
	return nil, false
}

// CreateAll creates every table, view and index against conn. With
// checkFirst, relations that already exist are skipped.
func (p *Project) CreateAll(ctx context.Context, conn schema.Conn, checkFirst bool) error {
	if err := p.checkDialect(conn); err != nil {
		return err
	}

	return view.CreateAll(ctx, conn, p.md, checkFirst)
}

// DropAll drops views before the tables they read from.
func (p *Project) DropAll(ctx context.Context, conn schema.Conn, checkFirst bool) error {
	if err := p.checkDialect(conn); err != nil {
		return err
	}

	return view.DropAll(ctx, conn, p.md, checkFirst)
}

// Render writes the statements CreateAll (or DropAll when drop is set) would
// run to w, one per line.
func (p *Project) Render(ctx context.Context, w io.Writer, drop bool) error {
	rec := sqlconn.NewDryRun(p.dialect, w)
	if drop {
		return p.DropAll(ctx, rec, false)
	}

	return p.CreateAll(ctx, rec, false)
}

// Refresh flushes sess and refreshes the materialized view called key.
func (p *Project) Refresh(ctx context.Context, sess view.Session, key string, concurrently bool) error {
	v, ok := p.View(key)
	if !ok {
		return errors.Wrapf(ErrViewNotFound, "%s", key)
	}

	if !v.Materialized() {
		return errors.Wrapf(ErrNotMaterialized, "%s", v.Key())
	}

	stmt := view.NewRefreshMaterializedView(v.Name(), concurrently)
	stmt.Schema = v.Schema()
	return view.RefreshStatement(ctx, sess, stmt)
}

func (p *Project) checkDialect(conn schema.Conn) error {
	if got := conn.Dialect().Name(); got != p.dialect.Name() {
		return errors.Errorf("connection dialect %s does not match project dialect %s", got, p.dialect.Name())
	}
	return nil
}

func (p *Project) addTable(t config.Table) error {
	cols, err := parser.Columns(t.Columns...)
	if err != nil {
		return err
	}

	ixs, err := parser.Indexes(t.Indexes...)
	if err != nil {
		return err
	}

	var items []schema.TableItem
	if t.Schema != "" {
		items = append(items, schema.InSchema(t.Schema))
	}
	if t.Engine != "" {
		items = append(items, schema.Engine(t.Engine))
	}
	for _, c := range cols {
		items = append(items, c)
	}
	for _, ix := range ixs {
		items = append(items, ix)
	}

	_, err = schema.NewTable(p.md, t.Name, items...)
	return err
}

func (p *Project) addView(v config.View) error {
	cols, err := parser.Columns(v.Columns...)
	if err != nil {
		return err
	}

	ixs, err := parser.Indexes(v.Indexes...)
	if err != nil {
		return err
	}

	sel := query.Text(v.Query).Columns(cols...)
	for name, val := range v.Params {
		sel.Bind(name, val)
	}

	vw, err := view.FromSelectable(v.Name, sel, p.md, view.Options{
		Schema:         v.Schema,
		Materialized:   v.Materialized,
		Replace:        v.Replace,
		Cascade:        utils.Deref(v.Cascade, v.Materialized),
		Indexes:        ixs,
		DialectOptions: p.dialectOptions(v),
	})
	if err != nil {
		return err
	}

	p.views = append(p.views, vw)
	return nil
}

func (p *Project) dialectOptions(v config.View) view.DialectOptions {
	var with map[string]string
	if len(v.PostgreSQL.With) > 0 {
		with = make(map[string]string, len(v.PostgreSQL.With))
		for k, val := range v.PostgreSQL.With {
			with[k] = utils.FormatOptionValue(val)
		}
	}

	onCluster := v.ClickHouse.OnCluster
	if onCluster == "" {
		onCluster = p.config.ClickHouse.Cluster
	}

	return view.DialectOptions{
		PostgreSQL: view.PostgreSQLOptions{
			With:       with,
			Tablespace: v.PostgreSQL.Tablespace,
			WithNoData: v.PostgreSQL.WithNoData,
		},
		ClickHouse: view.ClickHouseOptions{
			OnCluster: onCluster,
			To:        v.ClickHouse.To,
			Engine:    v.ClickHouse.Engine,
			Populate:  v.ClickHouse.Populate,
		},
	}
}
