package view

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/query"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
)

var (
	// ErrMaterializedReplace is returned when a view asks for both
	// MATERIALIZED and OR REPLACE.
	ErrMaterializedReplace = errors.New("cannot use CREATE OR REPLACE with materialized views")

	// ErrNoMetaData is returned by Define and DefineMaterialized when there is
	// no container to hook into.
	ErrNoMetaData = errors.New("metadata is required")

	// ErrInvalidOption is returned when dialect options contradict each other.
	ErrInvalidOption = errors.New("invalid view option")
)

type (
	// View is a named query exposed as a relation. It embeds *schema.Table so
	// columns, constraints and indexes behave exactly as they do for tables;
	// only Kind (and therefore DDL) differs.
	View struct {
		*schema.Table

		md           *schema.MetaData
		selectable   query.Selectable
		materialized bool
		replace      bool
		cascade      bool
		options      DialectOptions
	}

	// Options configure a view.
	Options struct {
		Schema       string
		Materialized bool
		Replace      bool
		// Cascade appends CASCADE to DROP where the dialect supports it.
		Cascade bool
		// CascadeOnDrop overrides Cascade for Define and DefineMaterialized,
		// which default it to true.
		CascadeOnDrop *bool
		Columns       []*schema.Column
		Constraints   []schema.Constraint
		Indexes       []*schema.Index
		// Aliases renames derived columns (source name -> exposed key). Only
		// FromSelectable and the Define functions consult it.
		Aliases        map[string]string
		DialectOptions DialectOptions
	}

	// DialectOptions holds per dialect settings. Only the entry matching the
	// active dialect is read when compiling.
	DialectOptions struct {
		PostgreSQL PostgreSQLOptions
		ClickHouse ClickHouseOptions
	}

	PostgreSQLOptions struct {
		// With holds storage parameters rendered as WITH (k = v, ...), sorted
		// by key. Values are emitted verbatim.
		With map[string]string
		// Tablespace places a materialized view in the named tablespace.
		Tablespace string
		// WithNoData creates a materialized view without populating it.
		WithNoData bool
	}

	ClickHouseOptions struct {
		OnCluster string
		// To names the target table of a materialized view (db.table).
		To string
		// Engine is the storage engine of a materialized view without To.
		Engine string
		// Populate backfills a materialized view on creation. It can't be
		// combined with To.
		Populate bool
	}
)

// New creates a view over sel and registers it in md. A nil md gets a private
// container.
//
// Example:
//
//	v, err := view.New("active_users", md, query.Select(users).Where(...), view.Options{})
func New(name string, md *schema.MetaData, sel query.Selectable, opts Options) (*View, error) {
	if opts.Materialized && opts.Replace {
		return nil, errors.Wrapf(ErrMaterializedReplace, "view %s", name)
	}

	if name == "" {
		return nil, errors.Wrap(schema.ErrEmptyName, "view")
	}

	items := make([]schema.TableItem, 0, len(opts.Columns)+len(opts.Constraints)+len(opts.Indexes)+1)
	if opts.Schema != "" {
		items = append(items, schema.InSchema(opts.Schema))
	}
	for _, c := range opts.Columns {
		items = append(items, c)
	}
	for _, c := range opts.Constraints {
		items = append(items, c)
	}
	for _, ix := range opts.Indexes {
		items = append(items, ix)
	}

	tbl, err := schema.NewTable(nil, name, items...)
	if err != nil {
		return nil, err
	}

	if md == nil {
		md = schema.NewMetaData()
	}

	v := &View{
		Table:        tbl,
		md:           md,
		selectable:   sel,
		materialized: opts.Materialized,
		replace:      opts.Replace,
		cascade:      opts.Cascade,
		options:      opts.DialectOptions,
	}

	if err := md.Add(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Kind reports KindMaterializedView or KindView.
func (v *View) Kind() schema.Kind {
	if v.materialized {
		return schema.KindMaterializedView
	}
	return schema.KindView
}

func (v *View) Selectable() query.Selectable { return v.selectable }
func (v *View) SetSelectable(sel query.Selectable) { v.selectable = sel }
func (v *View) Materialized() bool { return v.materialized }
func (v *View) Replace() bool { return v.replace }
func (v *View) Cascade() bool { return v.cascade }
func (v *View) DialectOptions() DialectOptions { return v.options }
func (v *View) MetaData() *schema.MetaData { return v.md }

// Dependencies returns the relations the view reads from plus any foreign key
// targets of its own columns.
func (v *View) Dependencies() []string {
	seen := map[string]bool{v.Key(): true}
	var deps []string
	for _, key := range append(query.Dependencies(v.selectable), v.Table.Dependencies()...) {
		if !seen[key] {
			seen[key] = true
			deps = append(deps, key)
		}
	}
	return deps
}

// Create issues CREATE VIEW for this view alone.
func (v *View) Create(ctx context.Context, conn schema.Conn, checkFirst bool) error {
	return errors.Wrapf(NewGenerator(conn, checkFirst).VisitRelation(ctx, v), "failed to create view %s", v.Key())
}

// Drop issues DROP VIEW for this view alone.
func (v *View) Drop(ctx context.Context, conn schema.Conn, checkFirst bool) error {
	return errors.Wrapf(NewDropper(conn, checkFirst).VisitRelation(ctx, v), "failed to drop view %s", v.Key())
}
