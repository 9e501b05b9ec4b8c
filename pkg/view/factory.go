package view

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/query"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
	"github.com/pseudomuto/viewkeeper/pkg/utils"
)

// FromSelectable creates a view whose columns are derived from sel.
//
// Each output column of sel becomes a view column keeping its name, type and
// primary key flag; opts.Aliases renames the exposed key. opts.Columns and
// opts.Indexes are appended. When no derived column is a primary key, a
// composite primary key over all derived columns is added.
func FromSelectable(name string, sel query.Selectable, md *schema.MetaData, opts Options) (*View, error) {
	infos, err := query.Columns(sel)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to derive columns for view %s", name)
	}

	cols := make([]*schema.Column, 0, len(infos)+len(opts.Columns))
	names := make([]string, len(infos))
	hasPK := false

	for i, info := range infos {
		var colOpts []schema.ColumnOption
		if alias, ok := opts.Aliases[info.Name]; ok {
			colOpts = append(colOpts, schema.Key(alias))
		}
		if info.PrimaryKey {
			hasPK = true
			colOpts = append(colOpts, schema.PrimaryKey())
		}

		names[i] = info.Name
		cols = append(cols, schema.NewColumn(info.Name, info.Type, colOpts...))
	}

	o := opts
	o.Columns = append(cols, opts.Columns...)
	o.Constraints = append([]schema.Constraint(nil), opts.Constraints...)
	if !hasPK {
		o.Constraints = append(o.Constraints, schema.NewPrimaryKeyConstraint(names...))
	}

	return New(name, md, sel, o)
}

// Define creates a view and hooks it into md: after md's create pass the view
// and then its indexes are created, and before md's drop pass the view is
// dropped. Cascade on drop defaults to true.
//
// The view itself lives in its own container, so md's table passes never see
// it; only the hooks tie it to md.
//
// Example:
//
//	premium := query.Select(users).Where(query.Eq(users.Column("premium"), true))
//	v, err := view.Define("premium_users", premium, md, view.Options{})
//
//	err = md.CreateAll(ctx, conn)  // users, then premium_users
func Define(name string, sel query.Selectable, md *schema.MetaData, opts Options) (*View, error) {
	return define(name, sel, md, opts)
}

// DefineMaterialized is Define for a materialized view. Replace is never set.
func DefineMaterialized(name string, sel query.Selectable, md *schema.MetaData, opts Options) (*View, error) {
	opts.Materialized = true
	opts.Replace = false
	return define(name, sel, md, opts)
}

func define(name string, sel query.Selectable, md *schema.MetaData, opts Options) (*View, error) {
	if md == nil {
		return nil, errors.Wrapf(ErrNoMetaData, "view %s", name)
	}

	opts.Cascade = utils.Deref(opts.CascadeOnDrop, true)
	v, err := FromSelectable(name, sel, nil, opts)
	if err != nil {
		return nil, err
	}

	// created tracks whether the current pass created the view, so indexes
	// of a view skipped by a check-first pass are left alone.
	created := false

	md.Listen(schema.AfterCreate, func(ctx context.Context, conn schema.Conn) error {
		created = false
		if schema.CheckFirstFromContext(ctx) {
			exists, err := conn.HasRelation(ctx, v.Schema(), v.Name(), v.Kind())
			if err != nil {
				return errors.Wrapf(err, "failed to check for view %s", v.Key())
			}
			if exists {
				return nil
			}
		}

		if err := v.Create(ctx, conn, false); err != nil {
			return err
		}

		created = true
		return nil
	})

	md.Listen(schema.AfterCreate, func(ctx context.Context, conn schema.Conn) error {
		if !created {
			return nil
		}

		for _, ix := range v.Indexes() {
			if err := ix.Create(ctx, conn); err != nil {
				return errors.Wrapf(err, "failed to create index %s on %s", ix.Name(), v.Key())
			}
		}
		return nil
	})

	md.Listen(schema.BeforeDrop, func(ctx context.Context, conn schema.Conn) error {
		return v.Drop(ctx, conn, schema.CheckFirstFromContext(ctx))
	})

	return v, nil
}
