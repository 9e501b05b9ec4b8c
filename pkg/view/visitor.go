package view

import (
	"context"

	"github.com/pseudomuto/viewkeeper/pkg/schema"
)

type (
	// Generator is the create pass visitor for containers holding views.
	// Views get CREATE VIEW inside their own BeforeCreate/AfterCreate events
	// and everything else falls through to schema.Generator.
	Generator struct {
		*schema.Generator

		// Indexes also creates a view's indexes after the view. The Define
		// functions leave it off and create indexes from a separate hook.
		Indexes bool
	}

	// Dropper is the drop pass counterpart of Generator.
	Dropper struct {
		*schema.Dropper
	}
)

func NewGenerator(conn schema.Conn, checkFirst bool) *Generator {
	return &Generator{Generator: schema.NewGenerator(conn, checkFirst)}
}

func NewDropper(conn schema.Conn, checkFirst bool) *Dropper {
	return &Dropper{Dropper: schema.NewDropper(conn, checkFirst)}
}

func (g *Generator) VisitRelation(ctx context.Context, rel schema.Relation) error {
	v, ok := rel.(*View)
	if !ok || !schema.IsView(rel) {
		return g.Generator.VisitRelation(ctx, rel)
	}

	create, err := g.ShouldCreate(ctx, v)
	if err != nil || !create {
		return err
	}

	return schema.WithDDLEvents(ctx, g.Conn, v, schema.BeforeCreate, schema.AfterCreate, func() error {
		if err := schema.ExecuteDDL(ctx, g.Conn, NewCreateView(v, false)); err != nil {
			return err
		}

		if g.Indexes {
			return g.CreateIndexes(ctx, v)
		}
		return nil
	})
}

func (d *Dropper) VisitRelation(ctx context.Context, rel schema.Relation) error {
	v, ok := rel.(*View)
	if !ok || !schema.IsView(rel) {
		return d.Dropper.VisitRelation(ctx, rel)
	}

	drop, err := d.ShouldDrop(ctx, v)
	if err != nil || !drop {
		return err
	}

	return schema.WithDDLEvents(ctx, d.Conn, v, schema.BeforeDrop, schema.AfterDrop, func() error {
		return schema.ExecuteDDL(ctx, d.Conn, NewDropView(v, false))
	})
}

// CreateAll runs a create pass over md that understands views registered as
// first class members (view.New with a container). Views are ordered after
// the tables their query reads from and get their indexes created.
func CreateAll(ctx context.Context, conn schema.Conn, md *schema.MetaData, checkFirst bool) error {
	return md.CreateAll(ctx, conn, passOptions(checkFirst)...)
}

// DropAll is the drop pass counterpart of CreateAll.
func DropAll(ctx context.Context, conn schema.Conn, md *schema.MetaData, checkFirst bool) error {
	return md.DropAll(ctx, conn, passOptions(checkFirst)...)
}

func passOptions(checkFirst bool) []schema.PassOption {
	opts := []schema.PassOption{
		schema.WithGenerator(func(conn schema.Conn, checkFirst bool) schema.Visitor {
			g := NewGenerator(conn, checkFirst)
			g.Indexes = true
			return g
		}),
		schema.WithDropper(func(conn schema.Conn, checkFirst bool) schema.Visitor {
			return NewDropper(conn, checkFirst)
		}),
	}

	if checkFirst {
		opts = append(opts, schema.CheckFirst())
	}
	return opts
}
