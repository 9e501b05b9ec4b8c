package schema

import (
	"context"

	"github.com/pkg/errors"
)

type (
	// Visitor handles one relation during a create or drop pass.
	Visitor interface {
		VisitRelation(ctx context.Context, rel Relation) error
	}

	// VisitorFactory builds the visitor for a single pass.
	VisitorFactory func(conn Conn, checkFirst bool) Visitor

	// Generator is the create pass visitor for tables. Types that handle more
	// relation kinds embed it and override VisitRelation.
	Generator struct {
		Conn       Conn
		CheckFirst bool
	}

	// Dropper is the drop pass visitor for tables.
	Dropper struct {
		Conn       Conn
		CheckFirst bool
	}
)

func NewGenerator(conn Conn, checkFirst bool) *Generator {
	return &Generator{Conn: conn, CheckFirst: checkFirst}
}

func NewDropper(conn Conn, checkFirst bool) *Dropper {
	return &Dropper{Conn: conn, CheckFirst: checkFirst}
}

// ShouldCreate reports whether rel needs creating. Without CheckFirst it is
// always true.
func (g *Generator) ShouldCreate(ctx context.Context, rel Relation) (bool, error) {
	if !g.CheckFirst {
		return true, nil
	}

	exists, err := g.Conn.HasRelation(ctx, rel.Schema(), rel.Name(), rel.Kind())
	if err != nil {
		return false, errors.Wrapf(err, "failed to check for %s", rel.Key())
	}
	return !exists, nil
}

// VisitRelation creates a table followed by its indexes inside the table's
// BeforeCreate/AfterCreate events.
func (g *Generator) VisitRelation(ctx context.Context, rel Relation) error {
	if IsView(rel) {
		return errors.Wrapf(ErrUnhandledRelation, "%s %s", rel.Kind(), rel.Key())
	}

	ok, err := g.ShouldCreate(ctx, rel)
	if err != nil || !ok {
		return err
	}

	return WithDDLEvents(ctx, g.Conn, rel, BeforeCreate, AfterCreate, func() error {
		if err := ExecuteDDL(ctx, g.Conn, NewCreateTable(rel)); err != nil {
			return err
		}
		return g.CreateIndexes(ctx, rel)
	})
}

// CreateIndexes creates every index of rel. Dialects without standalone
// indexes are skipped.
func (g *Generator) CreateIndexes(ctx context.Context, rel Relation) error {
	if !g.Conn.Dialect().Features().StandaloneIndexes {
		return nil
	}

	for _, ix := range rel.Indexes() {
		if err := ix.Create(ctx, g.Conn); err != nil {
			return err
		}
	}
	return nil
}

// ShouldDrop reports whether rel needs dropping. Without CheckFirst it is
// always true.
func (d *Dropper) ShouldDrop(ctx context.Context, rel Relation) (bool, error) {
	if !d.CheckFirst {
		return true, nil
	}

	exists, err := d.Conn.HasRelation(ctx, rel.Schema(), rel.Name(), rel.Kind())
	if err != nil {
		return false, errors.Wrapf(err, "failed to check for %s", rel.Key())
	}
	return exists, nil
}

// VisitRelation drops a table inside its BeforeDrop/AfterDrop events. Indexes
// go with the table.
func (d *Dropper) VisitRelation(ctx context.Context, rel Relation) error {
	if IsView(rel) {
		return errors.Wrapf(ErrUnhandledRelation, "%s %s", rel.Kind(), rel.Key())
	}

	ok, err := d.ShouldDrop(ctx, rel)
	if err != nil || !ok {
		return err
	}

	return WithDDLEvents(ctx, d.Conn, rel, BeforeDrop, AfterDrop, func() error {
		return ExecuteDDL(ctx, d.Conn, NewDropTable(rel, false))
	})
}
