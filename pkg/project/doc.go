// Package project turns a viewkeeper configuration into a schema and runs it.
//
// A project is the tables and views declared in viewkeeper.yaml, built into a
// single schema.MetaData for the configured dialect. Views are first class
// members of that metadata so a create pass orders them after the tables they
// read from and a drop pass removes them first.
//
// # Rendering
//
// Render writes the DDL a create (or drop) pass would run without touching a
// database:
//
//	p, err := project.New(cfg)
//	if err != nil {
//		return err
//	}
//
//	err = p.Render(ctx, os.Stdout, false)
//
// # Applying
//
// Connect opens the configured database and CreateAll, DropAll and
// RefreshWith run against it:
//
//	conn, err := project.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
//
//	if err := p.CreateAll(ctx, conn, true); err != nil {
//		return err
//	}
//
//	err = p.RefreshWith(ctx, conn, "user_totals", false)
//
// # Initialization
//
// Initialize writes a starter viewkeeper.yaml that can be edited in place.
package project
