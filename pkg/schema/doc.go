// Package schema is the small relational schema toolkit views are layered on.
//
// It models the pieces a view needs to interoperate with: column types,
// columns, tables, indexes, primary key constraints and a MetaData container
// that creates and drops everything it holds in dependency order.
//
// # Relations
//
// Anything MetaData can hold implements Relation. Tables are the base case;
// pkg/view embeds *Table so views get column lookup, constraints and indexes
// for free, and reports KindView or KindMaterializedView from Kind. Visitors
// dispatch on IsView rather than on the concrete type.
//
// # Passes
//
// MetaData.CreateAll and MetaData.DropAll walk the container with a Visitor:
//
//	md := schema.NewMetaData()
//	users, _ := schema.NewTable(md, "users",
//		schema.NewColumn("id", schema.BigInteger(), schema.PrimaryKey()),
//		schema.NewColumn("email", schema.String(255), schema.NotNull()),
//	)
//
//	err := md.CreateAll(ctx, conn, schema.CheckFirst())
//
// The default Generator and Dropper only handle tables. Callers holding views
// in the container pass view aware visitors with WithGenerator/WithDropper
// (see view.CreateAll).
//
// # Events
//
// Tables and MetaData both carry an ordered list of hooks per Event. Container
// hooks fire around the whole pass, relation hooks around the relation's own
// DDL. Hooks run in registration order and the first error stops the pass.
//
// # Statements
//
// DDL is expressed as Executable values (CreateTable, DropIndex, ...) that
// compile against a dialect.Dialect and run through ExecuteDDL on a Conn.
package schema
