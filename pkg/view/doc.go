// Package view adds VIEW and MATERIALIZED VIEW support on top of pkg/schema.
//
// A View is a relation defined by a query. It embeds *schema.Table, so it has
// columns, constraints and indexes like any table, but reports KindView or
// KindMaterializedView and is rendered with CREATE VIEW / DROP VIEW.
//
// # Defining views
//
// The usual entry point is Define (or DefineMaterialized), which derives the
// view's columns from its query and hooks it into a container:
//
//	md := schema.NewMetaData()
//	users, _ := schema.NewTable(md, "users",
//		schema.NewColumn("id", schema.BigInteger(), schema.PrimaryKey()),
//		schema.NewColumn("name", schema.Text()),
//		schema.NewColumn("premium", schema.Boolean()),
//	)
//
//	premium := query.Select(users.Column("id"), users.Column("name")).
//		Where(query.Eq(users.Column("premium"), true))
//
//	_, err := view.Define("premium_users", premium, md, view.Options{})
//
//	// CREATE TABLE "users" (...)
//	// CREATE VIEW "premium_users" AS SELECT users.id, users.name FROM users WHERE users.premium = TRUE
//	err = md.CreateAll(ctx, conn)
//
//	// DROP VIEW IF EXISTS "premium_users" CASCADE
//	// DROP TABLE "users"
//	err = md.DropAll(ctx, conn)
//
// Views created after the container's tables and dropped before them come
// from the container's AfterCreate and BeforeDrop hooks. Alternatively,
// register views directly with New and run CreateAll/DropAll from this
// package, which sort views after the tables they read from.
//
// # Dialects
//
// DDL is compiled for the connection's dialect. Per dialect settings live in
// DialectOptions:
//
//	view.Options{
//		DialectOptions: view.DialectOptions{
//			PostgreSQL: view.PostgreSQLOptions{With: map[string]string{"fillfactor": "70"}},
//		},
//	}
//	// CREATE MATERIALIZED VIEW "v1" WITH (fillfactor = 70) AS ...
//
// Dialects without materialized views return dialect.ErrUnsupported.
//
// # Refreshing
//
// Refresh flushes a Session and then refreshes a materialized view by name:
//
//	err := view.Refresh(ctx, sess, "daily_totals", true)
//	// REFRESH MATERIALIZED VIEW CONCURRENTLY "daily_totals"
package view
