// Package query builds the queries views are defined over and inspects their
// output columns.
//
// Two kinds of Selectable exist. SelectStmt is assembled from schema objects
// so its output columns (names, types, primary key flags) are known:
//
//	q := query.Select(
//		users.Column("id"),
//		query.Label("full_name", users.Column("name")),
//	).Where(query.Eq(users.Column("active"), true))
//
//	cols, err := query.Columns(q)  // id (pk), full_name
//
// TextStmt wraps hand written SQL with :name parameters and declared columns.
//
// Columns are rendered table qualified (users.id) and the FROM clause is
// derived from the tables the select list and WHERE clause reference.
// Compiling with LiteralBinds inlines every parameter through the dialect's
// Literal, which is what CREATE VIEW needs.
package query
