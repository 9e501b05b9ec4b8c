// Package utils provides common utility functions used throughout the viewkeeper codebase.
//
// This package contains shared helpers used by the dialect, schema and view
// packages so statement rendering stays consistent across them.
//
// # Identifier Utilities (identifier.go)
//
// QuoteIdentifier wraps a single identifier in a dialect's quote character,
// doubling embedded quotes:
//
//	utils.QuoteIdentifier("users", '"')   // "users"
//	utils.QuoteIdentifier("events", '`')  // `events`
//
// BacktickIdentifier handles dotted ClickHouse names, backticking each part
// and leaving parts that are already backticked alone:
//
//	utils.BacktickIdentifier("analytics.events")  // `analytics`.`events`
//	utils.BacktickIdentifier("`users`")           // `users`
//
// Unquote strips one level of quoting, which the column grammar in
// pkg/parser relies on.
//
// # SQL Builder (sqlbuilder.go)
//
// SQLBuilder is a fluent helper for DDL text. Callers pass identifiers that a
// dialect has already quoted and the builder takes care of keyword order and
// skipping empty clauses:
//
//	sql := utils.NewSQLBuilder().
//		Drop("MATERIALIZED VIEW").
//		IfExists().
//		Ident(`"daily_totals"`).
//		RawIf(cascade, "CASCADE").
//		String()
//
// # Value Utilities (validation.go)
//
// FormatOptionValue decides whether a configured storage parameter is emitted
// bare (numbers, booleans) or as a quoted string literal.
//
// # Pointers (ptr.go)
//
// Ptr and Deref support optional settings whose zero value is meaningful.
package utils
