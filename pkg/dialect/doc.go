// Package dialect describes the SQL dialects viewkeeper can render for.
//
// A Dialect is supplied by the caller (usually resolved from configuration
// with Get); nothing in this module tries to detect which database it is
// talking to. The dialect is the single authority on:
//
//   - identifier quoting (Quote for object names, QuoteIfNeeded inside queries)
//   - literal rendering, used to inline bound parameters into view bodies
//   - bind placeholders ($1 for PostgreSQL, ? elsewhere)
//   - column type spelling (INTEGER vs Int32)
//   - which optional DDL features exist (Features)
//
// Registered dialects:
//
//	postgresql (aliases: postgres, pg)
//	sqlite
//	duckdb
//	clickhouse
//	mysql
//
// Example:
//
//	d, err := dialect.Get("postgres")
//	if err != nil {
//		return err
//	}
//
//	d.Quote("v1")          // "v1"
//	d.QuoteIfNeeded("id")  // id
//	d.Literal("it's")      // 'it''s'
//
// Renderers that need a feature a dialect lacks return ErrUnsupported wrapped
// with the dialect name.
package dialect
