// Package sqlconn adapts database/sql handles to schema.Conn.
//
// Open picks a driver from the dialect name:
//
//   - postgresql: github.com/lib/pq
//   - sqlite: modernc.org/sqlite, or github.com/mattn/go-sqlite3 when built
//     with -tags cgo_sqlite
//   - duckdb: github.com/duckdb/duckdb-go/v2 (left out with -tags no_duckdb)
//
// Existence checks read each dialect's catalog. Every statement is logged at
// debug level.
//
// DryRun is a schema.Conn that records statements instead of running them.
// It backs the render command and most tests.
package sqlconn
