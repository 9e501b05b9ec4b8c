// Package parser reads the column and index declarations used in viewkeeper
// project files.
//
// The grammar is built with github.com/alecthomas/participle/v2 and accepts a
// small, dialect neutral subset of DDL:
//
//	id BIGINT PRIMARY KEY
//	email VARCHAR(255) NOT NULL
//	user_id BIGINT REFERENCES billing.users(id)
//	"Full Name" TEXT AS full_name
//
//	UNIQUE INDEX ix_users_email (email)
//
// Keywords are case insensitive and identifiers may be double quoted or
// backticked. Common type spellings (INT, VARCHAR, DECIMAL, TIMESTAMP, ...) map
// to the generic schema types so each dialect renders its own name; anything
// else is passed through untouched.
//
// Basic usage:
//
//	cols, err := parser.Columns("id BIGINT PRIMARY KEY", "email TEXT")
//	if err != nil {
//		return err
//	}
//
//	table, err := schema.NewTable(md, "users")
//	if err != nil {
//		return err
//	}
//	for _, col := range cols {
//		table.AppendColumn(col)
//	}
package parser
