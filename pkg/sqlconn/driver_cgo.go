//go:build cgo_sqlite

package sqlconn

import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	sqliteDriverName = "sqlite3"
	sqliteDriverType = "cgo"
)
