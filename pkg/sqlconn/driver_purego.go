//go:build !cgo_sqlite

package sqlconn

import (
	_ "modernc.org/sqlite"
)

const (
	sqliteDriverName = "sqlite"
	sqliteDriverType = "purego"
)
