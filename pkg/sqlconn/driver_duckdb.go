//go:build !no_duckdb

package sqlconn

import (
	_ "github.com/duckdb/duckdb-go/v2"
)
