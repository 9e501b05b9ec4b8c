package sqlconn

import (
	"github.com/pseudomuto/viewkeeper/pkg/dialect"
	"github.com/pseudomuto/viewkeeper/pkg/schema"
)

type lookup struct {
	sql  string
	args []any
}

// catalogQuery builds a query returning one row when the relation exists.
// ok is false when the dialect can't hold relations of that kind.
func catalogQuery(d dialect.Dialect, schemaName, name string, kind schema.Kind) (lookup, bool) {
	switch d.Name() {
	case "postgresql":
		relkind := map[schema.Kind]string{
			schema.KindTable:            "r",
			schema.KindView:             "v",
			schema.KindMaterializedView: "m",
		}[kind]

		return lookup{
			sql: `SELECT 1 FROM pg_catalog.pg_class c ` +
				`JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace ` +
				`WHERE c.relname = $1 AND n.nspname = COALESCE(NULLIF($2, ''), current_schema()) AND c.relkind = $3`,
			args: []any{name, schemaName, relkind},
		}, true

	case "sqlite":
		if kind == schema.KindMaterializedView {
			return lookup{}, false
		}

		typ := "table"
		if kind == schema.KindView {
			typ = "view"
		}

		master := "sqlite_master"
		if schemaName != "" {
			master = d.Quote(schemaName) + ".sqlite_master"
		}

		return lookup{
			sql:  "SELECT 1 FROM " + master + " WHERE type = ? AND name = ?",
			args: []any{typ, name},
		}, true

	case "duckdb", "mysql":
		if kind == schema.KindMaterializedView {
			return lookup{}, false
		}

		typ := "BASE TABLE"
		if kind == schema.KindView {
			typ = "VIEW"
		}

		current := "current_schema()"
		if d.Name() == "mysql" {
			current = "DATABASE()"
		}

		return lookup{
			sql: "SELECT 1 FROM information_schema.tables " +
				"WHERE table_name = ? AND table_schema = COALESCE(NULLIF(?, ''), " + current + ") AND table_type = ?",
			args: []any{name, schemaName, typ},
		}, true
	}

	return lookup{}, false
}
