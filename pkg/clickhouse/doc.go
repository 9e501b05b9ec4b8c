// Package clickhouse connects viewkeeper to ClickHouse servers.
//
// Client satisfies schema.Conn, so metadata containing ClickHouse views and
// materialized views can be created or dropped against a live server:
//
//	client, err := clickhouse.NewClient(ctx, "clickhouse://default:@localhost:9000/analytics")
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	if err := md.CreateAll(ctx, client); err != nil {
//		return err
//	}
//
// Existence checks read system.tables and distinguish views from materialized
// views by engine. GetVersion and CheckRefresh report whether the server can
// run SYSTEM REFRESH VIEW, which requires 23.12 or newer.
package clickhouse
