// Package docker runs throwaway ClickHouse servers through testcontainers-go.
//
// Integration tests in the clickhouse and project packages use it to check
// rendered view DDL against a real server. Tests skip when Docker isn't
// available or when run with -short.
//
// # Usage Example
//
//	container := docker.NewWithOptions(docker.DockerOptions{Version: "25.7"})
//	if err := container.Start(ctx); err != nil {
//		return err
//	}
//	defer container.Stop(ctx)
//
//	dsn, _ := container.GetDSN()
//	client, err := clickhouse.NewClient(ctx, dsn)
package docker
