// Package cmd provides the viewkeeper command line interface.
//
// # Available Commands
//
//   - init: write a starter viewkeeper.yaml
//   - render: print the CREATE (or DROP) statements for the project
//   - create: create tables, views and indexes in dependency order
//   - drop: drop views and then the tables they read from
//   - refresh: refresh one or more materialized views
//   - dev: run a local ClickHouse server with the project applied
//
// # Command Structure
//
// Each command is a function returning a *cli.Command (urfave/cli/v3). They
// are provided to go.uber.org/fx in the "commands" group and mounted on the
// root command by Run.
//
// # Global Options
//
//   - --config, -c: project file (default viewkeeper.yaml, env VIEWKEEPER_CONFIG)
//   - --dsn: override the configured DSN (env VIEWKEEPER_DSN)
//   - --log-level: override the configured log level (env VIEWKEEPER_LOG_LEVEL)
package cmd
