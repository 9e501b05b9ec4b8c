package cmd

import (
	"context"
	"fmt"

	"github.com/pseudomuto/viewkeeper/pkg/consts"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Env        *env
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run registers the viewkeeper CLI to run once the fx application starts and
// shuts the application down with the command's exit code when it returns.
//
// Global Flags:
//   - --config, -c: the project file (default: viewkeeper.yaml)
//   - --dsn: overrides the configured DSN
//   - --log-level: overrides the configured log level
//
// Example usage:
//
//	viewkeeper render
//	viewkeeper --config reporting.yaml create
//	viewkeeper --log-level debug refresh --concurrently user_totals
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := newApp(p.Env, p.Version, p.Commands)

	// Commands like dev block until interrupted, so the CLI runs outside the
	// start hook to stay clear of fx's start timeout.
	p.Lifecycle.Append(fx.StartHook(func() {
		go func() {
			code := 0
			if err := app.Run(p.Ctx, p.Args); err != nil {
				log.WithError(err).Error("Error running command")
				code = 1
			}

			_ = p.Shutdowner.Shutdown(fx.ExitCode(code))
		}()
	}))
}

func newApp(e *env, version *Version, commands []*cli.Command) *cli.Command {
	return &cli.Command{
		Name:  "viewkeeper",
		Usage: "Manage views and materialized views alongside the tables they read from",
		Description: `viewkeeper builds the tables and views declared in a project file and
creates, drops or refreshes them in dependency order. Views are created after
the tables they read from and dropped before them.`,
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the viewkeeper config file",
				Sources: cli.EnvVars("VIEWKEEPER_CONFIG"),
				Value:   consts.DefaultConfigFile,
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.StringFlag{
				Name:    "dsn",
				Usage:   "override the configured data source name",
				Sources: cli.EnvVars("VIEWKEEPER_DSN"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "trace, debug, info, warn or error",
				Sources: cli.EnvVars("VIEWKEEPER_LOG_LEVEL"),
			},
		},
		Before:   e.before,
		Commands: commands,
	}
}
