package cmd

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func checkFirstFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "check-first",
		Usage: "skip relations that already exist (or are already gone)",
		Value: true,
	}
}

// createCmd creates every table, view and index of the project in dependency
// order against the configured database.
func createCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:   "create",
		Usage:  "Create the project's tables, views and indexes",
		Before: e.requireConfig,
		Flags:  []cli.Flag{checkFirstFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, conn, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()

			if err := p.CreateAll(ctx, conn, cmd.Bool("check-first")); err != nil {
				return errors.Wrap(err, "failed to create schema")
			}

			log.WithFields(log.Fields{
				"dialect": p.Dialect().Name(),
				"views":   len(p.Views()),
			}).Info("schema created")
			return nil
		},
	}
}

// dropCmd drops the project's views and then its tables.
func dropCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:   "drop",
		Usage:  "Drop the project's views and tables",
		Before: e.requireConfig,
		Flags:  []cli.Flag{checkFirstFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, conn, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()

			if err := p.DropAll(ctx, conn, cmd.Bool("check-first")); err != nil {
				return errors.Wrap(err, "failed to drop schema")
			}

			log.WithField("dialect", p.Dialect().Name()).Info("schema dropped")
			return nil
		},
	}
}
