package cmd

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

// refresh re-populates one or more materialized views.
//
// Examples:
//
//	viewkeeper refresh user_totals
//	viewkeeper refresh --concurrently user_totals order_stats
func refresh(e *env) *cli.Command {
	return &cli.Command{
		Name:      "refresh",
		Usage:     "Refresh materialized views",
		ArgsUsage: "<view> [<view>...]",
		Before:    e.requireConfig,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "concurrently",
				Usage: "refresh without locking out readers (PostgreSQL)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return errors.New("at least one view name is required")
			}

			p, conn, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()

			for _, name := range cmd.Args().Slice() {
				if err := p.RefreshWith(ctx, conn, name, cmd.Bool("concurrently")); err != nil {
					return errors.Wrapf(err, "failed to refresh %s", name)
				}

				log.WithField("view", name).Info("view refreshed")
			}

			return nil
		},
	}
}
