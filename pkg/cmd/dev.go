package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/clickhouse"
	"github.com/pseudomuto/viewkeeper/pkg/docker"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

// dev starts a throwaway ClickHouse server, creates the project in it and
// keeps it running until interrupted. Only ClickHouse projects are supported.
func dev(e *env) *cli.Command {
	return &cli.Command{
		Name:   "dev",
		Usage:  "Run a local ClickHouse server with the project applied",
		Before: e.requireConfig,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "image-tag",
				Usage: "the clickhouse/clickhouse-server tag",
				Value: docker.DefaultVersion,
			},
			&cli.StringFlag{
				Name:  "config-dir",
				Usage: "a directory mounted as the server's config.d",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := e.project()
			if err != nil {
				return err
			}

			if p.Dialect().Name() != "clickhouse" {
				return errors.Errorf("dev requires a clickhouse project, got %s", p.Dialect().Name())
			}

			container := docker.NewWithOptions(docker.DockerOptions{
				Version:   cmd.String("image-tag"),
				ConfigDir: cmd.String("config-dir"),
			})

			log.WithField("tag", cmd.String("image-tag")).Info("starting ClickHouse")
			if err := container.Start(ctx); err != nil {
				return err
			}
			defer func() { _ = container.Stop(context.Background()) }()

			dsn, err := container.GetDSN()
			if err != nil {
				return err
			}

			client, err := clickhouse.NewClient(ctx, dsn)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if err := p.CreateAll(ctx, client, false); err != nil {
				return errors.Wrap(err, "failed to create schema")
			}

			fmt.Fprintf(cmd.Root().Writer, "ClickHouse is running at %s (Ctrl+C to stop)\n", dsn)
			<-ctx.Done()
			return nil
		},
	}
}
