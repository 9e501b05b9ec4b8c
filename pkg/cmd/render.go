package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
)

// render creates a CLI command that prints the DDL a create (or drop) would
// run without connecting to a database.
//
// Examples:
//
//	# Print CREATE statements
//	viewkeeper render
//
//	# Print DROP statements
//	viewkeeper render --drop
func render(e *env) *cli.Command {
	return &cli.Command{
		Name:   "render",
		Usage:  "Print the DDL for the project without executing it",
		Before: e.requireConfig,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "drop",
				Usage: "render DROP statements instead of CREATE",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := e.project()
			if err != nil {
				return err
			}

			return p.Render(ctx, cmd.Root().Writer, cmd.Bool("drop"))
		},
	}
}
