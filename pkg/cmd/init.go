package cmd

import (
	"context"
	"fmt"

	"github.com/pseudomuto/viewkeeper/pkg/consts"
	"github.com/pseudomuto/viewkeeper/pkg/project"
	"github.com/urfave/cli/v3"
)

// initCmd writes a starter project file into a directory (default: the
// working directory). Existing files are left alone.
func initCmd() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Write a starter viewkeeper.yaml",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dialect",
				Usage: "the target database",
				Value: consts.DefaultDialect,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := "."
			if cmd.Args().Present() {
				dir = cmd.Args().First()
			}

			written, err := project.Initialize(dir, project.InitOptions{Dialect: cmd.String("dialect")})
			if err != nil {
				return err
			}

			if !written {
				fmt.Fprintf(cmd.Root().Writer, "%s already exists\n", consts.DefaultConfigFile)
				return nil
			}

			fmt.Fprintf(cmd.Root().Writer, "wrote %s\n", consts.DefaultConfigFile)
			return nil
		},
	}
}
