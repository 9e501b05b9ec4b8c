package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pseudomuto/viewkeeper/pkg/config"
	"github.com/pseudomuto/viewkeeper/pkg/consts"
	"github.com/pseudomuto/viewkeeper/pkg/project"
	"github.com/urfave/cli/v3"
)

// env is the configuration shared by every command of one invocation. It
// starts with whatever config.Module found and is finalized by the root
// command's Before hook.
type env struct {
	cfg *config.Config
}

func newEnv(cfg *config.Config) *env {
	return &env{cfg: cfg}
}

func (e *env) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.IsSet("config") {
		cfg, err := config.LoadConfigFile(cmd.String("config"))
		if err != nil {
			return ctx, err
		}
		e.cfg = cfg
	}

	if e.cfg != nil && cmd.IsSet("dsn") {
		e.cfg.DSN = cmd.String("dsn")
	}

	logCfg := config.Log{Format: "text", Level: "info"}
	if e.cfg != nil {
		logCfg = e.cfg.Log
	}
	if cmd.IsSet("log-level") {
		logCfg.Level = cmd.String("log-level")
	}

	return ctx, logCfg.Configure()
}

func (e *env) requireConfig(ctx context.Context, _ *cli.Command) (context.Context, error) {
	if e.cfg == nil {
		return ctx, errors.Errorf("%s not found", consts.DefaultConfigFile)
	}

	return ctx, nil
}

func (e *env) project() (*project.Project, error) {
	return project.New(e.cfg)
}

// connect builds the project and opens a connection for it.
func (e *env) connect(ctx context.Context) (*project.Project, project.Conn, error) {
	p, err := e.project()
	if err != nil {
		return nil, nil, err
	}

	conn, err := project.Connect(ctx, e.cfg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect")
	}

	return p, conn, nil
}
