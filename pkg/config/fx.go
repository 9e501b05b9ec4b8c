package config

import (
	"os"

	"github.com/pseudomuto/viewkeeper/pkg/consts"
	"go.uber.org/fx"
)

var Module = fx.Module("config", fx.Provide(
	// Loads viewkeeper.yaml from the working directory when it exists. A nil
	// config lets commands that take --config (or need none) still run.
	func() (*Config, error) {
		if _, err := os.Stat(consts.DefaultConfigFile); os.IsNotExist(err) {
			return nil, nil
		}

		return LoadConfigFile(consts.DefaultConfigFile)
	},
))
