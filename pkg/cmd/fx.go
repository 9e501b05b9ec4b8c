package cmd

import "go.uber.org/fx"

var Module = fx.Module("cli",
	fx.Provide(
		newEnv,
		fx.Annotate(createCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(dev, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(dropCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(initCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(refresh, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(render, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
