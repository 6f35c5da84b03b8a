package domainfx

import (
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(LoadRules),
	fx.Provide(NewCron),
	fx.Provide(ManagerConfigProvider),
	fx.Provide(SweepService),
	fx.Provide(SweepManager),
)
