package elasticfx

import (
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(ClientConfigProvider),
	fx.Provide(Client),
)
