package auth

import (
	"github.com/polkiloo/webstudio/internal/config"
	"go.uber.org/fx"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	opts := Options{TTL: p.Config.TokenTTL}
	if p.Config.AuthStrategy == config.AuthStrategyHMAC {
		return NewHMACStrategy(p.Config.AuthSecret, opts)
	}
	return NewJWTStrategy(p.Config.AuthSecret, opts)
}
