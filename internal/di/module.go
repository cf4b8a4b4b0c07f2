package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/webstudio/internal/adapter/kafka"
	"github.com/polkiloo/webstudio/internal/app"
	"github.com/polkiloo/webstudio/internal/config"
	"github.com/polkiloo/webstudio/internal/logger"
	"github.com/polkiloo/webstudio/internal/pkg/auth"
	"github.com/polkiloo/webstudio/internal/server/http/handlers"
	"github.com/polkiloo/webstudio/internal/server/http/router"
	"github.com/polkiloo/webstudio/internal/storage/postgres"
	"github.com/polkiloo/webstudio/internal/usecase"
)

// Module assembles the whole service graph. Extra options are appended last
// so callers can replace any provided value.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		kafka.Module,
		usecase.Module,
		fx.Provide(func(f *app.WebstudioFacade) handlers.WebstudioFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
