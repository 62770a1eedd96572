package di

import (
	"go.uber.org/fx"

	"github.com/hotelworks/loyalty/internal/app"
	"github.com/hotelworks/loyalty/internal/config"
	"github.com/hotelworks/loyalty/internal/logger"
	"github.com/hotelworks/loyalty/internal/server/http/handlers"
	"github.com/hotelworks/loyalty/internal/server/http/router"
	"github.com/hotelworks/loyalty/internal/storage/postgres"
	"github.com/hotelworks/loyalty/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		usecase.Module,
		fx.Provide(func(f *app.LedgerFacade) handlers.BackofficeFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
