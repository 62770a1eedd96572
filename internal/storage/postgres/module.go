package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/hotelworks/loyalty/internal/config"
	"github.com/hotelworks/loyalty/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters. The repository
// bindings go through repository.Factory so consumers never see *Storage.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(func(s *Storage) repository.Factory { return s }),
	fx.Provide(
		func(f repository.Factory) repository.CustomerRepository { return f.Customers() },
		func(f repository.Factory) repository.ProgramRepository { return f.Programs() },
		func(f repository.Factory) repository.LedgerRepository { return f.Ledger() },
		func(f repository.Factory) repository.HistoryRepository { return f.History() },
		func(f repository.Factory) repository.PaymentEventRepository { return f.PaymentEvents() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
