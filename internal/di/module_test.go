package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/hotelworks/loyalty/internal/app"
	"github.com/hotelworks/loyalty/internal/config"
	"github.com/hotelworks/loyalty/internal/domain/repository"
	"github.com/hotelworks/loyalty/internal/storage/postgres"
	"github.com/hotelworks/loyalty/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:          ":0",
		DatabaseURI:         "postgres://stub",
		AccrualCurrencyRate: "10",
		PaymentPollInterval: time.Millisecond,
		WorkerPoolSize:      1,
		ShutdownTimeout:     time.Millisecond,
		MaxPaymentsBatch:    1,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	customerRepo := test.NewCustomerRepositoryStub()
	programRepo := &test.ProgramRepositoryStub{}
	ledgerRepo := test.NewLedgerRepositoryStub()
	historyRepo := &test.HistoryRepositoryStub{}
	paymentRepo := &test.PaymentEventRepositoryStub{}

	var facade *app.LedgerFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.CustomerRepository(customerRepo)),
			fx.Replace(repository.ProgramRepository(programRepo)),
			fx.Replace(repository.LedgerRepository(ledgerRepo)),
			fx.Replace(repository.HistoryRepository(historyRepo)),
			fx.Replace(repository.PaymentEventRepository(paymentRepo)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected ledger facade instance")
	}
}
