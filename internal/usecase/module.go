package usecase

import (
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/hotelworks/loyalty/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newPolicyFromConfig,
	NewLedgerUseCase,
	NewPaymentUseCase,
)

func newPolicyFromConfig(cfg *config.Config) (AccrualPolicy, error) {
	rate, err := decimal.NewFromString(cfg.AccrualCurrencyRate)
	if err != nil {
		return AccrualPolicy{}, err
	}
	return NewAccrualPolicy(rate)
}
