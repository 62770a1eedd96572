package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/hotelworks/loyalty/internal/domain/model"
)

// LedgerFacade describes point ledger operations exposed via HTTP.
type LedgerFacade interface {
	Accrue(ctx context.Context, customerID int64, amount decimal.Decimal) (*model.AccrualResult, error)
	Redeem(ctx context.Context, customerID int64, points int64) (*model.RedemptionResult, error)
	AdjustPoints(ctx context.Context, customerID int64, delta int64) (int64, error)
	Balance(ctx context.Context, customerID int64) (int64, error)
	History(ctx context.Context, customerID int64) ([]model.PointHistoryEntry, error)
	PointsInfo(ctx context.Context, customerID int64) (*model.CustomerPointsInfo, error)
}

// PaymentFacade accepts payment notifications for deferred accrual.
type PaymentFacade interface {
	RecordPayment(ctx context.Context, customerID int64, amount decimal.Decimal) (*model.PaymentEvent, error)
}

// BackofficeFacade aggregates the full set of operations used across handlers.
type BackofficeFacade interface {
	LedgerFacade
	PaymentFacade
}
