package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/hotelworks/loyalty/internal/domain/model"
	"github.com/hotelworks/loyalty/internal/usecase"
)

// LedgerFacade aggregates the ledger and payment use cases behind a single
// surface consumed by the HTTP handlers and the payment worker.
type LedgerFacade struct {
	ledger   *usecase.LedgerUseCase
	payments *usecase.PaymentUseCase
}

// NewLedgerFacade constructs LedgerFacade.
func NewLedgerFacade(ledger *usecase.LedgerUseCase, payments *usecase.PaymentUseCase) *LedgerFacade {
	return &LedgerFacade{ledger: ledger, payments: payments}
}

func (f *LedgerFacade) Accrue(ctx context.Context, customerID int64, amount decimal.Decimal) (*model.AccrualResult, error) {
	return f.ledger.Accrue(ctx, customerID, amount)
}

func (f *LedgerFacade) Redeem(ctx context.Context, customerID int64, points int64) (*model.RedemptionResult, error) {
	return f.ledger.Redeem(ctx, customerID, points)
}

func (f *LedgerFacade) AdjustPoints(ctx context.Context, customerID int64, delta int64) (int64, error) {
	return f.ledger.AdjustPoints(ctx, customerID, delta)
}

func (f *LedgerFacade) Balance(ctx context.Context, customerID int64) (int64, error) {
	return f.ledger.Balance(ctx, customerID)
}

func (f *LedgerFacade) History(ctx context.Context, customerID int64) ([]model.PointHistoryEntry, error) {
	return f.ledger.History(ctx, customerID)
}

func (f *LedgerFacade) PointsInfo(ctx context.Context, customerID int64) (*model.CustomerPointsInfo, error) {
	return f.ledger.PointsInfo(ctx, customerID)
}

func (f *LedgerFacade) RecordPayment(ctx context.Context, customerID int64, amount decimal.Decimal) (*model.PaymentEvent, error) {
	return f.payments.Record(ctx, customerID, amount)
}

func (f *LedgerFacade) PaymentsForProcessing(ctx context.Context, limit int) ([]model.PaymentEvent, error) {
	return f.payments.SelectBatchForProcessing(ctx, limit)
}

func (f *LedgerFacade) MarkPaymentProcessed(ctx context.Context, id int64) error {
	return f.payments.MarkProcessed(ctx, id)
}

func (f *LedgerFacade) MarkPaymentInvalid(ctx context.Context, id int64) error {
	return f.payments.MarkInvalid(ctx, id)
}

func (f *LedgerFacade) RequeuePayment(ctx context.Context, id int64) error {
	return f.payments.Requeue(ctx, id)
}
