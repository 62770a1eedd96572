package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/hotelworks/loyalty/internal/domain/errors"
	"github.com/hotelworks/loyalty/internal/domain/model"
	"github.com/hotelworks/loyalty/internal/domain/repository"
)

// PaymentUseCase records payment events and hands batches to the accrual worker.
type PaymentUseCase struct {
	payments repository.PaymentEventRepository
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(payments repository.PaymentEventRepository) *PaymentUseCase {
	return &PaymentUseCase{payments: payments}
}

// Record queues a payment for point accrual.
func (u *PaymentUseCase) Record(ctx context.Context, customerID int64, amount decimal.Decimal) (*model.PaymentEvent, error) {
	if customerID <= 0 {
		return nil, domainErrors.ErrInvalidArgument
	}
	if amount.Sign() <= 0 {
		return nil, domainErrors.ErrInvalidArgument
	}
	return u.payments.Enqueue(ctx, customerID, amount)
}

// SelectBatchForProcessing claims pending payment events for a worker.
func (u *PaymentUseCase) SelectBatchForProcessing(ctx context.Context, limit int) ([]model.PaymentEvent, error) {
	return u.payments.SelectBatchForProcessing(ctx, limit)
}

// MarkProcessed finalizes a payment event after successful accrual.
func (u *PaymentUseCase) MarkProcessed(ctx context.Context, id int64) error {
	return u.payments.MarkProcessed(ctx, id)
}

// MarkInvalid rejects a payment event that can never accrue.
func (u *PaymentUseCase) MarkInvalid(ctx context.Context, id int64) error {
	return u.payments.MarkInvalid(ctx, id)
}

// Requeue returns an event whose accrual never happened to the queue. Must
// not be called once points were credited.
func (u *PaymentUseCase) Requeue(ctx context.Context, id int64) error {
	return u.payments.Requeue(ctx, id)
}
