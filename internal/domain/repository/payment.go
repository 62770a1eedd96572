package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/hotelworks/loyalty/internal/domain/model"
)

// PaymentEventRepository queues payments awaiting point accrual.
//
// SelectBatchForProcessing claims NEW events and moves them to PROCESSING;
// a claimed event is never handed out again. Requeue returns an event whose
// accrual did not happen back to NEW so a later batch picks it up. An event
// that was accrued but could not be finalized stays PROCESSING: crediting
// points is not replayable, so it must wait for manual resolution rather
// than be claimed a second time.
type PaymentEventRepository interface {
	Enqueue(ctx context.Context, customerID int64, amount decimal.Decimal) (*model.PaymentEvent, error)
	SelectBatchForProcessing(ctx context.Context, limit int) ([]model.PaymentEvent, error)
	MarkProcessed(ctx context.Context, id int64) error
	MarkInvalid(ctx context.Context, id int64) error
	Requeue(ctx context.Context, id int64) error
}
