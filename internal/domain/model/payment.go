package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus describes the processing lifecycle of a payment event.
type PaymentStatus string

const (
	PaymentStatusNew        PaymentStatus = "NEW"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusProcessed  PaymentStatus = "PROCESSED"
	PaymentStatusInvalid    PaymentStatus = "INVALID"
)

// PaymentEvent is a recorded payment waiting to be converted into points.
type PaymentEvent struct {
	ID         int64
	CustomerID int64
	Amount     decimal.Decimal
	Status     PaymentStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
