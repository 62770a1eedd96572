package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRequest describes an incoming payment notification.
type PaymentRequest struct {
	CustomerID int64           `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// PaymentResponse reports the queued payment event.
type PaymentResponse struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}
