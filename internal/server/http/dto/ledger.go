package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccrueRequest describes accrual payload for a payment amount.
type AccrueRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// AccrueResponse reports points granted by an accrual.
type AccrueResponse struct {
	PointsAdded int64 `json:"points_added"`
	Balance     int64 `json:"balance"`
}

// RedeemRequest describes redemption payload.
type RedeemRequest struct {
	Points int64 `json:"points"`
}

// RedeemResponse reports the outcome of a redemption.
type RedeemResponse struct {
	PointsUsed int64           `json:"points_used"`
	Balance    int64           `json:"balance"`
	Discount   decimal.Decimal `json:"discount"`
}

// AdjustRequest describes a manual balance correction.
type AdjustRequest struct {
	Delta int64 `json:"delta"`
}

// AdjustResponse reports the balance after a correction.
type AdjustResponse struct {
	Balance int64 `json:"balance"`
}

// BalanceResponse reports the current point balance.
type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

// HistoryEntryResponse describes one ledger transaction.
type HistoryEntryResponse struct {
	ID         int64     `json:"id"`
	PointDelta int64     `json:"point_delta"`
	Kind       string    `json:"kind"`
	CreatedAt  time.Time `json:"created_at"`
}

// PointsInfoResponse combines balance with the customer's program terms.
type PointsInfoResponse struct {
	CustomerID   int64            `json:"customer_id"`
	FullName     string           `json:"full_name"`
	Balance      int64            `json:"balance"`
	ProgramName  *string          `json:"program_name,omitempty"`
	DiscountRate *decimal.Decimal `json:"discount_rate,omitempty"`
}
