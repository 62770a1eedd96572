package model

import "github.com/shopspring/decimal"

// AccrualResult reports the outcome of crediting points for a payment.
type AccrualResult struct {
	PointsAdded int64
	NewBalance  int64
}

// RedemptionResult reports the outcome of spending points for a discount.
type RedemptionResult struct {
	PointsUsed int64
	NewBalance int64
	Discount   decimal.Decimal
}
