package model

import "github.com/shopspring/decimal"

// PointProgram defines the monetary value refunded per redeemed point.
// Programs are read-only from the ledger's perspective.
type PointProgram struct {
	ID           int64
	Name         string
	DiscountRate decimal.Decimal
}
