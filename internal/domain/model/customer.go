package model

import "github.com/shopspring/decimal"

// Customer represents a hotel guest tracked by the loyalty ledger.
type Customer struct {
	ID           int64
	FullName     string
	Email        string
	Phone        string
	PointBalance int64
	ProgramID    *int64
}

// CustomerPointsInfo combines a customer's balance with the details of the
// point program they are enrolled in, if any.
type CustomerPointsInfo struct {
	CustomerID   int64
	FullName     string
	PointBalance int64
	ProgramName  *string
	DiscountRate *decimal.Decimal
}
