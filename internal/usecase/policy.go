package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccrualPolicy converts paid currency amounts into loyalty points. One point
// is earned per whole CurrencyPerPoint spent; remainders do not carry over to
// the next payment.
type AccrualPolicy struct {
	currencyPerPoint decimal.Decimal
}

// NewAccrualPolicy constructs a policy. The rate must be positive.
func NewAccrualPolicy(currencyPerPoint decimal.Decimal) (AccrualPolicy, error) {
	if currencyPerPoint.Sign() <= 0 {
		return AccrualPolicy{}, fmt.Errorf("currency per point must be positive, got %s", currencyPerPoint)
	}
	return AccrualPolicy{currencyPerPoint: currencyPerPoint}, nil
}

// Points returns the number of points earned for amount. Zero or negative
// amounts earn nothing.
func (p AccrualPolicy) Points(amount decimal.Decimal) int64 {
	if amount.Sign() <= 0 {
		return 0
	}
	return amount.Div(p.currencyPerPoint).Floor().IntPart()
}
