package repository

import (
	"context"

	"github.com/hotelworks/loyalty/internal/domain/model"
)

// LedgerRepository manages customer point balances.
//
// AdjustBalance applies delta to one customer's balance and appends the
// matching history entry in a single transaction. The balance is locked for
// the duration of the check-then-write, so concurrent adjustments on the same
// customer serialize and can never jointly overdraw. A negative delta that
// would drive the balance below zero fails with ErrInsufficientBalance and
// leaves both balance and history untouched.
type LedgerRepository interface {
	GetBalance(ctx context.Context, customerID int64) (int64, error)
	AdjustBalance(ctx context.Context, customerID int64, delta int64, kind model.TransactionKind) (int64, error)
}
