package repository

import (
	"context"

	"github.com/hotelworks/loyalty/internal/domain/model"
)

// HistoryRepository reads the append-only point audit trail. Entries are
// written inside LedgerRepository.AdjustBalance; this interface has no update
// or delete operation.
type HistoryRepository interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]model.PointHistoryEntry, error)
}
