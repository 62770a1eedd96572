package repository

import (
	"context"

	"github.com/hotelworks/loyalty/internal/domain/model"
)

// CustomerRepository reads customer rows relevant to the ledger.
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	PointsInfo(ctx context.Context, id int64) (*model.CustomerPointsInfo, error)
}
