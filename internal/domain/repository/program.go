package repository

import (
	"context"

	"github.com/hotelworks/loyalty/internal/domain/model"
)

// ProgramRepository looks up point programs. Lookup is read-only; a missing
// program means "customer has no usable program", not a systemic fault.
type ProgramRepository interface {
	GetByID(ctx context.Context, id int64) (*model.PointProgram, error)
}
