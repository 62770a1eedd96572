package usecase

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	domainErrors "github.com/hotelworks/loyalty/internal/domain/errors"
	"github.com/hotelworks/loyalty/internal/domain/model"
	"github.com/hotelworks/loyalty/internal/domain/repository"
)

// LedgerUseCase orchestrates loyalty point accrual and redemption.
//
// Redemption is deliberately not idempotent: issuing the same request twice
// spends points twice. Deduplication, if needed, belongs to the caller.
type LedgerUseCase struct {
	customers repository.CustomerRepository
	programs  repository.ProgramRepository
	ledger    repository.LedgerRepository
	history   repository.HistoryRepository
	policy    AccrualPolicy
	logger    *slog.Logger
}

// NewLedgerUseCase constructs LedgerUseCase.
func NewLedgerUseCase(
	customers repository.CustomerRepository,
	programs repository.ProgramRepository,
	ledger repository.LedgerRepository,
	history repository.HistoryRepository,
	policy AccrualPolicy,
	logger *slog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		customers: customers,
		programs:  programs,
		ledger:    ledger,
		history:   history,
		policy:    policy,
		logger:    logger,
	}
}

// Accrue credits points for a payment amount according to the accrual policy.
// A payment too small to earn a point succeeds without touching storage.
func (u *LedgerUseCase) Accrue(ctx context.Context, customerID int64, amount decimal.Decimal) (*model.AccrualResult, error) {
	if customerID <= 0 {
		return nil, domainErrors.ErrInvalidArgument
	}
	if amount.Sign() < 0 {
		return nil, domainErrors.ErrInvalidArgument
	}

	customer, err := u.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	points := u.policy.Points(amount)
	if points == 0 {
		return &model.AccrualResult{PointsAdded: 0, NewBalance: customer.PointBalance}, nil
	}

	newBalance, err := u.ledger.AdjustBalance(ctx, customerID, points, model.TransactionAccrue)
	if err != nil {
		return nil, err
	}

	u.logger.Info("points accrued",
		slog.Int64("customer_id", customerID),
		slog.Int64("points", points),
		slog.Int64("balance", newBalance),
	)
	return &model.AccrualResult{PointsAdded: points, NewBalance: newBalance}, nil
}

// Redeem spends points in exchange for a monetary discount computed from the
// customer's point program. The balance pre-check here is an early exit; the
// authoritative check happens under the row lock in AdjustBalance.
func (u *LedgerUseCase) Redeem(ctx context.Context, customerID int64, points int64) (*model.RedemptionResult, error) {
	if customerID <= 0 || points <= 0 {
		return nil, domainErrors.ErrInvalidArgument
	}

	customer, err := u.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if customer.PointBalance < points {
		return nil, domainErrors.ErrInsufficientBalance
	}

	if customer.ProgramID == nil {
		return nil, domainErrors.ErrNotFound
	}
	program, err := u.programs.GetByID(ctx, *customer.ProgramID)
	if err != nil {
		return nil, err
	}

	discount := decimal.NewFromInt(points).Mul(program.DiscountRate)

	newBalance, err := u.ledger.AdjustBalance(ctx, customerID, -points, model.TransactionRedeem)
	if err != nil {
		return nil, err
	}

	u.logger.Info("points redeemed",
		slog.Int64("customer_id", customerID),
		slog.Int64("points", points),
		slog.Int64("balance", newBalance),
		slog.String("discount", discount.String()),
	)
	return &model.RedemptionResult{PointsUsed: points, NewBalance: newBalance, Discount: discount}, nil
}

// AdjustPoints applies a signed manual correction to a customer's balance.
// The history kind follows the sign of the delta.
func (u *LedgerUseCase) AdjustPoints(ctx context.Context, customerID int64, delta int64) (int64, error) {
	if customerID <= 0 || delta == 0 {
		return 0, domainErrors.ErrInvalidArgument
	}

	if _, err := u.customers.GetByID(ctx, customerID); err != nil {
		return 0, err
	}

	newBalance, err := u.ledger.AdjustBalance(ctx, customerID, delta, model.KindForDelta(delta))
	if err != nil {
		return 0, err
	}

	u.logger.Info("points adjusted",
		slog.Int64("customer_id", customerID),
		slog.Int64("delta", delta),
		slog.Int64("balance", newBalance),
	)
	return newBalance, nil
}

// Balance returns the customer's current point balance.
func (u *LedgerUseCase) Balance(ctx context.Context, customerID int64) (int64, error) {
	if customerID <= 0 {
		return 0, domainErrors.ErrInvalidArgument
	}
	return u.ledger.GetBalance(ctx, customerID)
}

// History returns the customer's point audit trail, newest first.
func (u *LedgerUseCase) History(ctx context.Context, customerID int64) ([]model.PointHistoryEntry, error) {
	if customerID <= 0 {
		return nil, domainErrors.ErrInvalidArgument
	}
	return u.history.ListByCustomer(ctx, customerID)
}

// PointsInfo returns the customer's balance together with program details.
func (u *LedgerUseCase) PointsInfo(ctx context.Context, customerID int64) (*model.CustomerPointsInfo, error) {
	if customerID <= 0 {
		return nil, domainErrors.ErrInvalidArgument
	}
	return u.customers.PointsInfo(ctx, customerID)
}
