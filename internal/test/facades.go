package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hotelworks/loyalty/internal/domain/model"
)

// LedgerFacadeStub provides controllable behaviour for ledger endpoints.
type LedgerFacadeStub struct {
	AccrueFn     func(context.Context, int64, decimal.Decimal) (*model.AccrualResult, error)
	RedeemFn     func(context.Context, int64, int64) (*model.RedemptionResult, error)
	AdjustFn     func(context.Context, int64, int64) (int64, error)
	BalanceFn    func(context.Context, int64) (int64, error)
	HistoryFn    func(context.Context, int64) ([]model.PointHistoryEntry, error)
	PointsInfoFn func(context.Context, int64) (*model.CustomerPointsInfo, error)
}

// Accrue delegates to provided function or returns a default result.
func (s LedgerFacadeStub) Accrue(ctx context.Context, customerID int64, amount decimal.Decimal) (*model.AccrualResult, error) {
	if s.AccrueFn != nil {
		return s.AccrueFn(ctx, customerID, amount)
	}
	return &model.AccrualResult{PointsAdded: 10, NewBalance: 10}, nil
}

// Redeem delegates to provided function or returns a default result.
func (s LedgerFacadeStub) Redeem(ctx context.Context, customerID int64, points int64) (*model.RedemptionResult, error) {
	if s.RedeemFn != nil {
		return s.RedeemFn(ctx, customerID, points)
	}
	return &model.RedemptionResult{PointsUsed: points, NewBalance: 0, Discount: decimal.NewFromInt(points)}, nil
}

// AdjustPoints delegates to provided function or echoes the delta.
func (s LedgerFacadeStub) AdjustPoints(ctx context.Context, customerID int64, delta int64) (int64, error) {
	if s.AdjustFn != nil {
		return s.AdjustFn(ctx, customerID, delta)
	}
	return delta, nil
}

// Balance returns configured balance or default.
func (s LedgerFacadeStub) Balance(ctx context.Context, customerID int64) (int64, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, customerID)
	}
	return 10, nil
}

// History returns configured entries or a single default entry.
func (s LedgerFacadeStub) History(ctx context.Context, customerID int64) ([]model.PointHistoryEntry, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, customerID)
	}
	return []model.PointHistoryEntry{{ID: 1, CustomerID: customerID, PointDelta: 10, Kind: model.TransactionAccrue, CreatedAt: time.Unix(0, 0)}}, nil
}

// PointsInfo returns configured info or default data.
func (s LedgerFacadeStub) PointsInfo(ctx context.Context, customerID int64) (*model.CustomerPointsInfo, error) {
	if s.PointsInfoFn != nil {
		return s.PointsInfoFn(ctx, customerID)
	}
	return &model.CustomerPointsInfo{CustomerID: customerID, FullName: "Guest", PointBalance: 10}, nil
}

// PaymentFacadeStub simulates payment recording.
type PaymentFacadeStub struct {
	RecordFn func(context.Context, int64, decimal.Decimal) (*model.PaymentEvent, error)
}

// RecordPayment executes configured handler or returns a queued event.
func (s PaymentFacadeStub) RecordPayment(ctx context.Context, customerID int64, amount decimal.Decimal) (*model.PaymentEvent, error) {
	if s.RecordFn != nil {
		return s.RecordFn(ctx, customerID, amount)
	}
	return &model.PaymentEvent{ID: 1, CustomerID: customerID, Amount: amount, Status: model.PaymentStatusNew}, nil
}

// BackofficeFacadeStub aggregates ledger and payment stubs for router tests.
type BackofficeFacadeStub struct {
	LedgerFacadeStub
	PaymentFacadeStub
}

// AccrualCall stores information about Accrue invocations.
type AccrualCall struct {
	CustomerID int64
	Amount     decimal.Decimal
}

// WorkerFacadeStub mimics worker interactions with the ledger facade.
type WorkerFacadeStub struct {
	Batches     [][]model.PaymentEvent
	BatchesFn   func(context.Context, int) ([]model.PaymentEvent, error)
	AccrueFn    func(context.Context, int64, decimal.Decimal) (*model.AccrualResult, error)
	ProcessedFn func(context.Context, int64) error
	InvalidFn   func(context.Context, int64) error
	RequeueFn   func(context.Context, int64) error

	Accruals  []AccrualCall
	Processed []int64
	Invalid   []int64
	Requeued  []int64

	mu             sync.Mutex
	batchCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// PaymentsForProcessing returns batches from configured queue.
func (s *WorkerFacadeStub) PaymentsForProcessing(ctx context.Context, limit int) ([]model.PaymentEvent, error) {
	if s.BatchesFn != nil {
		return s.BatchesFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.batchCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// Accrue records accrual requests.
func (s *WorkerFacadeStub) Accrue(ctx context.Context, customerID int64, amount decimal.Decimal) (*model.AccrualResult, error) {
	if s.AccrueFn != nil {
		return s.AccrueFn(ctx, customerID, amount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Accruals = append(s.Accruals, AccrualCall{CustomerID: customerID, Amount: amount})
	return &model.AccrualResult{PointsAdded: 1, NewBalance: 1}, nil
}

// MarkPaymentProcessed records processed payment identifiers.
func (s *WorkerFacadeStub) MarkPaymentProcessed(ctx context.Context, id int64) error {
	if s.ProcessedFn != nil {
		return s.ProcessedFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Processed = append(s.Processed, id)
	return nil
}

// RequeuePayment records identifiers returned to the queue.
func (s *WorkerFacadeStub) RequeuePayment(ctx context.Context, id int64) error {
	if s.RequeueFn != nil {
		return s.RequeueFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Requeued = append(s.Requeued, id)
	return nil
}

// MarkPaymentInvalid records rejected payment identifiers.
func (s *WorkerFacadeStub) MarkPaymentInvalid(ctx context.Context, id int64) error {
	if s.InvalidFn != nil {
		return s.InvalidFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Invalid = append(s.Invalid, id)
	return nil
}
