package test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/hotelworks/loyalty/internal/domain/errors"
	"github.com/hotelworks/loyalty/internal/domain/model"
)

// CustomerRepositoryStub stores customers in-memory for tests.
//
// When Ledger is set, GetByID reports the balance held by the ledger stub so
// the two stubs stay consistent the way the real repository does with a single
// customers.point_balance row.
type CustomerRepositoryStub struct {
	Customers map[int64]*model.Customer
	Infos     map[int64]*model.CustomerPointsInfo
	Ledger    *LedgerRepositoryStub
	GetFn     func(context.Context, int64) (*model.Customer, error)
	InfoFn    func(context.Context, int64) (*model.CustomerPointsInfo, error)
	Err       error
}

// NewCustomerRepositoryStub constructs stub repository with initialized maps.
func NewCustomerRepositoryStub() *CustomerRepositoryStub {
	return &CustomerRepositoryStub{
		Customers: make(map[int64]*model.Customer),
		Infos:     make(map[int64]*model.CustomerPointsInfo),
	}
}

// GetByID fetches customer by identifier or returns not found.
func (s *CustomerRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if c, ok := s.Customers[id]; ok {
		copied := *c
		if s.Ledger != nil {
			if balance, err := s.Ledger.GetBalance(ctx, id); err == nil {
				copied.PointBalance = balance
			}
		}
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// PointsInfo fetches combined balance and program details.
func (s *CustomerRepositoryStub) PointsInfo(ctx context.Context, id int64) (*model.CustomerPointsInfo, error) {
	if s.InfoFn != nil {
		return s.InfoFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if info, ok := s.Infos[id]; ok {
		return info, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ProgramRepositoryStub serves point programs from a map.
type ProgramRepositoryStub struct {
	Programs map[int64]*model.PointProgram
	GetFn    func(context.Context, int64) (*model.PointProgram, error)
}

// GetByID returns matched program either via override or stored map.
func (s *ProgramRepositoryStub) GetByID(ctx context.Context, id int64) (*model.PointProgram, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	if p, ok := s.Programs[id]; ok {
		return p, nil
	}
	return nil, domainErrors.ErrNotFound
}

// LedgerRepositoryStub keeps balances in-memory and serializes adjustments the
// way the real repository does with a row lock, which makes it usable in
// concurrency tests.
type LedgerRepositoryStub struct {
	mu       sync.Mutex
	Balances map[int64]int64
	Entries  []model.PointHistoryEntry
	AdjustFn func(context.Context, int64, int64, model.TransactionKind) (int64, error)
	GetFn    func(context.Context, int64) (int64, error)
	Err      error
	nextID   int64
}

// NewLedgerRepositoryStub constructs stub with initialized balance map.
func NewLedgerRepositoryStub() *LedgerRepositoryStub {
	return &LedgerRepositoryStub{Balances: make(map[int64]int64)}
}

// GetBalance returns the stored balance or not found.
func (s *LedgerRepositoryStub) GetBalance(ctx context.Context, customerID int64) (int64, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, customerID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	balance, ok := s.Balances[customerID]
	if !ok {
		return 0, domainErrors.ErrNotFound
	}
	return balance, nil
}

// AdjustBalance applies delta atomically and records a history entry.
func (s *LedgerRepositoryStub) AdjustBalance(ctx context.Context, customerID int64, delta int64, kind model.TransactionKind) (int64, error) {
	if s.AdjustFn != nil {
		return s.AdjustFn(ctx, customerID, delta, kind)
	}
	if s.Err != nil {
		return 0, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	balance, ok := s.Balances[customerID]
	if !ok {
		return 0, domainErrors.ErrNotFound
	}
	if balance+delta < 0 {
		return 0, domainErrors.ErrInsufficientBalance
	}
	balance += delta
	s.Balances[customerID] = balance
	s.nextID++
	s.Entries = append(s.Entries, model.PointHistoryEntry{
		ID:         s.nextID,
		CustomerID: customerID,
		PointDelta: delta,
		Kind:       kind,
		CreatedAt:  time.Now(),
	})
	return balance, nil
}

// EntriesFor returns recorded history entries for one customer.
func (s *LedgerRepositoryStub) EntriesFor(customerID int64) []model.PointHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.PointHistoryEntry
	for _, e := range s.Entries {
		if e.CustomerID == customerID {
			result = append(result, e)
		}
	}
	return result
}

// HistoryRepositoryStub serves audit trail entries for tests.
type HistoryRepositoryStub struct {
	Items  []model.PointHistoryEntry
	ListFn func(context.Context, int64) ([]model.PointHistoryEntry, error)
}

// ListByCustomer returns configured entries.
func (s *HistoryRepositoryStub) ListByCustomer(ctx context.Context, customerID int64) ([]model.PointHistoryEntry, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, customerID)
	}
	return s.Items, nil
}

// PaymentEventRepositoryStub queues payment events in-memory.
type PaymentEventRepositoryStub struct {
	mu          sync.Mutex
	Events      []model.PaymentEvent
	EnqueueFn   func(context.Context, int64, decimal.Decimal) (*model.PaymentEvent, error)
	SelectFn    func(context.Context, int) ([]model.PaymentEvent, error)
	ProcessedFn func(context.Context, int64) error
	InvalidFn   func(context.Context, int64) error
	RequeueFn   func(context.Context, int64) error
	Processed   []int64
	Invalid     []int64
	Requeued    []int64
	nextID      int64
}

// Enqueue stores a new payment event.
func (s *PaymentEventRepositoryStub) Enqueue(ctx context.Context, customerID int64, amount decimal.Decimal) (*model.PaymentEvent, error) {
	if s.EnqueueFn != nil {
		return s.EnqueueFn(ctx, customerID, amount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	event := model.PaymentEvent{
		ID:         s.nextID,
		CustomerID: customerID,
		Amount:     amount,
		Status:     model.PaymentStatusNew,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	s.Events = append(s.Events, event)
	return &event, nil
}

// SelectBatchForProcessing claims queued events up to limit, moving each one
// to the processing status so it is not handed out again.
func (s *PaymentEventRepositoryStub) SelectBatchForProcessing(ctx context.Context, limit int) ([]model.PaymentEvent, error) {
	if s.SelectFn != nil {
		return s.SelectFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var batch []model.PaymentEvent
	for i := range s.Events {
		if len(batch) == limit {
			break
		}
		if s.Events[i].Status == model.PaymentStatusNew {
			s.Events[i].Status = model.PaymentStatusProcessing
			batch = append(batch, s.Events[i])
		}
	}
	return batch, nil
}

// MarkProcessed records processed event identifiers.
func (s *PaymentEventRepositoryStub) MarkProcessed(ctx context.Context, id int64) error {
	if s.ProcessedFn != nil {
		return s.ProcessedFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Processed = append(s.Processed, id)
	s.setStatus(id, model.PaymentStatusProcessed)
	return nil
}

// MarkInvalid records invalid event identifiers.
func (s *PaymentEventRepositoryStub) MarkInvalid(ctx context.Context, id int64) error {
	if s.InvalidFn != nil {
		return s.InvalidFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Invalid = append(s.Invalid, id)
	s.setStatus(id, model.PaymentStatusInvalid)
	return nil
}

// Requeue records identifiers returned to the queue.
func (s *PaymentEventRepositoryStub) Requeue(ctx context.Context, id int64) error {
	if s.RequeueFn != nil {
		return s.RequeueFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Requeued = append(s.Requeued, id)
	s.setStatus(id, model.PaymentStatusNew)
	return nil
}

func (s *PaymentEventRepositoryStub) setStatus(id int64, status model.PaymentStatus) {
	for i := range s.Events {
		if s.Events[i].ID == id {
			s.Events[i].Status = status
		}
	}
}
