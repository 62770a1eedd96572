package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/hotelworks/loyalty/internal/domain/errors"
	"github.com/hotelworks/loyalty/internal/domain/model"
	testhelpers "github.com/hotelworks/loyalty/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewPaymentProcessorDefaults(t *testing.T) {
	proc := NewPaymentProcessor(&testhelpers.WorkerFacadeStub{}, time.Second, 0, 0, testLogger())
	if proc.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", proc.batchSize)
	}
	if proc.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", proc.workers)
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.After(timeout)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for condition")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestPaymentProcessorAccruesAndMarksProcessed(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.PaymentEvent{{{ID: 1, CustomerID: 7, Amount: decimal.NewFromInt(100)}}},
	}
	proc := NewPaymentProcessor(facade, 10*time.Millisecond, 1, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	waitFor(t, 500*time.Millisecond, func() bool {
		facade.Lock()
		defer facade.Unlock()
		return len(facade.Processed) > 0
	})
	proc.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Accruals) == 0 {
		t.Fatal("expected accrual call")
	}
	if facade.Accruals[0].CustomerID != 7 || !facade.Accruals[0].Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected accrual call: %+v", facade.Accruals[0])
	}
	if facade.Processed[0] != 1 {
		t.Fatalf("expected payment 1 marked processed, got %v", facade.Processed)
	}
	if len(facade.Invalid) != 0 {
		t.Fatalf("expected no invalid payments, got %v", facade.Invalid)
	}
}

func TestPaymentProcessorMarksUnknownCustomerInvalid(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.PaymentEvent{{{ID: 3, CustomerID: 99, Amount: decimal.NewFromInt(10)}}},
		AccrueFn: func(context.Context, int64, decimal.Decimal) (*model.AccrualResult, error) {
			return nil, domainErrors.ErrNotFound
		},
	}
	proc := NewPaymentProcessor(facade, 10*time.Millisecond, 1, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	waitFor(t, 500*time.Millisecond, func() bool {
		facade.Lock()
		defer facade.Unlock()
		return len(facade.Invalid) > 0
	})
	proc.Stop()

	facade.Lock()
	defer facade.Unlock()
	if facade.Invalid[0] != 3 {
		t.Fatalf("expected payment 3 marked invalid, got %v", facade.Invalid)
	}
	if len(facade.Processed) != 0 {
		t.Fatalf("expected no processed payments, got %v", facade.Processed)
	}
}

func TestPaymentProcessorRetriesTransientErrors(t *testing.T) {
	attempts := int32(0)
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.PaymentEvent{
			{{ID: 5, CustomerID: 1, Amount: decimal.NewFromInt(50)}},
			{{ID: 5, CustomerID: 1, Amount: decimal.NewFromInt(50)}},
		},
		AccrueFn: func(context.Context, int64, decimal.Decimal) (*model.AccrualResult, error) {
			if atomic.AddInt32(&attempts, 1) == 1 {
				return nil, errors.New("connection reset")
			}
			return &model.AccrualResult{PointsAdded: 5, NewBalance: 5}, nil
		},
	}
	proc := NewPaymentProcessor(facade, 5*time.Millisecond, 1, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	waitFor(t, time.Second, func() bool {
		facade.Lock()
		defer facade.Unlock()
		return len(facade.Processed) > 0
	})
	proc.Stop()

	if atomic.LoadInt32(&attempts) < 2 {
		t.Fatalf("expected at least two accrual attempts, got %d", attempts)
	}
	facade.Lock()
	defer facade.Unlock()
	if len(facade.Requeued) == 0 || facade.Requeued[0] != 5 {
		t.Fatalf("expected payment 5 requeued after transient failure, got %v", facade.Requeued)
	}
}

func TestPaymentProcessorDoesNotRequeueAfterMarkProcessedFailure(t *testing.T) {
	marks := int32(0)
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.PaymentEvent{{{ID: 9, CustomerID: 2, Amount: decimal.NewFromInt(30)}}},
		ProcessedFn: func(context.Context, int64) error {
			atomic.AddInt32(&marks, 1)
			return errors.New("connection reset")
		},
	}
	proc := NewPaymentProcessor(facade, 5*time.Millisecond, 1, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	waitFor(t, time.Second, func() bool {
		return atomic.LoadInt32(&marks) > 0
	})
	// Give the poller time to pick the event up again if it were requeued.
	time.Sleep(50 * time.Millisecond)
	proc.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Accruals) != 1 {
		t.Fatalf("expected payment 9 accrued exactly once, got %d accruals", len(facade.Accruals))
	}
	if len(facade.Requeued) != 0 {
		t.Fatalf("expected no requeue once points were credited, got %v", facade.Requeued)
	}
}

func TestPaymentProcessorStopIsIdempotent(t *testing.T) {
	proc := NewPaymentProcessor(&testhelpers.WorkerFacadeStub{}, 10*time.Millisecond, 1, 1, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)
	proc.Stop()
	proc.Stop()
}
