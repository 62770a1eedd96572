package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/hotelworks/loyalty/internal/domain/errors"
	"github.com/hotelworks/loyalty/internal/domain/model"
)

// LedgerFacade exposes the subset of application functionality required by the worker.
type LedgerFacade interface {
	PaymentsForProcessing(ctx context.Context, limit int) ([]model.PaymentEvent, error)
	Accrue(ctx context.Context, customerID int64, amount decimal.Decimal) (*model.AccrualResult, error)
	MarkPaymentProcessed(ctx context.Context, id int64) error
	MarkPaymentInvalid(ctx context.Context, id int64) error
	RequeuePayment(ctx context.Context, id int64) error
}

// PaymentProcessor polls recorded payment events and converts them into
// loyalty points concurrently.
type PaymentProcessor struct {
	facade       LedgerFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.PaymentEvent
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentProcessor constructs payment processor worker pool.
func NewPaymentProcessor(facade LedgerFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PaymentProcessor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PaymentProcessor{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.PaymentEvent, batchSize*workers),
	}
}

// Start launches background processing.
func (p *PaymentProcessor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PaymentProcessor) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PaymentProcessor) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PaymentProcessor) fetchAndDispatch(ctx context.Context) {
	events, err := p.facade.PaymentsForProcessing(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch payment events failed", slog.String("error", err.Error()))
		return
	}
	for _, event := range events {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- event:
		}
	}
}

func (p *PaymentProcessor) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handlePayment(ctx, event)
		}
	}
}

func (p *PaymentProcessor) handlePayment(ctx context.Context, event model.PaymentEvent) {
	result, err := p.facade.Accrue(ctx, event.CustomerID, event.Amount)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) || errors.Is(err, domainErrors.ErrInvalidArgument) {
			p.logger.Warn("payment event rejected",
				slog.Int64("payment_id", event.ID),
				slog.Int64("customer_id", event.CustomerID),
				slog.String("reason", err.Error()),
			)
			if err := p.facade.MarkPaymentInvalid(ctx, event.ID); err != nil {
				p.logger.Error("mark payment invalid failed", slog.Int64("payment_id", event.ID), slog.String("error", err.Error()))
			}
			return
		}
		// Nothing was credited; hand the event back for a later poll.
		p.logger.Error("payment accrual failed", slog.Int64("payment_id", event.ID), slog.String("error", err.Error()))
		if err := p.facade.RequeuePayment(ctx, event.ID); err != nil {
			p.logger.Error("payment requeue failed", slog.Int64("payment_id", event.ID), slog.String("error", err.Error()))
		}
		return
	}

	if err := p.facade.MarkPaymentProcessed(ctx, event.ID); err != nil {
		// Points are already credited. The event must not go back to the
		// queue, otherwise it would be accrued a second time.
		p.logger.Error("mark payment processed failed", slog.Int64("payment_id", event.ID), slog.String("error", err.Error()))
		return
	}

	p.logger.Info("payment accrued",
		slog.Int64("payment_id", event.ID),
		slog.Int64("customer_id", event.CustomerID),
		slog.Int64("points", result.PointsAdded),
	)
}
