package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/hotelworks/loyalty/internal/domain/errors"
	"github.com/hotelworks/loyalty/internal/domain/model"
	testhelpers "github.com/hotelworks/loyalty/internal/test"
)

func TestPaymentRecordValidation(t *testing.T) {
	repo := &testhelpers.PaymentEventRepositoryStub{}
	uc := NewPaymentUseCase(repo)

	if _, err := uc.Record(context.Background(), 0, decimal.NewFromInt(10)); err != domainErrors.ErrInvalidArgument {
		t.Fatalf("expected invalid argument for bad customer, got %v", err)
	}
	if _, err := uc.Record(context.Background(), 1, decimal.Zero); err != domainErrors.ErrInvalidArgument {
		t.Fatalf("expected invalid argument for zero amount, got %v", err)
	}
	if _, err := uc.Record(context.Background(), 1, decimal.RequireFromString("-5")); err != domainErrors.ErrInvalidArgument {
		t.Fatalf("expected invalid argument for negative amount, got %v", err)
	}
	if len(repo.Events) != 0 {
		t.Fatal("expected no events enqueued on validation errors")
	}
}

func TestPaymentRecordEnqueues(t *testing.T) {
	repo := &testhelpers.PaymentEventRepositoryStub{}
	uc := NewPaymentUseCase(repo)

	event, err := uc.Record(context.Background(), 7, decimal.RequireFromString("120.50"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.CustomerID != 7 || event.Status != model.PaymentStatusNew {
		t.Fatalf("unexpected event: %+v", event)
	}
	if !event.Amount.Equal(decimal.RequireFromString("120.50")) {
		t.Fatalf("unexpected amount %s", event.Amount)
	}
}

func TestPaymentBatchLifecycle(t *testing.T) {
	repo := &testhelpers.PaymentEventRepositoryStub{}
	uc := NewPaymentUseCase(repo)

	first, _ := uc.Record(context.Background(), 1, decimal.NewFromInt(100))
	second, _ := uc.Record(context.Background(), 2, decimal.NewFromInt(200))

	batch, err := uc.SelectBatchForProcessing(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("expected 2 events, got %d", len(batch))
	}

	// Claimed events are out of the queue until explicitly requeued.
	if next, _ := uc.SelectBatchForProcessing(context.Background(), 10); len(next) != 0 {
		t.Fatalf("expected claimed events not selectable again, got %d", len(next))
	}
	if err := uc.Requeue(context.Background(), first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requeued, err := uc.SelectBatchForProcessing(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(requeued) != 1 || requeued[0].ID != first.ID {
		t.Fatalf("expected requeued event selectable again, got %v", requeued)
	}

	if err := uc.MarkProcessed(context.Background(), first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.MarkInvalid(context.Background(), second.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.Processed) != 1 || repo.Processed[0] != first.ID {
		t.Fatalf("unexpected processed list: %v", repo.Processed)
	}
	if len(repo.Invalid) != 1 || repo.Invalid[0] != second.ID {
		t.Fatalf("unexpected invalid list: %v", repo.Invalid)
	}
}
