package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type mockExtractor struct {
	response string
	err      error
	gotPath  string
}

func (m *mockExtractor) ExtractBill(ctx context.Context, imagePath string) (string, error) {
	m.gotPath = imagePath
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

type mockExpenseStore struct {
	created *models.ExpenseData
	err     error
	calls   int
}

func (m *mockExpenseStore) CreateExpense(ctx context.Context, userID uuid.UUID, data *models.ExpenseData) (*models.Transaction, error) {
	m.calls++
	m.created = data
	if m.err != nil {
		return nil, m.err
	}
	return &models.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        models.TransactionTypeExpense,
		Title:       data.Title,
		Amount:      data.Amount,
		Category:    data.Category,
		Description: data.Description,
		Date:        data.Date,
	}, nil
}

func TestIngestBill(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("fenced extraction becomes persisted expense", func(t *testing.T) {
		extractor := &mockExtractor{
			response: "```json\n[{\"Vendor Name\":\"Coffee Shop\",\"Total Amount\":\"  12.50 \"}]\n```",
		}
		store := &mockExpenseStore{}
		svc := NewBillService(extractor, store, t.TempDir(), zap.NewNop())

		expense, err := svc.IngestBill(ctx, userID, bytes.NewReader([]byte("fake-image-bytes")), "bill.jpg")
		if err != nil {
			t.Fatalf("IngestBill failed: %v", err)
		}

		if store.calls != 1 {
			t.Fatalf("store called %d times, want 1", store.calls)
		}
		if expense.Title != "Coffee Shop" {
			t.Errorf("title = %q, want Coffee Shop", expense.Title)
		}
		if expense.Amount != 12.50 {
			t.Errorf("amount = %v, want 12.50", expense.Amount)
		}
		if expense.Category != defaultCategory {
			t.Errorf("category = %q, want %q", expense.Category, defaultCategory)
		}
		if expense.Description != defaultDescription {
			t.Errorf("description = %q, want %q", expense.Description, defaultDescription)
		}
		if time.Since(store.created.Date) > time.Minute {
			t.Errorf("date = %v, want close to now", store.created.Date)
		}

		if _, err := os.Stat(extractor.gotPath); !os.IsNotExist(err) {
			t.Errorf("temporary bill image %s was not removed", extractor.gotPath)
		}
	})

	t.Run("extraction failure aborts before persistence", func(t *testing.T) {
		extractor := &mockExtractor{
			err: fmt.Errorf("%w: connection refused", ErrExtractionService),
		}
		store := &mockExpenseStore{}
		svc := NewBillService(extractor, store, t.TempDir(), zap.NewNop())

		_, err := svc.IngestBill(ctx, userID, bytes.NewReader([]byte("fake-image-bytes")), "bill.jpg")
		if !errors.Is(err, ErrExtractionService) {
			t.Fatalf("error = %v, want ErrExtractionService", err)
		}
		if store.calls != 0 {
			t.Errorf("store called %d times, want 0", store.calls)
		}

		// The upload must not linger after a failed extraction.
		if _, err := os.Stat(extractor.gotPath); !os.IsNotExist(err) {
			t.Errorf("temporary bill image %s was not removed", extractor.gotPath)
		}
	})

	t.Run("unparsable extraction aborts before persistence", func(t *testing.T) {
		extractor := &mockExtractor{response: "not json"}
		store := &mockExpenseStore{}
		svc := NewBillService(extractor, store, t.TempDir(), zap.NewNop())

		_, err := svc.IngestBill(ctx, userID, bytes.NewReader([]byte("fake-image-bytes")), "bill.jpg")
		if !errors.Is(err, ErrMalformedExtraction) {
			t.Fatalf("error = %v, want ErrMalformedExtraction", err)
		}
		if store.calls != 0 {
			t.Errorf("store called %d times, want 0", store.calls)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		extractor := &mockExtractor{}
		store := &mockExpenseStore{}
		svc := NewBillService(extractor, store, t.TempDir(), zap.NewNop())

		_, err := svc.IngestBill(ctx, userID, nil, "bill.jpg")
		if !errors.Is(err, ErrNoFile) {
			t.Fatalf("error = %v, want ErrNoFile", err)
		}
		if store.calls != 0 {
			t.Errorf("store called %d times, want 0", store.calls)
		}
	})

	t.Run("persistence errors propagate unchanged", func(t *testing.T) {
		extractor := &mockExtractor{
			response: `[{"Vendor Name":"Tesco","Total Amount":"4.20"}]`,
		}
		storeErr := errors.New("connection reset")
		store := &mockExpenseStore{err: storeErr}
		svc := NewBillService(extractor, store, t.TempDir(), zap.NewNop())

		_, err := svc.IngestBill(ctx, userID, bytes.NewReader([]byte("fake-image-bytes")), "bill.jpg")
		if !errors.Is(err, storeErr) {
			t.Fatalf("error = %v, want store error", err)
		}
	})
}
