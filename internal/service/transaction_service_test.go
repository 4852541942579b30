package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestParseTransactionDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "rfc3339",
			input: "2024-04-25T10:30:00Z",
			want:  time.Date(2024, 4, 25, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "date only",
			input: "2024-04-25",
			want:  time.Date(2024, 4, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "padded",
			input: "  2024-04-25  ",
			want:  time.Date(2024, 4, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			input:   "25th of April",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTransactionDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Errorf("parseTransactionDate(%q) error = %v, want ErrInvalidDate", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTransactionDate(%q) failed: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseTransactionDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAddTransactionValidation(t *testing.T) {
	// Validation failures are rejected before the repository is touched,
	// so no database is needed here.
	svc := NewTransactionService(nil, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	tests := []struct {
		name    string
		req     dto.AddTransactionRequest
		wantErr error
	}{
		{
			name:    "missing title",
			req:     dto.AddTransactionRequest{Title: "  ", Amount: 10, Category: "Salary", Date: "2024-04-25"},
			wantErr: ErrInvalidTitle,
		},
		{
			name:    "zero amount",
			req:     dto.AddTransactionRequest{Title: "Salary", Amount: 0, Category: "Salary", Date: "2024-04-25"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			req:     dto.AddTransactionRequest{Title: "Salary", Amount: -5, Category: "Salary", Date: "2024-04-25"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "bad date",
			req:     dto.AddTransactionRequest{Title: "Salary", Amount: 10, Category: "Salary", Date: "soon"},
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddTransaction(ctx, userID, &tt.req, models.TransactionTypeIncome)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddTransaction error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
