package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"expense-tracker/internal/dto"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidTitle        = errors.New("title is required")
	ErrInvalidAmount       = errors.New("amount must be a positive number")
	ErrInvalidDate         = errors.New("invalid transaction date")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionDateLayouts are the formats accepted for manually entered
// transactions, tried in order.
var transactionDateLayouts = []string{time.RFC3339, "2006-01-02"}

type TransactionService struct {
	txRepo *repository.TransactionRepository
	logger *zap.Logger
}

func NewTransactionService(txRepo *repository.TransactionRepository, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		txRepo: txRepo,
		logger: logger,
	}
}

// AddTransaction validates and stores a manually entered income or expense.
func (s *TransactionService) AddTransaction(ctx context.Context, userID uuid.UUID, req *dto.AddTransactionRequest, txType models.TransactionType) (*models.Transaction, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidTitle
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	date, err := parseTransactionDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tx := &models.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        txType,
		Title:       strings.TrimSpace(req.Title),
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// CreateExpense stores an already-normalized expense. Unlike manual entry
// it accepts a zero amount: the bill pipeline defaults unreadable amounts
// to zero rather than rejecting the record.
func (s *TransactionService) CreateExpense(ctx context.Context, userID uuid.UUID, data *models.ExpenseData) (*models.Transaction, error) {
	now := time.Now()
	tx := &models.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        models.TransactionTypeExpense,
		Title:       data.Title,
		Amount:      data.Amount,
		Category:    data.Category,
		Description: data.Description,
		Date:        data.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, userID uuid.UUID, txType models.TransactionType) ([]*models.Transaction, error) {
	return s.txRepo.ListByUserAndType(ctx, userID, txType)
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, id uuid.UUID, txType models.TransactionType) error {
	removed, err := s.txRepo.Delete(ctx, userID, id, txType)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// Summary aggregates the user's totals and resulting balance.
func (s *TransactionService) Summary(ctx context.Context, userID uuid.UUID) (*dto.SummaryResponse, error) {
	totalIncome, err := s.txRepo.SumByType(ctx, userID, models.TransactionTypeIncome)
	if err != nil {
		return nil, err
	}

	totalExpense, err := s.txRepo.SumByType(ctx, userID, models.TransactionTypeExpense)
	if err != nil {
		return nil, err
	}

	return &dto.SummaryResponse{
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Balance:      totalIncome - totalExpense,
	}, nil
}

func parseTransactionDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range transactionDateLayouts {
		if date, err := time.Parse(layout, raw); err == nil {
			return date, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
