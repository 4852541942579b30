package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

type Transaction struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.UUID       `db:"user_id"`
	Type        TransactionType `db:"type"`
	Title       string          `db:"title"`
	Amount      float64         `db:"amount"`
	Category    string          `db:"category"`
	Description string          `db:"description"`
	Date        time.Time       `db:"date"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// ExpenseData is the fully-normalized, store-ready representation of one
// spending event. Every field is always populated: callers that build it
// from unreliable input apply their own fallbacks first.
type ExpenseData struct {
	Title       string
	Amount      float64
	Category    string
	Description string
	Date        time.Time
}
