package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

type Transaction struct {
	ID          uuid.UUID       `json:"_id" db:"id"`
	UserID      uuid.UUID       `json:"user" db:"user_id"`
	Type        TransactionType `json:"type" db:"type"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Category    string          `json:"category" db:"category"`
	Description string          `json:"description" db:"description"`
	Date        time.Time       `json:"date" db:"date"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}

type TransactionCreate struct {
	Type        TransactionType  `json:"type" binding:"required,oneof=income expense"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Date        *Date            `json:"date"`
}

// TransactionFilter - границы дат включительные
type TransactionFilter struct {
	Type      *TransactionType
	StartDate *time.Time
	EndDate   *time.Time
}
