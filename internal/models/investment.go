package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var InvestmentTypes = []string{
	"stocks",
	"bonds",
	"crypto",
	"real-estate",
	"mutual-funds",
	"other",
}

type Investment struct {
	ID             uuid.UUID       `json:"_id" db:"id"`
	UserID         uuid.UUID       `json:"user" db:"user_id"`
	Name           string          `json:"name" db:"name"`
	Type           string          `json:"type" db:"type"`
	InvestedAmount decimal.Decimal `json:"investedAmount" db:"invested_amount"`
	CurrentValue   decimal.Decimal `json:"currentValue" db:"current_value"`
	PurchaseDate   time.Time       `json:"purchaseDate" db:"purchase_date"`
	Notes          string          `json:"notes" db:"notes"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`
}

type InvestmentCreate struct {
	Name           string           `json:"name" binding:"required"`
	Type           string           `json:"type" binding:"required"`
	InvestedAmount *decimal.Decimal `json:"investedAmount" binding:"required"`
	CurrentValue   *decimal.Decimal `json:"currentValue"`
	PurchaseDate   *Date            `json:"purchaseDate"`
	Notes          string           `json:"notes"`
}

type InvestmentUpdate struct {
	Name           *string          `json:"name"`
	Type           *string          `json:"type"`
	InvestedAmount *decimal.Decimal `json:"investedAmount"`
	CurrentValue   *decimal.Decimal `json:"currentValue"`
	PurchaseDate   *Date            `json:"purchaseDate"`
	Notes          *string          `json:"notes"`
}

func (u *InvestmentUpdate) Apply(inv *Investment) {
	if u.Name != nil {
		inv.Name = *u.Name
	}
	if u.Type != nil {
		inv.Type = *u.Type
	}
	if u.InvestedAmount != nil {
		inv.InvestedAmount = *u.InvestedAmount
	}
	if u.CurrentValue != nil {
		inv.CurrentValue = *u.CurrentValue
	}
	if d := u.PurchaseDate.Ptr(); d != nil {
		inv.PurchaseDate = *d
	}
	if u.Notes != nil {
		inv.Notes = *u.Notes
	}
}
