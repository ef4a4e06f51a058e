package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
)

// Рекомендуемые категории; сервер принимает любую строку
var GoalCategories = []string{
	"Savings",
	"Vehicle",
	"Travel",
	"Housing",
	"Education",
	"Health",
	"Other",
}

type Goal struct {
	ID            uuid.UUID       `json:"_id" db:"id"`
	UserID        uuid.UUID       `json:"user" db:"user_id"`
	Name          string          `json:"name" db:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount" db:"target_amount"`
	CurrentAmount decimal.Decimal `json:"currentAmount" db:"current_amount"`
	Deadline      time.Time       `json:"deadline" db:"deadline"`
	Category      string          `json:"category" db:"category"`
	Icon          string          `json:"icon" db:"icon"`
	Color         string          `json:"color" db:"color"`
	Status        GoalStatus      `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty" db:"completed_at"`

	// Вычисляются на лету
	Progress      float64 `json:"progress" db:"-"`
	DaysRemaining int     `json:"daysRemaining" db:"-"`
}

// Reached сообщает, накоплена ли целевая сумма
func (g *Goal) Reached() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// MarkCompletedIfReached повышает статус до completed; completed_at ставится один раз.
// Обратного перехода нет.
func (g *Goal) MarkCompletedIfReached(now time.Time) {
	if !g.Reached() {
		return
	}
	g.Status = GoalStatusCompleted
	if g.CompletedAt == nil {
		g.CompletedAt = &now
	}
}

// GoalCreate повторяет поля формы SPA: target и current вместо targetAmount/currentAmount
type GoalCreate struct {
	Name     string           `json:"name" binding:"required"`
	Target   *decimal.Decimal `json:"target" binding:"required"`
	Current  *decimal.Decimal `json:"current"`
	Deadline *Date            `json:"deadline"`
	Category string           `json:"category"`
	Icon     string           `json:"icon"`
	Color    string           `json:"color"`
}

type GoalUpdate struct {
	Name     *string          `json:"name"`
	Target   *decimal.Decimal `json:"target"`
	Current  *decimal.Decimal `json:"current"`
	Deadline *Date            `json:"deadline"`
	Category *string          `json:"category"`
	Icon     *string          `json:"icon"`
	Color    *string          `json:"color"`
}

// Apply переносит в цель только переданные поля
func (u *GoalUpdate) Apply(g *Goal) {
	if u.Name != nil {
		g.Name = *u.Name
	}
	if u.Target != nil {
		g.TargetAmount = *u.Target
	}
	if u.Current != nil {
		g.CurrentAmount = *u.Current
	}
	if d := u.Deadline.Ptr(); d != nil {
		g.Deadline = *d
	}
	if u.Category != nil {
		g.Category = *u.Category
	}
	if u.Icon != nil {
		g.Icon = *u.Icon
	}
	if u.Color != nil {
		g.Color = *u.Color
	}
}

type AddFundsRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required"`
}

type SeedResult struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}
