// Package events рассылает доменные события наружу (сейчас только о выполненных целях).
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const GoalCompletedType = "goal.completed"

// GoalCompleted отправляется один раз, когда цель впервые достигает целевой суммы
type GoalCompleted struct {
	Type          string          `json:"type"`
	GoalID        uuid.UUID       `json:"goalId"`
	UserID        uuid.UUID       `json:"userId"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	CompletedAt   time.Time       `json:"completedAt"`
}

func (e *GoalCompleted) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	PublishGoalCompleted(ctx context.Context, event *GoalCompleted) error
	Close() error
}

// NopPublisher используется, когда брокер не настроен
type NopPublisher struct{}

func (NopPublisher) PublishGoalCompleted(context.Context, *GoalCompleted) error { return nil }

func (NopPublisher) Close() error { return nil }
