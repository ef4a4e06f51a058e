package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestGoalCompleted_JSONRoundTrip(t *testing.T) {
	in := &GoalCompleted{
		Type:          GoalCompletedType,
		GoalID:        uuid.New(),
		UserID:        uuid.New(),
		Name:          "Vacation",
		TargetAmount:  decimal.NewFromInt(50000),
		CurrentAmount: decimal.RequireFromString("50000.50"),
		CompletedAt:   time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := in.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out GoalCompleted
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.GoalID != in.GoalID || out.UserID != in.UserID || out.Type != GoalCompletedType {
		t.Errorf("ids/type mismatch: %+v", out)
	}
	if !out.CurrentAmount.Equal(in.CurrentAmount) {
		t.Errorf("current = %s, want %s", out.CurrentAmount, in.CurrentAmount)
	}
	if !out.CompletedAt.Equal(in.CompletedAt) {
		t.Errorf("completedAt = %v", out.CompletedAt)
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.PublishGoalCompleted(context.Background(), &GoalCompleted{}); err != nil {
		t.Errorf("publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}
