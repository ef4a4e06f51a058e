package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fintracker/finance-tracker/internal/events"
	"github.com/fintracker/finance-tracker/internal/models"
	"github.com/fintracker/finance-tracker/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const defaultGoalHorizon = 365 * 24 * time.Hour

type GoalService interface {
	Create(ctx context.Context, userID uuid.UUID, input *models.GoalCreate) (*models.Goal, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Goal, error)
	List(ctx context.Context, userID uuid.UUID, status *models.GoalStatus) ([]models.Goal, error)
	Update(ctx context.Context, userID, id uuid.UUID, update *models.GoalUpdate) (*models.Goal, error)
	AddFunds(ctx context.Context, userID, id uuid.UUID, amount decimal.Decimal) (*models.Goal, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// SeedSamples заменяет все цели пользователя демонстрационным набором. Необратимо.
	SeedSamples(ctx context.Context, userID uuid.UUID) (int, error)
	Categories() []string
}

type goalService struct {
	goalRepo  repository.GoalRepository
	txManager repository.TxManager
	publisher events.Publisher
	log       *logrus.Logger
}

func NewGoalService(goalRepo repository.GoalRepository, txManager repository.TxManager, publisher events.Publisher, log *logrus.Logger) GoalService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &goalService{
		goalRepo:  goalRepo,
		txManager: txManager,
		publisher: publisher,
		log:       log,
	}
}

func (s *goalService) Create(ctx context.Context, userID uuid.UUID, input *models.GoalCreate) (*models.Goal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, validationError("name is required")
	}
	if input.Target == nil {
		return nil, validationError("target amount is required")
	}
	if !input.Target.IsPositive() {
		return nil, validationError("target amount must be positive")
	}

	current := decimal.Zero
	if input.Current != nil {
		if input.Current.IsNegative() {
			return nil, validationError("current amount must not be negative")
		}
		current = *input.Current
	}

	now := time.Now()
	deadline := now.Add(defaultGoalHorizon)
	if d := input.Deadline.Ptr(); d != nil {
		deadline = *d
	}

	goal := &models.Goal{
		UserID:        userID,
		Name:          name,
		TargetAmount:  *input.Target,
		CurrentAmount: current,
		Deadline:      deadline,
		Category:      input.Category,
		Icon:          input.Icon,
		Color:         input.Color,
		Status:        models.GoalStatusActive,
	}
	if goal.Reached() {
		goal.Status = models.GoalStatusCompleted
		goal.CompletedAt = &now
	}

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}

	s.enrichGoal(goal)
	return goal, nil
}

func (s *goalService) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, goalErr(err)
	}
	s.enrichGoal(goal)
	return goal, nil
}

func (s *goalService) List(ctx context.Context, userID uuid.UUID, status *models.GoalStatus) ([]models.Goal, error) {
	goals, err := s.goalRepo.GetByUserID(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	for i := range goals {
		s.enrichGoal(&goals[i])
	}
	return goals, nil
}

func (s *goalService) Update(ctx context.Context, userID, id uuid.UUID, update *models.GoalUpdate) (*models.Goal, error) {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, validationError("name must not be empty")
		}
		update.Name = &name
	}
	if update.Target != nil && !update.Target.IsPositive() {
		return nil, validationError("target amount must be positive")
	}
	if update.Current != nil && update.Current.IsNegative() {
		return nil, validationError("current amount must not be negative")
	}

	goal, err := s.goalRepo.Update(ctx, userID, id, update)
	if err != nil {
		return nil, goalErr(err)
	}
	s.notifyIfJustCompleted(ctx, goal)
	s.enrichGoal(goal)
	return goal, nil
}

// AddFunds принимает только положительные взносы; инкремент и проверка
// достижения цели выполняются хранилищем одной операцией
func (s *goalService) AddFunds(ctx context.Context, userID, id uuid.UUID, amount decimal.Decimal) (*models.Goal, error) {
	if !amount.IsPositive() {
		return nil, validationError("amount must be positive")
	}

	goal, err := s.goalRepo.AddFunds(ctx, userID, id, amount)
	if err != nil {
		return nil, goalErr(err)
	}

	s.notifyIfJustCompleted(ctx, goal)
	s.enrichGoal(goal)
	return goal, nil
}

// notifyIfJustCompleted срабатывает только на операции, которая завершила цель:
// у нее completed_at совпадает с updated_at. Ошибка брокера не отменяет пополнение.
func (s *goalService) notifyIfJustCompleted(ctx context.Context, goal *models.Goal) {
	if goal.Status != models.GoalStatusCompleted || goal.CompletedAt == nil || !goal.CompletedAt.Equal(goal.UpdatedAt) {
		return
	}

	fields := logrus.Fields{
		"user_id": goal.UserID,
		"goal_id": goal.ID,
		"amount":  goal.CurrentAmount.String(),
	}
	s.log.WithFields(fields).Info("goal completed")

	err := s.publisher.PublishGoalCompleted(ctx, &events.GoalCompleted{
		Type:          events.GoalCompletedType,
		GoalID:        goal.ID,
		UserID:        goal.UserID,
		Name:          goal.Name,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		CompletedAt:   *goal.CompletedAt,
	})
	if err != nil {
		s.log.WithFields(fields).WithError(err).Error("failed to publish goal completed event")
	}
}

func (s *goalService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.goalRepo.Delete(ctx, userID, id); err != nil {
		return goalErr(err)
	}
	return nil
}

func (s *goalService) SeedSamples(ctx context.Context, userID uuid.UUID) (int, error) {
	samples := sampleGoals(userID, time.Now())

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		removed, err := s.goalRepo.DeleteByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("delete existing goals: %w", err)
		}
		s.log.WithFields(logrus.Fields{"user_id": userID, "removed": removed}).Debug("cleared goals before seeding")

		for i := range samples {
			if err := s.goalRepo.Create(ctx, &samples[i]); err != nil {
				return fmt.Errorf("insert sample goal %q: %w", samples[i].Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "count": len(samples)}).Info("sample goals seeded")
	return len(samples), nil
}

func (s *goalService) Categories() []string {
	return append([]string(nil), models.GoalCategories...)
}

// enrichGoal вычисляет прогресс (не больше 100%) и дни до дедлайна
func (s *goalService) enrichGoal(goal *models.Goal) {
	goal.Progress = 0
	if goal.TargetAmount.IsPositive() {
		progress := goal.CurrentAmount.Div(goal.TargetAmount).Mul(decimal.NewFromInt(100)).InexactFloat64()
		switch {
		case progress > 100:
			goal.Progress = 100
		case progress > 0:
			goal.Progress = progress
		}
	}

	goal.DaysRemaining = 0
	if days := int(time.Until(goal.Deadline).Hours() / 24); days > 0 {
		goal.DaysRemaining = days
	}
}

func goalErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrGoalNotFound
	}
	return err
}

func sampleGoals(userID uuid.UUID, now time.Time) []models.Goal {
	days := func(n int) time.Time { return now.Add(time.Duration(n) * 24 * time.Hour) }

	return []models.Goal{
		{UserID: userID, Name: "Emergency Fund", TargetAmount: decimal.NewFromInt(100000), CurrentAmount: decimal.NewFromInt(45000), Category: "Savings", Icon: "MdShield", Color: "#13ec5b", Deadline: days(365), Status: models.GoalStatusActive},
		{UserID: userID, Name: "Vacation", TargetAmount: decimal.NewFromInt(50000), CurrentAmount: decimal.NewFromInt(20000), Category: "Travel", Icon: "MdFlight", Color: "#3b82f6", Deadline: days(180), Status: models.GoalStatusActive},
		{UserID: userID, Name: "New Car", TargetAmount: decimal.NewFromInt(500000), CurrentAmount: decimal.NewFromInt(120000), Category: "Vehicle", Icon: "MdDirectionsCar", Color: "#f97316", Deadline: days(730), Status: models.GoalStatusActive},
		{UserID: userID, Name: "Home Down Payment", TargetAmount: decimal.NewFromInt(1000000), CurrentAmount: decimal.NewFromInt(300000), Category: "Housing", Icon: "MdHome", Color: "#8b5cf6", Deadline: days(1095), Status: models.GoalStatusActive},
	}
}
