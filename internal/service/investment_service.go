package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fintracker/finance-tracker/internal/models"
	"github.com/fintracker/finance-tracker/internal/repository"
	"github.com/google/uuid"
)

type InvestmentService interface {
	Create(ctx context.Context, userID uuid.UUID, input *models.InvestmentCreate) (*models.Investment, error)
	List(ctx context.Context, userID uuid.UUID, investmentType *string) ([]models.Investment, error)
	Update(ctx context.Context, userID, id uuid.UUID, update *models.InvestmentUpdate) (*models.Investment, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type investmentService struct {
	investmentRepo repository.InvestmentRepository
}

func NewInvestmentService(investmentRepo repository.InvestmentRepository) InvestmentService {
	return &investmentService{investmentRepo: investmentRepo}
}

func (s *investmentService) Create(ctx context.Context, userID uuid.UUID, input *models.InvestmentCreate) (*models.Investment, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, validationError("name is required")
	}
	if strings.TrimSpace(input.Type) == "" {
		return nil, validationError("type is required")
	}
	if input.InvestedAmount == nil || input.InvestedAmount.IsNegative() {
		return nil, validationError("invested amount must be zero or positive")
	}

	// без текущей оценки считаем, что стоимость не изменилась
	currentValue := *input.InvestedAmount
	if input.CurrentValue != nil {
		if input.CurrentValue.IsNegative() {
			return nil, validationError("current value must not be negative")
		}
		currentValue = *input.CurrentValue
	}

	purchaseDate := time.Now()
	if d := input.PurchaseDate.Ptr(); d != nil {
		purchaseDate = *d
	}

	inv := &models.Investment{
		UserID:         userID,
		Name:           name,
		Type:           strings.TrimSpace(input.Type),
		InvestedAmount: *input.InvestedAmount,
		CurrentValue:   currentValue,
		PurchaseDate:   purchaseDate,
		Notes:          input.Notes,
	}
	if err := s.investmentRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create investment: %w", err)
	}
	return inv, nil
}

func (s *investmentService) List(ctx context.Context, userID uuid.UUID, investmentType *string) ([]models.Investment, error) {
	investments, err := s.investmentRepo.GetByUserID(ctx, userID, investmentType)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	return investments, nil
}

func (s *investmentService) Update(ctx context.Context, userID, id uuid.UUID, update *models.InvestmentUpdate) (*models.Investment, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, validationError("name must not be empty")
	}
	if update.Type != nil && strings.TrimSpace(*update.Type) == "" {
		return nil, validationError("type must not be empty")
	}
	if update.InvestedAmount != nil && update.InvestedAmount.IsNegative() {
		return nil, validationError("invested amount must not be negative")
	}
	if update.CurrentValue != nil && update.CurrentValue.IsNegative() {
		return nil, validationError("current value must not be negative")
	}

	inv, err := s.investmentRepo.Update(ctx, userID, id, update)
	if err != nil {
		return nil, investmentErr(err)
	}
	return inv, nil
}

func (s *investmentService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.investmentRepo.Delete(ctx, userID, id); err != nil {
		return investmentErr(err)
	}
	return nil
}

func investmentErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvestmentNotFound
	}
	return err
}
