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

type TransactionService interface {
	Create(ctx context.Context, userID uuid.UUID, input *models.TransactionCreate) (*models.Transaction, error)
	List(ctx context.Context, userID uuid.UUID, filter *models.TransactionFilter) ([]models.Transaction, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type transactionService struct {
	transactionRepo repository.TransactionRepository
}

func NewTransactionService(transactionRepo repository.TransactionRepository) TransactionService {
	return &transactionService{transactionRepo: transactionRepo}
}

func (s *transactionService) Create(ctx context.Context, userID uuid.UUID, input *models.TransactionCreate) (*models.Transaction, error) {
	if !input.Type.IsValid() {
		return nil, validationError("type must be %q or %q", models.TransactionTypeIncome, models.TransactionTypeExpense)
	}
	if input.Amount == nil || !input.Amount.IsPositive() {
		return nil, validationError("amount must be positive")
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, validationError("category is required")
	}

	date := time.Now()
	if d := input.Date.Ptr(); d != nil {
		date = *d
	}

	description := input.Description
	if description == "" {
		description = category
	}

	tx := &models.Transaction{
		UserID:      userID,
		Type:        input.Type,
		Amount:      *input.Amount,
		Category:    category,
		Description: description,
		Date:        date,
	}
	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return tx, nil
}

func (s *transactionService) List(ctx context.Context, userID uuid.UUID, filter *models.TransactionFilter) ([]models.Transaction, error) {
	if filter != nil && filter.Type != nil && !filter.Type.IsValid() {
		return nil, validationError("unknown transaction type %q", *filter.Type)
	}
	transactions, err := s.transactionRepo.GetByUserID(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

func (s *transactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.transactionRepo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}
	return nil
}
