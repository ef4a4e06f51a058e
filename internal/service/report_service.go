package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fintracker/finance-tracker/internal/models"
	"github.com/fintracker/finance-tracker/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ReportService только читает данные и ничего не меняет
type ReportService interface {
	Summarize(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) (*models.ReportSummary, error)
	InvestmentSummary(ctx context.Context, userID uuid.UUID) (*models.InvestmentSummary, error)
	Overview(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) (*models.ReportOverview, error)
}

type reportService struct {
	transactionRepo repository.TransactionRepository
	investmentRepo  repository.InvestmentRepository
}

func NewReportService(transactionRepo repository.TransactionRepository, investmentRepo repository.InvestmentRepository) ReportService {
	return &reportService{
		transactionRepo: transactionRepo,
		investmentRepo:  investmentRepo,
	}
}

func (s *reportService) Summarize(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) (*models.ReportSummary, error) {
	if endDate.Before(startDate) {
		return nil, validationError("endDate must not be before startDate")
	}

	transactions, err := s.transactionRepo.GetByUserID(ctx, userID, &models.TransactionFilter{
		StartDate: &startDate,
		EndDate:   &endDate,
	})
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	summary := summarizeTransactions(transactions, startDate, endDate)
	return summary, nil
}

// summarizeTransactions - один проход: суммы по типам и разбивка расходов по категориям.
// Транзакции вне окна пропускаются.
func summarizeTransactions(transactions []models.Transaction, startDate, endDate time.Time) *models.ReportSummary {
	summary := &models.ReportSummary{
		StartDate:         startDate,
		EndDate:           endDate,
		CategoryBreakdown: make(map[string]decimal.Decimal),
	}

	for _, t := range transactions {
		if t.Date.Before(startDate) || t.Date.After(endDate) {
			continue
		}
		switch t.Type {
		case models.TransactionTypeIncome:
			summary.Income = summary.Income.Add(t.Amount)
		case models.TransactionTypeExpense:
			summary.Expenses = summary.Expenses.Add(t.Amount)
			summary.CategoryBreakdown[t.Category] = summary.CategoryBreakdown[t.Category].Add(t.Amount)
		}
	}

	summary.Balance = summary.Income.Sub(summary.Expenses)
	return summary
}

func (s *reportService) InvestmentSummary(ctx context.Context, userID uuid.UUID) (*models.InvestmentSummary, error) {
	investments, err := s.investmentRepo.GetByUserID(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("load investments: %w", err)
	}

	summary := &models.InvestmentSummary{}
	for _, inv := range investments {
		summary.TotalInvested = summary.TotalInvested.Add(inv.InvestedAmount)
		summary.TotalCurrentValue = summary.TotalCurrentValue.Add(inv.CurrentValue)
	}
	summary.TotalReturns = summary.TotalCurrentValue.Sub(summary.TotalInvested)
	return summary, nil
}

// Overview собирает оба отчета параллельно (страница отчетов запрашивает их вместе)
func (s *reportService) Overview(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) (*models.ReportOverview, error) {
	overview := &models.ReportOverview{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := s.Summarize(gctx, userID, startDate, endDate)
		if err != nil {
			return err
		}
		overview.Summary = summary
		return nil
	})
	g.Go(func() error {
		investments, err := s.InvestmentSummary(gctx, userID)
		if err != nil {
			return err
		}
		overview.Investments = investments
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}
