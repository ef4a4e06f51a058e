package service

import (
	"github.com/fintracker/finance-tracker/internal/config"
	"github.com/fintracker/finance-tracker/internal/events"
	"github.com/fintracker/finance-tracker/internal/repository"
	"github.com/sirupsen/logrus"
)

type Services struct {
	Auth        AuthService
	Goal        GoalService
	Report      ReportService
	Transaction TransactionService
	Investment  InvestmentService
}

func NewServices(repos *repository.Repositories, publisher events.Publisher, cfg *config.Config, log *logrus.Logger) *Services {
	return &Services{
		Auth:        NewAuthService(cfg.JWTSecret),
		Goal:        NewGoalService(repos.Goal, repos.TxManager, publisher, log),
		Report:      NewReportService(repos.Transaction, repos.Investment),
		Transaction: NewTransactionService(repos.Transaction),
		Investment:  NewInvestmentService(repos.Investment),
	}
}
