package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportSummary - доходы и расходы за окно [StartDate, EndDate]
type ReportSummary struct {
	StartDate         time.Time                  `json:"startDate"`
	EndDate           time.Time                  `json:"endDate"`
	Income            decimal.Decimal            `json:"income"`
	Expenses          decimal.Decimal            `json:"expenses"`
	Balance           decimal.Decimal            `json:"balance"`           // Income - Expenses
	CategoryBreakdown map[string]decimal.Decimal `json:"categoryBreakdown"` // только расходы
}

// InvestmentSummary считается по всем инвестициям без учета дат
type InvestmentSummary struct {
	TotalInvested     decimal.Decimal `json:"totalInvested"`
	TotalCurrentValue decimal.Decimal `json:"totalCurrentValue"`
	TotalReturns      decimal.Decimal `json:"totalReturns"` // TotalCurrentValue - TotalInvested
}

type ReportOverview struct {
	Summary     *ReportSummary     `json:"summary"`
	Investments *InvestmentSummary `json:"investments"`
}
