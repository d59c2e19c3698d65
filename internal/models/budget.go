package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetSnapshot is the set of budget figures a calculation runs against
type BudgetSnapshot struct {
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`
	Savings         decimal.Decimal `json:"savings"`
	EmergencyFund   decimal.Decimal `json:"emergency_fund"`
}

// DisposableIncome is income minus expenses. It may be negative.
func (b BudgetSnapshot) DisposableIncome() decimal.Decimal {
	return b.MonthlyIncome.Sub(b.MonthlyExpenses)
}

// SavingsRate returns disposable income as a fraction of income, or zero without income
func (b BudgetSnapshot) SavingsRate() decimal.Decimal {
	if !b.MonthlyIncome.IsPositive() {
		return decimal.Zero
	}
	return b.DisposableIncome().Div(b.MonthlyIncome)
}

// ExpenseRatio returns expenses as a fraction of income, or zero without income
func (b BudgetSnapshot) ExpenseRatio() decimal.Decimal {
	if !b.MonthlyIncome.IsPositive() {
		return decimal.Zero
	}
	return b.MonthlyExpenses.Div(b.MonthlyIncome)
}

// EmergencyMonths returns how many months of expenses the emergency fund covers
func (b BudgetSnapshot) EmergencyMonths() decimal.Decimal {
	if !b.MonthlyExpenses.IsPositive() {
		return decimal.Zero
	}
	return b.EmergencyFund.Div(b.MonthlyExpenses)
}

// Budget is a stored snapshot owned by a user
type Budget struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	BudgetSnapshot
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
