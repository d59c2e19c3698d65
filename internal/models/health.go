package models

import "github.com/shopspring/decimal"

// HealthReport summarizes a budget against the user's thresholds
type HealthReport struct {
	DisposableIncome       decimal.Decimal `json:"disposable_income"`
	SavingsRatePercent     decimal.Decimal `json:"savings_rate_percent"`
	ExpenseRatioPercent    decimal.Decimal `json:"expense_ratio_percent"`
	EmergencyMonths        decimal.Decimal `json:"emergency_months"`
	MonthsToEmergencyGoal  int64           `json:"months_to_emergency_goal"`
	Status                 string          `json:"status"`
	SavingsBelowThreshold  bool            `json:"savings_below_threshold"`
	ExpensesAboveThreshold bool            `json:"expenses_above_threshold"`
	Thresholds             Thresholds      `json:"thresholds"`
}

// Alerting reports whether any threshold alert fired
func (r HealthReport) Alerting() bool {
	return r.SavingsBelowThreshold || r.ExpensesAboveThreshold
}
