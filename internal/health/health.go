// Package health scores a budget snapshot against the user's alert thresholds.
package health

import (
	"github.com/Dan9191/budget-advisor/internal/models"
	"github.com/shopspring/decimal"
)

// Status labels, best first
const (
	StatusExcellent      = "Excellent"
	StatusGood           = "Good"
	StatusFair           = "Fair"
	StatusNeedsAttention = "Needs Attention"
)

// EmergencyGoalMonths is the emergency fund target in months of expenses
const EmergencyGoalMonths = 6

var (
	hundred        = decimal.NewFromInt(100)
	needsAttention = decimal.NewFromInt(10)
	excellentRate  = decimal.NewFromInt(30)
)

// Score builds a health report for snapshot using thresholds
func Score(snapshot models.BudgetSnapshot, thresholds models.Thresholds) models.HealthReport {
	savingsRate := snapshot.SavingsRate().Mul(hundred)
	expenseRatio := snapshot.ExpenseRatio().Mul(hundred)
	savingsThreshold := decimal.NewFromInt(int64(thresholds.SavingsRate))

	return models.HealthReport{
		DisposableIncome:       snapshot.DisposableIncome(),
		SavingsRatePercent:     savingsRate.Round(1),
		ExpenseRatioPercent:    expenseRatio.Round(1),
		EmergencyMonths:        snapshot.EmergencyMonths().Round(1),
		MonthsToEmergencyGoal:  MonthsToEmergencyGoal(snapshot),
		Status:                 status(savingsRate, savingsThreshold),
		SavingsBelowThreshold:  snapshot.MonthlyIncome.IsPositive() && savingsRate.LessThan(savingsThreshold),
		ExpensesAboveThreshold: expenseRatio.GreaterThan(decimal.NewFromInt(int64(thresholds.ExpenseRatio))),
		Thresholds:             thresholds,
	}
}

func status(savingsRate, threshold decimal.Decimal) string {
	switch {
	case savingsRate.LessThan(needsAttention):
		return StatusNeedsAttention
	case savingsRate.LessThan(threshold):
		return StatusFair
	case savingsRate.LessThan(excellentRate):
		return StatusGood
	default:
		return StatusExcellent
	}
}

// MonthsToEmergencyGoal estimates how many months of saving the full
// disposable income it takes to reach six months of expenses. Non-positive
// disposable income is treated as one unit per month.
func MonthsToEmergencyGoal(snapshot models.BudgetSnapshot) int64 {
	target := snapshot.MonthlyExpenses.Mul(decimal.NewFromInt(EmergencyGoalMonths))
	gap := target.Sub(snapshot.EmergencyFund)
	if !gap.IsPositive() {
		return 0
	}
	perMonth := decimal.Max(snapshot.DisposableIncome(), decimal.NewFromInt(1))
	q, r := gap.QuoRem(perMonth, 0)
	months := q.IntPart()
	if r.IsPositive() {
		months++
	}
	return months
}
