package main

import (
	"encoding/json"
	"fmt"

	"github.com/Dan9191/budget-advisor/internal/decision"
	"github.com/Dan9191/budget-advisor/internal/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// decimalValue adapts a decimal.Decimal to a command line flag
type decimalValue struct{ d *decimal.Decimal }

func (v decimalValue) String() string {
	if v.d == nil {
		return "0"
	}
	return v.d.String()
}

func (v decimalValue) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	*v.d = d
	return nil
}

func (decimalValue) Type() string { return "decimal" }

type analyzeOptions struct {
	budget   models.BudgetSnapshot
	category string

	rent        decimal.Decimal
	payment     decimal.Decimal
	downPayment decimal.Decimal
	cost        decimal.Decimal
	years       decimal.Decimal
	movingCosts decimal.Decimal
	newRent     decimal.Decimal
}

var analyzeFlags analyzeOptions

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score one decision against a budget",
	Long: `Score a rent, car, education or moving decision against the given budget
and print the result as JSON. Nothing is stored.

Usage:
  budgetctl analyze --income 5000 --expenses 3500 --category rent --rent 1200
  budgetctl analyze --income 5000 --expenses 3500 --savings 10000 \
      --category car --payment 500 --down-payment 3000
  budgetctl analyze --income 5000 --expenses 3500 --savings 50000 \
      --category education --cost 90000 --years 2
  budgetctl analyze --income 5000 --expenses 3500 --savings 10000 \
      --category moving --moving-costs 3000 --new-rent 1100`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.Var(decimalValue{&analyzeFlags.budget.MonthlyIncome}, "income", "Monthly income")
	f.Var(decimalValue{&analyzeFlags.budget.MonthlyExpenses}, "expenses", "Monthly expenses")
	f.Var(decimalValue{&analyzeFlags.budget.Savings}, "savings", "Current savings")
	f.Var(decimalValue{&analyzeFlags.budget.EmergencyFund}, "emergency-fund", "Emergency fund")
	f.StringVarP(&analyzeFlags.category, "category", "c", "", "Decision category: rent, car, education or moving")
	f.Var(decimalValue{&analyzeFlags.rent}, "rent", "Monthly rent (rent)")
	f.Var(decimalValue{&analyzeFlags.payment}, "payment", "Monthly payment (car)")
	f.Var(decimalValue{&analyzeFlags.downPayment}, "down-payment", "Down payment (car)")
	f.Var(decimalValue{&analyzeFlags.cost}, "cost", "Total cost (education)")
	f.Var(decimalValue{&analyzeFlags.years}, "years", "Duration in years (education)")
	f.Var(decimalValue{&analyzeFlags.movingCosts}, "moving-costs", "One-time moving costs (moving)")
	f.Var(decimalValue{&analyzeFlags.newRent}, "new-rent", "Monthly rent at the new place (moving)")
	_ = analyzeCmd.MarkFlagRequired("category")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	in, err := analyzeFlags.input()
	if err != nil {
		return err
	}
	if err := decision.Validate(analyzeFlags.budget, in); err != nil {
		return err
	}
	res, err := decision.Analyze(analyzeFlags.budget, in, models.DefaultThresholds())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func (o analyzeOptions) input() (decision.Input, error) {
	c, err := decision.ParseCategory(o.category)
	if err != nil {
		return nil, err
	}
	switch c {
	case decision.CategoryRent:
		return decision.Rent{MonthlyRent: o.rent}, nil
	case decision.CategoryCar:
		return decision.Car{MonthlyPayment: o.payment, DownPayment: o.downPayment}, nil
	case decision.CategoryEducation:
		return decision.Education{TotalCost: o.cost, DurationYears: o.years}, nil
	case decision.CategoryMoving:
		return decision.Moving{MovingCosts: o.movingCosts, NewMonthlyRent: o.newRent}, nil
	}
	return nil, fmt.Errorf("%w: %s", decision.ErrUnknownCategory, o.category)
}
