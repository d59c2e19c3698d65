package decision

import (
	"errors"
	"fmt"

	"github.com/Dan9191/budget-advisor/internal/models"
	"github.com/shopspring/decimal"
)

// ErrInputOutOfRange marks amounts outside the documented domain
var ErrInputOutOfRange = errors.New("input out of range")

type field struct {
	name  string
	value decimal.Decimal
}

// Validate rejects negative amounts and non-positive education durations.
// Analyze does not require it, but callers should run it on user input.
func Validate(snapshot models.BudgetSnapshot, in Input) error {
	fields := []field{
		{"monthly_income", snapshot.MonthlyIncome},
		{"monthly_expenses", snapshot.MonthlyExpenses},
		{"savings", snapshot.Savings},
		{"emergency_fund", snapshot.EmergencyFund},
	}

	switch d := in.(type) {
	case Rent:
		fields = append(fields, field{"monthly_rent", d.MonthlyRent})
	case Car:
		fields = append(fields, field{"monthly_payment", d.MonthlyPayment}, field{"down_payment", d.DownPayment})
	case Education:
		if !d.DurationYears.IsPositive() {
			return fmt.Errorf("%w: duration_years must be positive", ErrInputOutOfRange)
		}
		fields = append(fields, field{"total_cost", d.TotalCost})
	case Moving:
		fields = append(fields, field{"moving_costs", d.MovingCosts}, field{"new_monthly_rent", d.NewMonthlyRent})
	default:
		return ErrUnknownCategory
	}

	for _, f := range fields {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", ErrInputOutOfRange, f.name)
		}
	}
	return nil
}
