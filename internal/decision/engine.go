// Package decision scores the affordability of life decisions against a budget.
//
// Every category uses fixed ratio cutoffs. The user's health thresholds are
// accepted by Analyze so callers can hand over a single policy object, but
// they never change a tier. The package performs no I/O and holds no state,
// so Analyze is safe to call concurrently.
package decision

import (
	"fmt"

	"github.com/Dan9191/budget-advisor/internal/models"
	"github.com/shopspring/decimal"
)

// Result is the outcome of analyzing one decision
type Result struct {
	Tier                Tier            `json:"tier"`
	ImpactSummary       string          `json:"impact_summary"`
	Recommendation      string          `json:"recommendation"`
	MonthlyImpact       decimal.Decimal `json:"monthly_impact"`
	AnnualSavingsImpact decimal.Decimal `json:"annual_savings_impact"`
	RiskLevel           int             `json:"risk_level"`
	TimeToRecoverMonths *int64          `json:"time_to_recover_months,omitempty"`
	Alternatives        []string        `json:"alternatives,omitempty"`
}

var monthsPerYear = decimal.NewFromInt(12)

// Analyze scores in against snapshot. Zero denominators never fail: they
// route the affected ratio to the worst case. Only a nil input is an error.
func Analyze(snapshot models.BudgetSnapshot, in Input, _ models.Thresholds) (Result, error) {
	var res Result
	switch d := in.(type) {
	case Rent:
		res = analyzeRent(snapshot, d)
	case Car:
		res = analyzeCar(snapshot, d)
	case Education:
		res = analyzeEducation(snapshot, d)
	case Moving:
		res = analyzeMoving(snapshot, d)
	default:
		return Result{}, fmt.Errorf("%w: %T", ErrUnknownCategory, in)
	}
	res.RiskLevel = res.Tier.RiskLevel()
	return res, nil
}

var rentCutoffs = []cutoff{
	{Excellent, []decimal.Decimal{pct(30)}},
	{Good, []decimal.Decimal{pct(50)}},
	{Caution, []decimal.Decimal{pct(70)}},
}

func analyzeRent(s models.BudgetSnapshot, d Rent) Result {
	disposable := s.DisposableIncome()
	impact := incomeRatio(d.MonthlyRent, disposable)
	tier := classify(rentCutoffs, impact)

	res := Result{
		Tier:                tier,
		ImpactSummary:       impact.describe("your disposable income"),
		Recommendation:      recommendation(CategoryRent, tier),
		MonthlyImpact:       d.MonthlyRent,
		AnnualSavingsImpact: disposable.Sub(d.MonthlyRent).Mul(monthsPerYear),
	}
	if impact.exceeds(pct(50)) {
		res.Alternatives = alternatives(CategoryRent)
	}
	return res
}

var carCutoffs = []cutoff{
	{Excellent, []decimal.Decimal{pct(10), pct(20)}},
	{Good, []decimal.Decimal{pct(20), pct(30)}},
	{Caution, []decimal.Decimal{pct(30), pct(50)}},
}

func analyzeCar(s models.BudgetSnapshot, d Car) Result {
	disposable := s.DisposableIncome()
	impact := incomeRatio(d.MonthlyPayment, disposable)
	down := savingsRatio(d.DownPayment, s.Savings)
	tier := classify(carCutoffs, impact, down)

	res := Result{
		Tier:                tier,
		ImpactSummary:       impact.describe("disposable income") + " + " + down.describe("savings"),
		Recommendation:      recommendation(CategoryCar, tier),
		MonthlyImpact:       d.MonthlyPayment,
		AnnualSavingsImpact: disposable.Sub(d.MonthlyPayment).Mul(monthsPerYear),
	}
	if impact.exceeds(pct(20)) {
		res.Alternatives = alternatives(CategoryCar)
	}
	return res
}

var educationCutoffs = []cutoff{
	{Excellent, []decimal.Decimal{pct(30), pct(50)}},
	{Good, []decimal.Decimal{pct(50), pct(70)}},
	{Caution, []decimal.Decimal{pct(70), pct(100)}},
}

func analyzeEducation(s models.BudgetSnapshot, d Education) Result {
	years := d.DurationYears
	if !years.IsPositive() {
		years = decimal.NewFromInt(1)
	}
	disposable := s.DisposableIncome()
	monthly := d.TotalCost.Div(years.Mul(monthsPerYear))
	impact := incomeRatio(monthly, disposable)
	fromSavings := savingsRatio(d.TotalCost, s.Savings)
	tier := classify(educationCutoffs, impact, fromSavings)

	res := Result{
		Tier:                tier,
		ImpactSummary:       fromSavings.describe("current savings") + " over " + yearsText(years),
		Recommendation:      recommendation(CategoryEducation, tier),
		MonthlyImpact:       monthly.Round(2),
		AnnualSavingsImpact: s.Savings.Sub(d.TotalCost),
		TimeToRecoverMonths: recoveryMonths(d.TotalCost, disposable),
	}
	if impact.exceeds(pct(50)) {
		res.Alternatives = alternatives(CategoryEducation)
	}
	return res
}

func yearsText(years decimal.Decimal) string {
	if years.Equal(decimal.NewFromInt(1)) {
		return "1 year"
	}
	return years.String() + " years"
}

// recoveryMonths is ceil(cost / (disposable*12)), or nil when nothing is left
// over each month to recover with.
func recoveryMonths(cost, disposable decimal.Decimal) *int64 {
	if !disposable.IsPositive() {
		return nil
	}
	q, r := cost.QuoRem(disposable.Mul(monthsPerYear), 0)
	months := q.IntPart()
	if r.IsPositive() {
		months++
	}
	return &months
}

var movingCutoffs = []cutoff{
	{Excellent, []decimal.Decimal{pct(20), pct(10)}},
	{Good, []decimal.Decimal{pct(40), pct(20)}},
	{Caution, []decimal.Decimal{pct(60), pct(30)}},
}

// currentHousingShare assumes housing is 30% of current expenses
var currentHousingShare = pct(30)

func analyzeMoving(s models.BudgetSnapshot, d Moving) Result {
	disposable := s.DisposableIncome()
	currentRent := s.MonthlyExpenses.Mul(currentHousingShare)
	rentDiff := d.NewMonthlyRent.Sub(currentRent)
	oneTime := savingsRatio(d.MovingCosts, s.Savings)
	monthly := incomeRatio(rentDiff.Abs(), disposable)
	tier := classify(movingCutoffs, monthly, oneTime)

	sign := ""
	if rentDiff.IsPositive() {
		sign = "+"
	} else if rentDiff.IsNegative() {
		sign = "-"
	}

	res := Result{
		Tier:                tier,
		ImpactSummary:       fmt.Sprintf("%s + %s$%s/month", oneTime.describe("savings"), sign, rentDiff.Abs().StringFixed(2)),
		Recommendation:      recommendation(CategoryMoving, tier),
		MonthlyImpact:       d.NewMonthlyRent,
		AnnualSavingsImpact: disposable.Add(currentRent).Sub(d.NewMonthlyRent).Mul(monthsPerYear),
	}
	if oneTime.exceeds(pct(20)) {
		res.Alternatives = alternatives(CategoryMoving)
	}
	return res
}
