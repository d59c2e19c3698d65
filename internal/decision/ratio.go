package decision

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ratio is a proportion that is unbounded when its denominator is not positive.
// An unbounded ratio exceeds every cutoff.
type ratio struct {
	value     decimal.Decimal
	unbounded bool
}

// incomeRatio relates a monthly amount to disposable income.
// Zero or negative disposable income makes any amount unaffordable.
func incomeRatio(amount, disposable decimal.Decimal) ratio {
	if !disposable.IsPositive() {
		return ratio{unbounded: true}
	}
	return ratio{value: amount.Div(disposable)}
}

// savingsRatio relates a one-time amount to savings. Spending nothing costs
// nothing even with empty savings.
func savingsRatio(amount, savings decimal.Decimal) ratio {
	if !amount.IsPositive() {
		return ratio{}
	}
	if !savings.IsPositive() {
		return ratio{unbounded: true}
	}
	return ratio{value: amount.Div(savings)}
}

func (r ratio) atMost(limit decimal.Decimal) bool {
	return !r.unbounded && r.value.LessThanOrEqual(limit)
}

func (r ratio) exceeds(limit decimal.Decimal) bool {
	return !r.atMost(limit)
}

// describe renders the ratio as a share of the named quantity
func (r ratio) describe(of string) string {
	if r.unbounded {
		return "more than all of " + of
	}
	return fmt.Sprintf("%s%% of %s", r.value.Shift(2).StringFixed(1), of)
}

// pct builds an exact fraction from whole percent
func pct(n int64) decimal.Decimal {
	return decimal.New(n, -2)
}

// cutoff is one affordability level: the tier applies when every ratio is at
// or under the matching limit.
type cutoff struct {
	tier   Tier
	limits []decimal.Decimal
}

// classify walks cutoffs from best to worst and returns the first tier whose
// limits all hold. Anything past the last cutoff is HighRisk.
func classify(cutoffs []cutoff, ratios ...ratio) Tier {
	for _, c := range cutoffs {
		ok := true
		for i, r := range ratios {
			if !r.atMost(c.limits[i]) {
				ok = false
				break
			}
		}
		if ok {
			return c.tier
		}
	}
	return HighRisk
}
