package service

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/Dan9191/budget-advisor/internal/decision"
	"github.com/Dan9191/budget-advisor/internal/models"
	"github.com/shopspring/decimal"
)

func TestRescore(t *testing.T) {
	f := newFixture(t)
	users := []int64{
		f.user(t, "a@example.com", 5000, 3500, 10000),
		f.user(t, "b@example.com", 5000, 3500, 10000),
		f.user(t, "c@example.com", 5000, 3500, 10000),
	}
	for _, id := range users {
		for _, rent := range []string{"400", "700", "1000"} {
			if _, _, err := f.svc.AnalyzeDecision(ctx, id, "rent", json.RawMessage(`{"monthly_rent": `+rent+`}`)); err != nil {
				t.Fatal(err)
			}
		}
	}

	stats, err := f.svc.Rescore(ctx, 2)
	if err != nil {
		t.Fatalf("Rescore: %v", err)
	}
	if stats != (RescoreStats{Users: 3, Decisions: 9, Updated: 0}) {
		t.Errorf("unchanged budgets: stats = %+v", stats)
	}

	// Halving the first user's disposable income worsens all three of their decisions.
	if _, err := f.svc.SaveBudget(ctx, users[0], models.BudgetSnapshot{
		MonthlyIncome:   decimal.NewFromInt(4250),
		MonthlyExpenses: decimal.NewFromInt(3500),
		Savings:         decimal.NewFromInt(10000),
	}); err != nil {
		t.Fatal(err)
	}

	stats, err = f.svc.Rescore(ctx, 4)
	if err != nil {
		t.Fatalf("Rescore: %v", err)
	}
	if stats != (RescoreStats{Users: 3, Decisions: 9, Updated: 3}) {
		t.Errorf("after budget change: stats = %+v", stats)
	}

	records, _ := f.store.ListDecisions(ctx, users[0], 0)
	for _, rec := range records {
		var res decision.Result
		if err := json.Unmarshal(rec.Result, &res); err != nil {
			t.Fatal(err)
		}
		if res.Tier.String() != rec.Tier {
			t.Errorf("decision %d: tier column %s, result %s", rec.ID, rec.Tier, res.Tier)
		}
		if res.Tier != decision.HighRisk && res.Tier != decision.Caution {
			t.Errorf("decision %d still %s after the budget shrank", rec.ID, res.Tier)
		}
	}
}

func TestRescore_RefreshesFiguresWithinTier(t *testing.T) {
	f := newFixture(t)
	id := f.user(t, "a@example.com", 5000, 3500, 10000)
	if _, _, err := f.svc.AnalyzeDecision(ctx, id, "rent", json.RawMessage(`{"monthly_rent": 400}`)); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.SaveBudget(ctx, id, models.BudgetSnapshot{
		MonthlyIncome:   decimal.NewFromInt(5000),
		MonthlyExpenses: decimal.NewFromInt(3400),
		Savings:         decimal.NewFromInt(10000),
	}); err != nil {
		t.Fatal(err)
	}

	stats, err := f.svc.Rescore(ctx, 1)
	if err != nil {
		t.Fatalf("Rescore: %v", err)
	}
	if stats.Updated != 1 {
		t.Fatalf("stats = %+v, want the decision refreshed", stats)
	}

	records, _ := f.store.ListDecisions(ctx, id, 0)
	var res decision.Result
	if err := json.Unmarshal(records[0].Result, &res); err != nil {
		t.Fatal(err)
	}
	if res.Tier != decision.Excellent || records[0].Tier != "excellent" {
		t.Errorf("tier = %s (column %s), want excellent", res.Tier, records[0].Tier)
	}
	if !res.AnnualSavingsImpact.Equal(decimal.NewFromInt(14400)) {
		t.Errorf("annual savings impact = %s, want 14400", res.AnnualSavingsImpact)
	}

	stats, err = f.svc.Rescore(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Updated != 0 {
		t.Errorf("second run refreshed %d decisions, want 0", stats.Updated)
	}
}

func TestRescore_IgnoresStoredFormatting(t *testing.T) {
	f := newFixture(t)
	id := f.user(t, "a@example.com", 5000, 3500, 10000)
	rec, _, err := f.svc.AnalyzeDecision(ctx, id, "rent", json.RawMessage(`{"monthly_rent": 400}`))
	if err != nil {
		t.Fatal(err)
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, rec.Result, "", "  "); err != nil {
		t.Fatal(err)
	}
	f.store.decisions[0].Result = indented.Bytes()

	stats, err := f.svc.Rescore(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Updated != 0 {
		t.Errorf("reformatted but equal result was rewritten: %+v", stats)
	}
}

func TestRescore_SkipsCorruptRecords(t *testing.T) {
	f := newFixture(t)
	id := f.user(t, "a@example.com", 5000, 3500, 10000)
	f.store.decisions = append(f.store.decisions,
		models.DecisionRecord{ID: 100, UserID: id, Category: "yacht", Input: []byte(`{}`), Tier: "good"},
		models.DecisionRecord{ID: 101, UserID: id, Category: "rent", Input: []byte(`{"monthly_rent": 100}`), Tier: "caution"},
	)

	stats, err := f.svc.Rescore(ctx, 1)
	if err != nil {
		t.Fatalf("Rescore: %v", err)
	}
	if stats.Decisions != 1 || stats.Updated != 1 {
		t.Errorf("stats = %+v, want 1 scored and updated", stats)
	}
}

func TestRescore_UpdateFailure(t *testing.T) {
	f := newFixture(t)
	id := f.user(t, "a@example.com", 5000, 3500, 10000)
	f.store.decisions = append(f.store.decisions,
		models.DecisionRecord{ID: 100, UserID: id, Category: "rent", Input: []byte(`{"monthly_rent": 100}`), Tier: "caution"})
	f.store.failUpdate = true

	if _, err := f.svc.Rescore(ctx, 1); err == nil {
		t.Fatal("expected update failure to surface")
	}
}
