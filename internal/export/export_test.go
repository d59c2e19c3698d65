package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/Dan9191/budget-advisor/internal/decision"
	"github.com/Dan9191/budget-advisor/internal/models"
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

func record(t *testing.T, id int64, in decision.Input, snapshot models.BudgetSnapshot) models.DecisionRecord {
	t.Helper()
	res, err := decision.Analyze(snapshot, in, models.DefaultThresholds())
	if err != nil {
		t.Fatal(err)
	}
	input, _ := json.Marshal(in)
	result, _ := json.Marshal(res)
	return models.DecisionRecord{
		ID:        id,
		UserID:    7,
		Category:  string(in.Category()),
		Input:     input,
		Result:    result,
		Tier:      res.Tier.String(),
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestDecisionsXML(t *testing.T) {
	snapshot := models.BudgetSnapshot{
		MonthlyIncome:   decimal.NewFromInt(5000),
		MonthlyExpenses: decimal.NewFromInt(3500),
		Savings:         decimal.NewFromInt(20000),
	}
	records := []models.DecisionRecord{
		record(t, 2, decision.Education{TotalCost: decimal.NewFromInt(60000), DurationYears: decimal.NewFromInt(4)}, snapshot),
		record(t, 1, decision.Rent{MonthlyRent: decimal.NewFromInt(400)}, snapshot),
	}

	var buf bytes.Buffer
	now := time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC)
	if err := DecisionsXML(&buf, 7, records, now); err != nil {
		t.Fatalf("DecisionsXML: %v", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(buf.Bytes()); err != nil {
		t.Fatalf("output is not XML: %v\n%s", err, buf.String())
	}
	root := doc.SelectElement("decisions")
	if root == nil {
		t.Fatalf("missing root element:\n%s", buf.String())
	}
	if root.SelectAttrValue("user", "") != "7" || root.SelectAttrValue("generated", "") != "2025-03-02T08:00:00Z" {
		t.Errorf("root attributes: %v", root.Attr)
	}

	items := root.SelectElements("decision")
	if len(items) != 2 {
		t.Fatalf("got %d decisions, want 2", len(items))
	}

	edu := items[0]
	if edu.SelectAttrValue("category", "") != "education" {
		t.Errorf("first decision category = %q", edu.SelectAttrValue("category", ""))
	}
	if got := edu.FindElement("./tier").Text(); got != "high-risk" {
		t.Errorf("tier = %q, want high-risk", got)
	}
	if edu.FindElement("./time-to-recover-months") == nil {
		t.Error("education decision missing time-to-recover-months")
	}
	if n := len(edu.FindElements("./alternatives/alternative")); n != 4 {
		t.Errorf("alternatives = %d, want 4", n)
	}
	if p := edu.FindElement("./input/param[@name='total_cost']"); p == nil || p.Text() != "60000" {
		t.Errorf("total_cost param = %v", p)
	}

	rent := items[1]
	if got := rent.FindElement("./annual-savings-impact").Text(); got != "13200.00" {
		t.Errorf("annual savings impact = %q, want 13200.00", got)
	}
	if rent.FindElement("./alternatives") != nil {
		t.Error("affordable rent should not list alternatives")
	}
}

func TestDecisionsXML_BadResult(t *testing.T) {
	rec := models.DecisionRecord{ID: 1, Input: []byte(`{}`), Result: []byte(`{"tier":"unheard-of"}`)}
	if err := DecisionsXML(&bytes.Buffer{}, 1, []models.DecisionRecord{rec}, time.Now()); err == nil {
		t.Fatal("expected error for undecodable result")
	}
}
