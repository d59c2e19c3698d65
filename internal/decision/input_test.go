package decision

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/Dan9191/budget-advisor/internal/models"
	"github.com/google/go-cmp/cmp"
)

func TestDecodeInput(t *testing.T) {
	tests := []struct {
		category Category
		raw      string
		want     Input
	}{
		{CategoryRent, `{"monthly_rent": 1200}`, Rent{MonthlyRent: d("1200")}},
		{CategoryCar, `{"monthly_payment": "350.50", "down_payment": 2000}`, Car{MonthlyPayment: d("350.50"), DownPayment: d("2000")}},
		{CategoryEducation, `{"total_cost": 40000, "duration_years": 2.5}`, Education{TotalCost: d("40000"), DurationYears: d("2.5")}},
		{CategoryMoving, `{"moving_costs": 1500, "new_monthly_rent": 900}`, Moving{MovingCosts: d("1500"), NewMonthlyRent: d("900")}},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got, err := DecodeInput(tt.category, []byte(tt.raw))
			if err != nil {
				t.Fatalf("DecodeInput() error: %v", err)
			}
			if got.Category() != tt.category {
				t.Errorf("Category() = %s, want %s", got.Category(), tt.category)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DecodeInput() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeInput_Errors(t *testing.T) {
	if _, err := DecodeInput("boat", []byte(`{}`)); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("unknown category: err = %v, want ErrUnknownCategory", err)
	}
	if _, err := DecodeInput(CategoryRent, []byte(`{"monthly_rent": "lots"}`)); err == nil {
		t.Error("malformed amount: expected error")
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, err := ParseCategory(string(c))
		if err != nil || got != c {
			t.Errorf("ParseCategory(%q) = %q, %v", c, got, err)
		}
	}
	if _, err := ParseCategory("Rent"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("ParseCategory is case sensitive, got err = %v", err)
	}
}

func TestTier_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Tier Tier `json:"tier"`
	}{HighRisk})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"tier":"high-risk"}` {
		t.Errorf("Marshal = %s", b)
	}

	var got struct {
		Tier Tier `json:"tier"`
	}
	if err := json.Unmarshal([]byte(`{"tier":"caution"}`), &got); err != nil {
		t.Fatal(err)
	}
	if got.Tier != Caution {
		t.Errorf("Unmarshal tier = %s, want caution", got.Tier)
	}
	if err := json.Unmarshal([]byte(`{"tier":"fine"}`), &got); err == nil {
		t.Error("expected error for unknown tier")
	}
	if _, err := json.Marshal(Tier(9)); err == nil {
		t.Error("expected error marshaling invalid tier")
	}
}

func TestValidate(t *testing.T) {
	good := snap("5000", "3500", "10000")
	tests := []struct {
		name     string
		snapshot models.BudgetSnapshot
		input    Input
		wantErr  bool
	}{
		{"valid rent", good, Rent{MonthlyRent: d("100")}, false},
		{"zero amounts", snap("0", "0", "0"), Car{}, false},
		{"negative income", snap("-1", "0", "0"), Rent{}, true},
		{"negative rent", good, Rent{MonthlyRent: d("-0.01")}, true},
		{"negative down payment", good, Car{MonthlyPayment: d("10"), DownPayment: d("-5")}, true},
		{"zero duration", good, Education{TotalCost: d("100"), DurationYears: d("0")}, true},
		{"negative education cost", good, Education{TotalCost: d("-100"), DurationYears: d("1")}, true},
		{"negative moving costs", good, Moving{MovingCosts: d("-1")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.snapshot, tt.input)
			if tt.wantErr && !errors.Is(err, ErrInputOutOfRange) {
				t.Errorf("err = %v, want ErrInputOutOfRange", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}

	if err := Validate(good, nil); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("nil input: err = %v, want ErrUnknownCategory", err)
	}
}
