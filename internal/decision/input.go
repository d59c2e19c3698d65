package decision

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Category names a kind of life decision
type Category string

const (
	CategoryRent      Category = "rent"
	CategoryCar       Category = "car"
	CategoryEducation Category = "education"
	CategoryMoving    Category = "moving"
)

// Categories lists every supported category in display order
var Categories = []Category{CategoryRent, CategoryCar, CategoryEducation, CategoryMoving}

// ErrUnknownCategory is returned for categories the engine cannot score
var ErrUnknownCategory = errors.New("unknown decision category")

// ParseCategory validates a category name
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Input is a proposed decision. Implementations are Rent, Car, Education and Moving.
type Input interface {
	Category() Category
	isInput()
}

// Rent proposes a new monthly rent
type Rent struct {
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
}

// Car proposes a vehicle financed with a monthly payment and a down payment
type Car struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	DownPayment    decimal.Decimal `json:"down_payment"`
}

// Education proposes a program paid for over DurationYears
type Education struct {
	TotalCost     decimal.Decimal `json:"total_cost"`
	DurationYears decimal.Decimal `json:"duration_years"`
}

// Moving proposes a relocation with one-time costs and a new rent
type Moving struct {
	MovingCosts    decimal.Decimal `json:"moving_costs"`
	NewMonthlyRent decimal.Decimal `json:"new_monthly_rent"`
}

func (Rent) Category() Category      { return CategoryRent }
func (Car) Category() Category       { return CategoryCar }
func (Education) Category() Category { return CategoryEducation }
func (Moving) Category() Category    { return CategoryMoving }

func (Rent) isInput()      {}
func (Car) isInput()       {}
func (Education) isInput() {}
func (Moving) isInput()    {}

// DecodeInput unmarshals the category-specific parameters of a decision
func DecodeInput(category Category, raw []byte) (Input, error) {
	var (
		in  Input
		err error
	)
	switch category {
	case CategoryRent:
		var v Rent
		err = json.Unmarshal(raw, &v)
		in = v
	case CategoryCar:
		var v Car
		err = json.Unmarshal(raw, &v)
		in = v
	case CategoryEducation:
		var v Education
		err = json.Unmarshal(raw, &v)
		in = v
	case CategoryMoving:
		var v Moving
		err = json.Unmarshal(raw, &v)
		in = v
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s parameters: %w", category, err)
	}
	return in, nil
}
