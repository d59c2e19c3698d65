package models

import "time"

// Subscription tiers
const (
	TierFree    = "free"
	TierPremium = "premium"
)

// Thresholds are the user's health alert settings, in whole percent.
// They drive health scoring only; decision tiering uses fixed cutoffs.
type Thresholds struct {
	SavingsRate  int `json:"savings_threshold"`
	ExpenseRatio int `json:"expense_threshold"`
}

// DefaultThresholds returns the thresholds a new profile starts with
func DefaultThresholds() Thresholds {
	return Thresholds{SavingsRate: 20, ExpenseRatio: 80}
}

// Profile holds user settings
type Profile struct {
	UserID           int64      `json:"user_id"`
	DisplayName      string     `json:"display_name"`
	SubscriptionTier string     `json:"subscription_tier"`
	Thresholds       Thresholds `json:"thresholds"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// IsPremium reports whether the profile unlocks premium features
func (p *Profile) IsPremium() bool {
	return p.SubscriptionTier == TierPremium
}
