package models

import (
	"encoding/json"
	"time"
)

// DecisionRecord is a persisted decision analysis.
// Input and Result hold the JSON payloads produced by the decision engine.
type DecisionRecord struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Category  string          `json:"category"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	Tier      string          `json:"tier"`
	CreatedAt time.Time       `json:"created_at"`
}
