package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/budget-advisor/internal/models"
)

// CreateDecision stores an analyzed decision.
// JSONB parameters are passed as strings: lib/pq sends []byte as bytea.
func (r *Repository) CreateDecision(ctx context.Context, d *models.DecisionRecord) error {
	query := `
		INSERT INTO advisor.decisions (user_id, category, input, result, tier, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, d.UserID, d.Category, string(d.Input), string(d.Result), d.Tier).
		Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create decision: %w", err)
	}
	return nil
}

// ListDecisions returns a user's decisions, newest first. A limit of zero or
// less returns all of them.
func (r *Repository) ListDecisions(ctx context.Context, userID int64, limit int) ([]models.DecisionRecord, error) {
	var lim sql.NullInt64
	if limit > 0 {
		lim = sql.NullInt64{Int64: int64(limit), Valid: true}
	}
	query := `
		SELECT id, user_id, category, input, result, tier, created_at
		FROM advisor.decisions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, lim)
	if err != nil {
		return nil, fmt.Errorf("failed to list decisions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []models.DecisionRecord{}
	for rows.Next() {
		var d models.DecisionRecord
		var input, result []byte
		if err := rows.Scan(&d.ID, &d.UserID, &d.Category, &input, &result, &d.Tier, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		d.Input, d.Result = input, result
		records = append(records, d)
	}
	return records, rows.Err()
}

// UpdateDecisionResult replaces the stored result of a decision
func (r *Repository) UpdateDecisionResult(ctx context.Context, id int64, result []byte, tier string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE advisor.decisions SET result = $2, tier = $3 WHERE id = $1`, id, string(result), tier)
	if err != nil {
		return fmt.Errorf("failed to update decision %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("decision %d: %w", id, ErrNotFound)
	}
	return nil
}
