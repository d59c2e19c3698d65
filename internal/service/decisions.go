package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Dan9191/budget-advisor/internal/decision"
	"github.com/Dan9191/budget-advisor/internal/export"
	"github.com/Dan9191/budget-advisor/internal/models"
)

// MaxHistoryLimit caps how many decisions a single history request returns
const MaxHistoryLimit = 50

// Preview analyzes a decision without storing it. When snapshot is nil the
// user's active budget is used.
func (s *Service) Preview(ctx context.Context, userID int64, snapshot *models.BudgetSnapshot, category string, params json.RawMessage) (decision.Result, error) {
	if snapshot == nil {
		b, err := s.CurrentBudget(ctx, userID)
		if err != nil {
			return decision.Result{}, err
		}
		snapshot = &b.BudgetSnapshot
	}
	in, err := parseDecision(*snapshot, category, params)
	if err != nil {
		return decision.Result{}, err
	}
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return decision.Result{}, err
	}
	return decision.Analyze(*snapshot, in, p.Thresholds)
}

// AnalyzeDecision scores a decision against the active budget and stores it
func (s *Service) AnalyzeDecision(ctx context.Context, userID int64, category string, params json.RawMessage) (*models.DecisionRecord, decision.Result, error) {
	b, err := s.CurrentBudget(ctx, userID)
	if err != nil {
		return nil, decision.Result{}, err
	}
	in, err := parseDecision(b.BudgetSnapshot, category, params)
	if err != nil {
		return nil, decision.Result{}, err
	}
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, decision.Result{}, err
	}

	res, err := decision.Analyze(b.BudgetSnapshot, in, p.Thresholds)
	if err != nil {
		return nil, decision.Result{}, err
	}

	rec, err := newRecord(userID, in, res)
	if err != nil {
		return nil, decision.Result{}, err
	}
	if err := s.store.CreateDecision(ctx, rec); err != nil {
		return nil, decision.Result{}, err
	}

	s.log.Infof("Decision analyzed for user %d: %s is %s", userID, in.Category(), res.Tier)
	return rec, res, nil
}

// ListDecisions returns the user's most recent decisions, newest first.
// A non-positive limit uses the configured default.
func (s *Service) ListDecisions(ctx context.Context, userID int64, limit int) ([]models.DecisionRecord, error) {
	if limit <= 0 {
		limit = s.config.HistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return s.store.ListDecisions(ctx, userID, limit)
}

// ExportDecisions writes the user's recent decisions to w as XML
func (s *Service) ExportDecisions(ctx context.Context, userID int64, w io.Writer) error {
	records, err := s.ListDecisions(ctx, userID, MaxHistoryLimit)
	if err != nil {
		return err
	}
	return export.DecisionsXML(w, userID, records, time.Now())
}

func parseDecision(snapshot models.BudgetSnapshot, category string, params json.RawMessage) (decision.Input, error) {
	c, err := decision.ParseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(params) == 0 {
		return nil, fmt.Errorf("%w: params are required", ErrInvalidInput)
	}
	in, err := decision.DecodeInput(c, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := decision.Validate(snapshot, in); err != nil {
		return nil, err
	}
	return in, nil
}

func newRecord(userID int64, in decision.Input, res decision.Result) (*models.DecisionRecord, error) {
	input, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode decision input: %w", err)
	}
	result, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("failed to encode decision result: %w", err)
	}
	return &models.DecisionRecord{
		UserID:   userID,
		Category: string(in.Category()),
		Input:    input,
		Result:   result,
		Tier:     res.Tier.String(),
	}, nil
}
