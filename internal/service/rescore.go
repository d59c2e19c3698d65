package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/Dan9191/budget-advisor/internal/decision"
	"github.com/Dan9191/budget-advisor/internal/models"
	"github.com/Dan9191/budget-advisor/internal/repository"
	"golang.org/x/sync/errgroup"
)

// RescoreStats counts the work done by Rescore
type RescoreStats struct {
	Users     int64 `json:"users"`
	Decisions int64 `json:"decisions"`
	Updated   int64 `json:"updated"`
}

// Rescore re-analyzes every stored decision against its owner's current
// budget and stores every result that no longer matches. Up to workers users
// are processed at once.
func (s *Service) Rescore(ctx context.Context, workers int) (RescoreStats, error) {
	owners, err := s.store.ListBudgetOwners(ctx)
	if err != nil {
		return RescoreStats{}, err
	}
	if workers < 1 {
		workers = 1
	}

	var decisions, updated atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, o := range owners {
		g.Go(func() error {
			n, u, err := s.rescoreOwner(ctx, o)
			decisions.Add(n)
			updated.Add(u)
			return err
		})
	}
	err = g.Wait()

	stats := RescoreStats{Users: int64(len(owners)), Decisions: decisions.Load(), Updated: updated.Load()}
	if err != nil {
		return stats, err
	}
	s.log.Infof("Rescored %d decisions of %d users, %d refreshed", stats.Decisions, stats.Users, stats.Updated)
	return stats, nil
}

func (s *Service) rescoreOwner(ctx context.Context, o repository.BudgetOwner) (scored, updated int64, err error) {
	records, err := s.store.ListDecisions(ctx, o.User.ID, 0)
	if err != nil {
		return 0, 0, err
	}
	for _, rec := range records {
		res, payload, err := rescoreRecord(o.Budget.BudgetSnapshot, o.Profile.Thresholds, rec)
		if err != nil {
			s.log.Warnf("Skipping decision %d of user %d: %v", rec.ID, o.User.ID, err)
			continue
		}
		scored++
		if payload == nil {
			continue
		}
		if err := s.store.UpdateDecisionResult(ctx, rec.ID, payload, res.Tier.String()); err != nil {
			return scored, updated, err
		}
		updated++
	}
	return scored, updated, nil
}

// rescoreRecord analyzes rec again. The returned payload is nil when the
// stored result and tier are already current.
func rescoreRecord(snapshot models.BudgetSnapshot, thresholds models.Thresholds, rec models.DecisionRecord) (decision.Result, []byte, error) {
	category, err := decision.ParseCategory(rec.Category)
	if err != nil {
		return decision.Result{}, nil, err
	}
	in, err := decision.DecodeInput(category, rec.Input)
	if err != nil {
		return decision.Result{}, nil, err
	}
	res, err := decision.Analyze(snapshot, in, thresholds)
	if err != nil {
		return decision.Result{}, nil, err
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return decision.Result{}, nil, fmt.Errorf("failed to encode decision result: %w", err)
	}
	if rec.Tier == res.Tier.String() && bytes.Equal(payload, normalizeResult(rec.Result)) {
		return res, nil, nil
	}
	return res, payload, nil
}

// normalizeResult re-encodes a stored result so it compares byte for byte
// with a fresh one. JSONB does not keep the original key order or spacing.
func normalizeResult(stored []byte) []byte {
	var res decision.Result
	if err := json.Unmarshal(stored, &res); err != nil {
		return nil
	}
	out, err := json.Marshal(res)
	if err != nil {
		return nil
	}
	return out
}
