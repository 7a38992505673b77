package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/uli/core/algo"
	"github.com/huangsam/uli/internal/contract"
	"github.com/huangsam/uli/internal/outwriter"
	"github.com/huangsam/uli/schema"
)

// BuildDashboard computes the aggregate, streak, recommendation and per-principle
// summaries for identity.
func BuildDashboard(records contract.RecordStore, identity string, now time.Time) (schema.DashboardResult, error) {
	snap, err := loadSnapshot(records, identity)
	if err != nil {
		return schema.DashboardResult{}, err
	}

	streak, err := algo.ComputeStreak(snap.history, now)
	if err != nil {
		return schema.DashboardResult{}, fmt.Errorf("failed to compute streak: %w", err)
	}

	recommendation := algo.Recommend(snap.scores)
	exercise, _ := schema.ExerciseFor(recommendation)

	principles := make([]schema.PrincipleSummary, 0, len(schema.AllPrinciples))
	for _, p := range schema.AllPrinciples {
		principles = append(principles, schema.PrincipleSummary{
			Principle: p,
			Label:     p.Label(),
			Score:     snap.scores.Get(p),
			History:   algo.PrincipleHistory(snap.history, p),
		})
	}

	return schema.DashboardResult{
		Identity:         identity,
		HasScores:        snap.hasScores,
		Scores:           snap.scores,
		AggregatePercent: algo.AggregatePercent(snap.scores),
		Streak:           streak,
		Recommendation:   recommendation,
		Exercise:         exercise,
		Principles:       principles,
		ReflectionCount:  len(snap.reflections),
		HistoryCount:     len(snap.history),
	}, nil
}

// ExecuteDashboard prints the dashboard for the configured identity.
func ExecuteDashboard(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	records, err := recordsFrom(mgr)
	if err != nil {
		return err
	}
	result, err := BuildDashboard(records, cfg.Identity, nowFunc())
	if err != nil {
		return err
	}
	return outwriter.PrintDashboard(result, cfg)
}
