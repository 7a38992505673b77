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

// ReflectInput is one journal submission before validation.
type ReflectInput struct {
	Text string
	Tags string // comma-separated

	// Scores overrides the current score of each listed principle.
	// Principles left out keep their current value.
	Scores map[schema.Principle]int
}

// LogReflection validates the input, appends the entry with its history point and
// returns the recomputed metrics.
func LogReflection(records contract.RecordStore, identity string, in ReflectInput, now time.Time) (schema.ReflectResult, error) {
	scores, hasScores, err := records.LoadCurrentScores(identity)
	if err != nil {
		return schema.ReflectResult{}, fmt.Errorf("failed to load current scores: %w", err)
	}
	if !hasScores {
		scores = schema.DefaultScoreSet()
	}
	for p, v := range in.Scores {
		if err := scores.Set(p, v); err != nil {
			return schema.ReflectResult{}, err
		}
	}

	entry := schema.ReflectionEntry{
		Reflection: in.Text,
		Tags:       schema.ParseTags(in.Tags),
		Scores:     scores,
		Timestamp:  schema.NewTimestamp(now),
	}
	if err := entry.Validate(); err != nil {
		return schema.ReflectResult{}, fmt.Errorf("invalid reflection: %w", err)
	}
	if err := records.AppendReflection(identity, entry); err != nil {
		return schema.ReflectResult{}, fmt.Errorf("failed to save reflection: %w", err)
	}

	history, err := records.LoadHistory(identity)
	if err != nil {
		return schema.ReflectResult{}, fmt.Errorf("failed to load history: %w", err)
	}
	streak, err := algo.ComputeStreak(history, now)
	if err != nil {
		return schema.ReflectResult{}, fmt.Errorf("failed to compute streak: %w", err)
	}

	return schema.ReflectResult{
		Identity:         identity,
		Entry:            entry,
		AggregatePercent: algo.AggregatePercent(scores),
		Streak:           streak,
		Recommendation:   algo.Recommend(scores),
	}, nil
}

// ExecuteReflect returns an executor that logs the reflection for the configured identity.
func ExecuteReflect(in ReflectInput) ExecutorFunc {
	return func(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
		records, err := recordsFrom(mgr)
		if err != nil {
			return err
		}
		result, err := LogReflection(records, cfg.Identity, in, nowFunc())
		if err != nil {
			return err
		}
		return outwriter.PrintReflectResult(result, cfg)
	}
}
