package core

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/huangsam/uli/core/algo"
	"github.com/huangsam/uli/internal/contract"
	"github.com/huangsam/uli/internal/outwriter"
	"github.com/huangsam/uli/schema"
)

// TiePicker chooses one principle among the tied lowest. The slice is never empty.
type TiePicker func(tied []schema.Principle) schema.Principle

// FirstTie keeps the canonical order.
func FirstTie(tied []schema.Principle) schema.Principle { return tied[0] }

// RandomTie picks uniformly among the tied principles.
func RandomTie(tied []schema.Principle) schema.Principle { return tied[rand.IntN(len(tied))] }

// BuildRecommendation suggests the next exercise for identity.
func BuildRecommendation(records contract.RecordStore, identity string, pick TiePicker) (schema.RecommendationResult, error) {
	scores, hasScores, err := records.LoadCurrentScores(identity)
	if err != nil {
		return schema.RecommendationResult{}, fmt.Errorf("failed to load current scores: %w", err)
	}
	if !hasScores {
		scores = schema.DefaultScoreSet()
	}
	if pick == nil {
		pick = FirstTie
	}

	tied := algo.TiedLowest(scores)
	principle := algo.Recommend(scores)
	if len(tied) > 1 {
		principle = pick(tied)
	}
	exercise, _ := schema.ExerciseFor(principle)

	return schema.RecommendationResult{
		Principle: principle,
		Score:     scores.Get(principle),
		Tied:      tied,
		Exercise:  exercise,
	}, nil
}

// ExecuteRecommend prints the recommended exercise.
func ExecuteRecommend(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	records, err := recordsFrom(mgr)
	if err != nil {
		return err
	}
	pick := FirstTie
	if cfg.ShuffleTies {
		pick = RandomTie
	}
	result, err := BuildRecommendation(records, cfg.Identity, pick)
	if err != nil {
		return err
	}
	return outwriter.PrintRecommendation(result, cfg)
}
