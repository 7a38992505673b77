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

// BuildTrendResult loads the history of identity and builds the trend chart
// for the window and principle selection.
func BuildTrendResult(records contract.RecordStore, identity string, window schema.TrendWindow, principles []schema.Principle, now time.Time) (schema.TrendResult, error) {
	history, err := records.LoadHistory(identity)
	if err != nil {
		return schema.TrendResult{}, fmt.Errorf("failed to load history: %w", err)
	}
	return algo.BuildTrend(history, window, principles, now, schema.DefaultChartLayout), nil
}

// ExecuteTrend prints the trend chart for the configured window and principles.
func ExecuteTrend(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	records, err := recordsFrom(mgr)
	if err != nil {
		return err
	}
	result, err := BuildTrendResult(records, cfg.Identity, cfg.Window, cfg.Principles, nowFunc())
	if err != nil {
		return err
	}
	return outwriter.PrintTrend(result, cfg)
}
