// Package core has the orchestration logic: it loads reflection data from the
// record store, runs the analytics in core/algo and hands results to the writers.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/uli/internal/contract"
	"github.com/huangsam/uli/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// ErrStoreUnavailable is returned when no record store has been initialized.
var ErrStoreUnavailable = errors.New("record store is not initialized")

// nowFunc is the clock used by every command. Tests replace it.
var nowFunc = time.Now

// snapshot is everything stored for one identity.
type snapshot struct {
	scores      schema.ScoreSet
	hasScores   bool
	history     []schema.HistoryPoint
	reflections []schema.ReflectionEntry
}

// recordsFrom returns the active record store of mgr.
func recordsFrom(mgr contract.StoreManager) (contract.RecordStore, error) {
	if mgr == nil {
		return nil, ErrStoreUnavailable
	}
	records := mgr.GetRecordStore()
	if records == nil {
		return nil, ErrStoreUnavailable
	}
	return records, nil
}

// loadSnapshot reads the current scores, history and reflections of identity.
// Missing scores are replaced by the defaults.
func loadSnapshot(records contract.RecordStore, identity string) (snapshot, error) {
	var snap snapshot
	var err error

	snap.scores, snap.hasScores, err = records.LoadCurrentScores(identity)
	if err != nil {
		return snap, fmt.Errorf("failed to load current scores: %w", err)
	}
	if !snap.hasScores {
		snap.scores = schema.DefaultScoreSet()
	}

	if snap.history, err = records.LoadHistory(identity); err != nil {
		return snap, fmt.Errorf("failed to load history: %w", err)
	}
	if snap.reflections, err = records.LoadReflections(identity); err != nil {
		return snap, fmt.Errorf("failed to load reflections: %w", err)
	}
	return snap, nil
}
