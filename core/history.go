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

// SearchHistory filters the reflections of identity. A limit of zero returns
// every match; Total always counts all matches.
func SearchHistory(records contract.RecordStore, identity, query, tag string, since time.Time, limit int) (schema.HistoryResult, error) {
	entries, err := records.LoadReflections(identity)
	if err != nil {
		return schema.HistoryResult{}, fmt.Errorf("failed to load reflections: %w", err)
	}

	matches := algo.SearchReflections(entries, query, tag, since)
	result := schema.HistoryResult{
		Query:   query,
		Tag:     tag,
		Total:   len(matches),
		Entries: matches,
	}
	if limit > 0 && len(matches) > limit {
		result.Entries = matches[:limit]
	}
	return result, nil
}

// ListTags returns the tag index of identity.
func ListTags(records contract.RecordStore, identity string) ([]schema.TagCount, error) {
	entries, err := records.LoadReflections(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to load reflections: %w", err)
	}
	return algo.TagCounts(entries), nil
}

// ExecuteHistory prints reflections matching the configured filters.
func ExecuteHistory(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	records, err := recordsFrom(mgr)
	if err != nil {
		return err
	}
	result, err := SearchHistory(records, cfg.Identity, cfg.Search, cfg.Tag, cfg.Since, cfg.ResultLimit)
	if err != nil {
		return err
	}
	return outwriter.PrintHistory(result, cfg)
}

// ExecuteTags prints every tag with the number of reflections carrying it.
func ExecuteTags(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	records, err := recordsFrom(mgr)
	if err != nil {
		return err
	}
	tags, err := ListTags(records, cfg.Identity)
	if err != nil {
		return err
	}
	return outwriter.PrintTags(tags, cfg)
}
