package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/uli/internal/contract"
	"github.com/huangsam/uli/internal/store"
	"github.com/huangsam/uli/schema"
)

// ExportBundle encodes everything stored for identity as an interchange bundle.
func ExportBundle(records contract.RecordStore, identity string) ([]byte, error) {
	scores, hasScores, err := records.LoadCurrentScores(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to load current scores: %w", err)
	}
	reflections, err := records.LoadReflections(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to load reflections: %w", err)
	}
	history, err := records.LoadHistory(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	bundle := schema.Bundle{Identity: identity, Reflections: reflections, History: history}
	if hasScores {
		bundle.Scores = &scores
	}
	return schema.EncodeBundle(bundle)
}

// ImportBundle validates data and replaces everything stored for identity with it.
// Nothing is written when validation fails.
func ImportBundle(records contract.RecordStore, identity string, data []byte) (schema.Bundle, error) {
	bundle, err := schema.DecodeBundle(data, identity)
	if err != nil {
		return schema.Bundle{}, fmt.Errorf("invalid bundle: %w", err)
	}
	if err := records.ReplaceAll(bundle); err != nil {
		return schema.Bundle{}, fmt.Errorf("failed to replace stored data: %w", err)
	}
	return bundle, nil
}

// exportPath returns the bundle destination, defaulting to a dated file name.
func exportPath(cfg *contract.Config, now time.Time) string {
	if cfg.OutputFile != "" {
		return cfg.OutputFile
	}
	return schema.ExportFileName(cfg.Identity, now)
}

// ExecuteDataExport writes the interchange bundle to a file.
func ExecuteDataExport(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	records, err := recordsFrom(mgr)
	if err != nil {
		return err
	}
	data, err := ExportBundle(records, cfg.Identity)
	if err != nil {
		return err
	}
	path := exportPath(cfg, nowFunc())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "💾 Exported data for %s to %s\n", cfg.Identity, path)
	return nil
}

// ExecuteDataImport returns an executor that imports the bundle at path.
func ExecuteDataImport(path string) ExecutorFunc {
	return func(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
		records, err := recordsFrom(mgr)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read bundle: %w", err)
		}
		bundle, err := ImportBundle(records, cfg.Identity, data)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Imported %d reflections and %d history points for %s\n",
			len(bundle.Reflections), len(bundle.History), cfg.Identity)
		return nil
	}
}

// ExecuteDataExportParquet writes reflections and history as Parquet files.
func ExecuteDataExportParquet(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	records, err := recordsFrom(mgr)
	if err != nil {
		return err
	}
	return store.ExportParquet(os.Stdout, records, cfg.Identity, cfg.OutputFile)
}

// ExecuteStoreStatus prints status information about the record store.
func ExecuteStoreStatus(_ context.Context, _ *contract.Config, mgr contract.StoreManager) error {
	records, err := recordsFrom(mgr)
	if err != nil {
		return err
	}
	status, err := records.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	store.PrintStoreStatus(os.Stdout, status)
	return nil
}

// ExecuteStoreClear removes everything stored for the configured identity.
func ExecuteStoreClear(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	records, err := recordsFrom(mgr)
	if err != nil {
		return err
	}
	if err := records.Clear(cfg.Identity); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Cleared all data for %s\n", cfg.Identity)
	return nil
}
