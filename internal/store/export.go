package store

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/uli/internal/contract"
	"github.com/huangsam/uli/internal/parquet"
)

// ExportParquet writes the reflections and history of identity to Parquet files
// named after outputFile.
func ExportParquet(w io.Writer, records contract.RecordStore, identity, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export-parquet command")
	}

	reflections, err := records.LoadReflections(identity)
	if err != nil {
		return fmt.Errorf("failed to load reflections: %w", err)
	}
	history, err := records.LoadHistory(identity)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(reflections) == 0 && len(history) == 0 {
		return fmt.Errorf("no reflection data found for identity %q", identity)
	}

	_, _ = fmt.Fprintf(w, "Exporting data for %s...\n", identity)

	reflectionsFile := parquet.ReflectionsFile(outputFile)
	if err := parquet.WriteReflectionsParquet(parquet.ConvertReflections(identity, reflections), reflectionsFile); err != nil {
		return fmt.Errorf("failed to write reflections: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d reflections to: %s\n", len(reflections), reflectionsFile)

	historyFile := parquet.HistoryFile(outputFile)
	if err := parquet.WriteHistoryParquet(parquet.ConvertHistory(identity, history), historyFile); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d history points to: %s\n", len(history), historyFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be used with:")
	_, _ = fmt.Fprintln(w, "  - DuckDB")
	_, _ = fmt.Fprintln(w, "  - Pandas (via pyarrow)")
	_, _ = fmt.Fprintln(w, "  - Any other Parquet-compatible tool")
	return nil
}
