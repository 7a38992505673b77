// Package parquet provides data structures and functions for exporting reflection
// data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/huangsam/uli/core/algo"
	"github.com/huangsam/uli/schema"
	"github.com/parquet-go/parquet-go"
)

// ReflectionRow is one journal submission flattened for columnar analysis.
type ReflectionRow struct {
	// Identity owns the entry
	Identity string `parquet:"identity,snappy"`

	// Seq is the position of the entry in insertion order
	Seq int32 `parquet:"seq,snappy"`

	// RecordedAt is the submission instant (stored as TIMESTAMP with nanosecond precision)
	RecordedAt time.Time `parquet:"recorded_at,snappy"`

	// Reflection is the free-form journal text
	Reflection string `parquet:"reflection,snappy"`

	// Tags holds the comma-joined tags (nullable when the entry has none)
	Tags *string `parquet:"tags,optional,snappy"`

	R3   int32 `parquet:"r3,snappy"`
	PHCB int32 `parquet:"phcb,snappy"`
	APD  int32 `parquet:"apd,snappy"`
	LPS  int32 `parquet:"lps,snappy"`
	CDR  int32 `parquet:"cdr,snappy"`
	EIA  int32 `parquet:"eia,snappy"`
}

// HistoryRow is one score snapshot with its derived aggregate.
type HistoryRow struct {
	Identity   string    `parquet:"identity,snappy"`
	Seq        int32     `parquet:"seq,snappy"`
	RecordedAt time.Time `parquet:"recorded_at,snappy"`

	R3   int32 `parquet:"r3,snappy"`
	PHCB int32 `parquet:"phcb,snappy"`
	APD  int32 `parquet:"apd,snappy"`
	LPS  int32 `parquet:"lps,snappy"`
	CDR  int32 `parquet:"cdr,snappy"`
	EIA  int32 `parquet:"eia,snappy"`

	// AggregatePercent is the overall progress at this snapshot
	AggregatePercent float64 `parquet:"aggregate_percent,snappy"`
}

// ReflectionsFile and HistoryFile return the output paths derived from prefix.
func ReflectionsFile(prefix string) string { return prefix + ".reflections.parquet" }

// HistoryFile returns the history output path derived from prefix.
func HistoryFile(prefix string) string { return prefix + ".history.parquet" }

// WriteReflectionsParquet writes a slice of ReflectionRow structs to a Parquet file.
func WriteReflectionsParquet(data []ReflectionRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteHistoryParquet writes a slice of HistoryRow structs to a Parquet file.
func WriteHistoryParquet(data []HistoryRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// writeRows derives the schema from T's struct tags and writes every row.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertReflections converts reflection entries to ReflectionRow for Parquet export.
func ConvertReflections(identity string, entries []schema.ReflectionEntry) []ReflectionRow {
	result := make([]ReflectionRow, len(entries))
	for i, e := range entries {
		row := ReflectionRow{
			Identity:   identity,
			Seq:        int32(i),
			RecordedAt: e.Timestamp.Time,
			Reflection: e.Reflection,
			R3:         int32(e.Scores.R3),
			PHCB:       int32(e.Scores.PHCB),
			APD:        int32(e.Scores.APD),
			LPS:        int32(e.Scores.LPS),
			CDR:        int32(e.Scores.CDR),
			EIA:        int32(e.Scores.EIA),
		}
		if len(e.Tags) > 0 {
			tags := strings.Join(e.Tags, ",")
			row.Tags = &tags
		}
		result[i] = row
	}
	return result
}

// ConvertHistory converts history points to HistoryRow for Parquet export.
func ConvertHistory(identity string, history []schema.HistoryPoint) []HistoryRow {
	result := make([]HistoryRow, len(history))
	for i, h := range history {
		result[i] = HistoryRow{
			Identity:         identity,
			Seq:              int32(i),
			RecordedAt:       h.Timestamp.Time,
			R3:               int32(h.Scores.R3),
			PHCB:             int32(h.Scores.PHCB),
			APD:              int32(h.Scores.APD),
			LPS:              int32(h.Scores.LPS),
			CDR:              int32(h.Scores.CDR),
			EIA:              int32(h.Scores.EIA),
			AggregatePercent: algo.AggregatePercent(h.Scores),
		}
	}
	return result
}
