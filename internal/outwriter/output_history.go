package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/uli/internal/contract"
	"github.com/huangsam/uli/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintHistory outputs matching reflections, dispatching based on the output format configured.
func PrintHistory(result schema.HistoryResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON history")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVHistory(w, result)
		}, "Wrote CSV history")
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryText(w, result, cfg)
		}, "Wrote history")
	default:
		return unsupportedOutput("history", cfg.Output)
	}
}

// writeCSVHistory writes one row per reflection entry.
func writeCSVHistory(w io.Writer, result schema.HistoryResult) error {
	header := append([]string{"timestamp", "reflection", "tags"}, schemaKeys()...)
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range result.Entries {
			record := append([]string{e.Timestamp.String(), e.Reflection, strings.Join(e.Tags, "|")}, scoreCells(e.Scores)...)
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// writeHistoryText prints reflections newest first in a table.
func writeHistoryText(w io.Writer, result schema.HistoryResult, cfg *contract.Config) error {
	_, _ = fmt.Fprintln(w, heading("📓 Reflection History", cfg.UseColors))
	if len(result.Entries) == 0 {
		_, _ = fmt.Fprintln(w, "No reflections found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header(append([]string{"Date", "Reflection", "Tags"}, principleHeaders()...))
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
		tc.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft, tw.AlignLeft, tw.AlignLeft}
	})

	textWidth := maxReflectionWidth(cfg)
	var data [][]string
	for _, e := range result.Entries {
		row := []string{
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			contract.TruncateText(e.Reflection, textWidth),
			formatTags(e.Tags),
		}
		data = append(data, append(row, scoreCells(e.Scores)...))
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	shown := len(result.Entries)
	if shown < result.Total {
		_, _ = fmt.Fprintf(w, "Showing %d of %d matching reflections\n", shown, result.Total)
	} else {
		_, _ = fmt.Fprintf(w, "%d matching reflections\n", shown)
	}
	return nil
}

// PrintTags outputs the tag index.
func PrintTags(tags []schema.TagCount, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, tags)
		}, "Wrote JSON tags")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"tag", "count"}, func(cw *csv.Writer) error {
				for _, t := range tags {
					if err := cw.Write([]string{t.Tag, strconv.Itoa(t.Count)}); err != nil {
						return fmt.Errorf("failed to write CSV record: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV tags")
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTagsText(w, tags, cfg)
		}, "Wrote tags")
	default:
		return unsupportedOutput("tags", cfg.Output)
	}
}

func writeTagsText(w io.Writer, tags []schema.TagCount, cfg *contract.Config) error {
	_, _ = fmt.Fprintln(w, heading("🏷️  Tags", cfg.UseColors))
	if len(tags) == 0 {
		_, _ = fmt.Fprintln(w, "No tags yet.")
		return nil
	}
	for _, t := range tags {
		_, _ = fmt.Fprintf(w, "  %s %s\n", t.Tag, dim(fmt.Sprintf("(%d)", t.Count), cfg.UseColors))
	}
	return nil
}

// schemaKeys returns the lower-case principle keys in canonical order.
func schemaKeys() []string {
	keys := make([]string, 0, len(schema.AllPrinciples))
	for _, p := range schema.AllPrinciples {
		keys = append(keys, string(p))
	}
	return keys
}
