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

// PrintDashboard outputs the dashboard, dispatching based on the output format configured.
func PrintDashboard(result schema.DashboardResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON dashboard")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVDashboard(w, result, createFormatter(cfg.Precision))
		}, "Wrote CSV dashboard")
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDashboardText(w, result, cfg)
		}, "Wrote dashboard")
	default:
		return unsupportedOutput("dashboard", cfg.Output)
	}
}

// writeCSVDashboard writes one row per principle plus an aggregate row.
func writeCSVDashboard(w io.Writer, result schema.DashboardResult, fmtFloat func(float64) string) error {
	header := []string{"principle", "label", "score", "rating", "history"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, row := range result.Principles {
			history := make([]string, len(row.History))
			for i, v := range row.History {
				history[i] = strconv.Itoa(v)
			}
			record := []string{
				string(row.Principle),
				row.Label,
				strconv.Itoa(row.Score),
				scoreLabel(row.Score, false),
				strings.Join(history, "|"),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return cw.Write([]string{"aggregate", "Overall Progress", fmtFloat(result.AggregatePercent), percentLabel(result.AggregatePercent, false), ""})
	})
}

// writeDashboardText renders the dashboard with a progress bar and sparklines.
func writeDashboardText(w io.Writer, result schema.DashboardResult, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	_, _ = fmt.Fprintln(w, heading(fmt.Sprintf("🧭 Reflection Dashboard (%s)", result.Identity), cfg.UseColors))
	if !result.HasScores {
		_, _ = fmt.Fprintln(w, dim("No reflections logged yet. Showing default scores.", cfg.UseColors))
	}
	_, _ = fmt.Fprintf(w, "Overall Progress: %s%% %s %s\n",
		fmtFloat(result.AggregatePercent),
		renderProgress(result.AggregatePercent, cfg.UseColors),
		percentLabel(result.AggregatePercent, cfg.UseColors))
	_, _ = fmt.Fprintf(w, "Streak: %s\n", formatStreak(result.Streak))
	_, _ = fmt.Fprintf(w, "Reflections: %d\n\n", result.ReflectionCount)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Principle", "Score", "Label", "Trend"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft, tw.AlignRight, tw.AlignLeft, tw.AlignLeft}
	})

	var data [][]string
	for _, row := range result.Principles {
		data = append(data, []string{
			row.Label,
			fmt.Sprintf("%d/%d", row.Score, schema.MaxScore),
			scoreLabel(row.Score, cfg.UseColors),
			renderSparkline(row.History),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "\nNext exercise: %s\n", result.Exercise.Title)
	_, _ = fmt.Fprintln(w, dim(result.Exercise.Focus, cfg.UseColors))
	return nil
}

// formatStreak renders a streak count with its unit.
func formatStreak(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
