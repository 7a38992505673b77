package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/huangsam/uli/internal/contract"
	"github.com/huangsam/uli/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// InsufficientDataMessage is shown when a trend has fewer than two points.
const InsufficientDataMessage = "Not enough data to show a trend. Log at least two reflections in this window."

// PrintTrend outputs the trend result, dispatching based on the output format configured.
func PrintTrend(result schema.TrendResult, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON trend")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVTrend(w, result, fmtFloat)
		}, "Wrote CSV trend")
	case schema.SVGOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSVGTrend(w, result)
		}, "Wrote SVG trend chart")
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendText(w, result, cfg)
		}, "Wrote trend")
	default:
		return unsupportedOutput("trend", cfg.Output)
	}
}

// writeCSVTrend writes one row per plotted point.
func writeCSVTrend(w io.Writer, result schema.TrendResult, fmtFloat func(float64) string) error {
	header := []string{"principle", "timestamp", "score", "x", "y"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		if result.Chart == nil {
			return nil
		}
		for _, series := range result.Chart.Series {
			for _, pt := range series.Points {
				record := []string{
					string(series.Principle),
					pt.Timestamp.String(),
					strconv.Itoa(pt.Score),
					fmtFloat(pt.X),
					fmtFloat(pt.Y),
				}
				if err := cw.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
		}
		return nil
	})
}

// writeTrendText summarizes each series in a table with a sparkline.
func writeTrendText(w io.Writer, result schema.TrendResult, cfg *contract.Config) error {
	_, _ = fmt.Fprintln(w, heading(fmt.Sprintf("📈 Trend (%s)", result.Window), cfg.UseColors))
	if result.Insufficient || result.Chart == nil {
		_, _ = fmt.Fprintln(w, InsufficientDataMessage)
		return nil
	}

	chart := result.Chart
	_, _ = fmt.Fprintf(w, "From %s to %s, %d points\n\n",
		chart.MinTime.Format("2006-01-02"), chart.MaxTime.Format("2006-01-02"), result.PointCount)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Principle", "First", "Latest", "Change", "Low", "High", "Trend"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.PerColumn = []tw.Align{
			tw.AlignLeft, tw.AlignRight, tw.AlignRight, tw.AlignRight, tw.AlignRight, tw.AlignRight, tw.AlignLeft,
		}
	})

	var data [][]string
	for _, series := range chart.Series {
		if len(series.Points) == 0 {
			continue
		}
		scores := make([]int, len(series.Points))
		for i, pt := range series.Points {
			scores[i] = pt.Score
		}
		first, latest := scores[0], scores[len(scores)-1]
		label := series.Label
		if cfg.UseColors {
			label = lipgloss.NewStyle().Foreground(lipgloss.Color(series.Color)).Render(label)
		}
		data = append(data, []string{
			label,
			strconv.Itoa(first),
			strconv.Itoa(latest),
			fmt.Sprintf("%+d", latest-first),
			strconv.Itoa(slices.Min(scores)),
			strconv.Itoa(slices.Max(scores)),
			renderSparkline(scores),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
