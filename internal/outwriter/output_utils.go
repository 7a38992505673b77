package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/huangsam/uli/internal/contract"
	"github.com/huangsam/uli/schema"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	sparklineWidth    = 20
	sparklineHeight   = 1
	progressWidth     = 30
	defaultTermWidth  = 80
	minReflectionText = 20
	maxReflectionText = 80
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// createFormatter returns a float formatter honoring the configured precision.
func createFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
}

// unsupportedOutput reports an output mode a command cannot produce.
func unsupportedOutput(command string, mode schema.OutputMode) error {
	return fmt.Errorf("%s does not support --output %s", command, mode)
}

// scoreLabel returns the label for a single principle score.
func scoreLabel(score int, useColors bool) string {
	percent := float64(score) / schema.MaxScore * 100
	if useColors {
		return contract.GetColorLabel(percent)
	}
	return contract.GetPlainLabel(percent)
}

// percentLabel returns the label for an aggregate percentage.
func percentLabel(percent float64, useColors bool) string {
	if useColors {
		return contract.GetColorLabel(percent)
	}
	return contract.GetPlainLabel(percent)
}

// renderSparkline draws the chronological scores of one principle.
func renderSparkline(values []int) string {
	if len(values) == 0 {
		return "-"
	}
	spark := sparkline.New(sparklineWidth, sparklineHeight)
	for _, v := range values {
		spark.Push(float64(v))
	}
	spark.Draw()
	return spark.View()
}

// renderProgress draws an aggregate percentage as a bar.
func renderProgress(percent float64, useColors bool) string {
	opts := []progress.Option{progress.WithWidth(progressWidth)}
	if useColors {
		opts = append(opts, progress.WithGradient("#FF6384", "#4BC0C0"))
	} else {
		opts = append(opts, progress.WithFillCharacters('#', '.'), progress.WithColorProfile(termenv.Ascii))
	}
	bar := progress.New(opts...)
	return bar.ViewAs(max(0, min(percent/100, 1)))
}

// heading renders a section title.
func heading(text string, useColors bool) string {
	if !useColors {
		return text
	}
	return headingStyle.Render(text)
}

// dim renders secondary text.
func dim(text string, useColors bool) string {
	if !useColors {
		return text
	}
	return dimStyle.Render(text)
}

// terminalWidth returns the configured width, the detected terminal width, or 80.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return defaultTermWidth // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// maxReflectionWidth calculates how much of a reflection fits in the history table.
func maxReflectionWidth(cfg *contract.Config) int {
	// Date + tags + six score columns with borders/padding
	const reserved = 60
	available := terminalWidth(cfg) - reserved
	if available < minReflectionText {
		return minReflectionText
	}
	if available > maxReflectionText {
		return maxReflectionText
	}
	return available
}

// formatTags joins tags for display.
func formatTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}

// scoreCells renders a score set in canonical principle order.
func scoreCells(scores schema.ScoreSet) []string {
	cells := make([]string, 0, len(schema.AllPrinciples))
	for _, p := range schema.AllPrinciples {
		cells = append(cells, strconv.Itoa(scores.Get(p)))
	}
	return cells
}

// principleHeaders returns the upper-cased principle keys in canonical order.
func principleHeaders() []string {
	headers := make([]string, 0, len(schema.AllPrinciples))
	for _, p := range schema.AllPrinciples {
		headers = append(headers, strings.ToUpper(string(p)))
	}
	return headers
}
