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
)

// PrintRecommendation outputs the next-exercise suggestion.
func PrintRecommendation(result schema.RecommendationResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON recommendation")
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecommendationText(w, result, cfg)
		}, "Wrote recommendation")
	default:
		return unsupportedOutput("recommend", cfg.Output)
	}
}

func writeRecommendationText(w io.Writer, result schema.RecommendationResult, cfg *contract.Config) error {
	_, _ = fmt.Fprintln(w, heading("🎯 Recommended Exercise", cfg.UseColors))
	_, _ = fmt.Fprintf(w, "Focus: %s (score %d/%d, %s)\n",
		result.Principle.Label(), result.Score, schema.MaxScore, scoreLabel(result.Score, cfg.UseColors))
	if len(result.Tied) > 1 {
		names := make([]string, len(result.Tied))
		for i, p := range result.Tied {
			names[i] = string(p)
		}
		_, _ = fmt.Fprintln(w, dim("Tied lowest: "+strings.Join(names, ", "), cfg.UseColors))
	}
	_, _ = fmt.Fprintln(w)
	writeExerciseText(w, result.Exercise, cfg)
	return nil
}

// PrintExercise outputs a single exercise.
func PrintExercise(ex schema.Exercise, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, ex)
		}, "Wrote JSON exercise")
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			writeExerciseText(w, ex, cfg)
			return nil
		}, "Wrote exercise")
	default:
		return unsupportedOutput("train", cfg.Output)
	}
}

func writeExerciseText(w io.Writer, ex schema.Exercise, cfg *contract.Config) {
	_, _ = fmt.Fprintln(w, heading(ex.Title, cfg.UseColors))
	_, _ = fmt.Fprintf(w, "Duration: %s\n\n", ex.Duration)
	_, _ = fmt.Fprintln(w, ex.Prompt)
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, dim("Afterwards, reflect on: "+ex.FeedbackPrompt, cfg.UseColors))
}

// PrintExercises outputs the exercise catalog.
func PrintExercises(exercises []schema.Exercise, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, exercises)
		}, "Wrote JSON exercises")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"principle", "title", "duration_seconds", "focus"}, func(cw *csv.Writer) error {
				for _, ex := range exercises {
					record := []string{string(ex.Principle), ex.Title, strconv.Itoa(int(ex.Duration.Seconds())), ex.Focus}
					if err := cw.Write(record); err != nil {
						return fmt.Errorf("failed to write CSV record: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV exercises")
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			table := tablewriter.NewWriter(w)
			table.Header([]string{"Key", "Exercise", "Duration"})
			var data [][]string
			for _, ex := range exercises {
				data = append(data, []string{string(ex.Principle), ex.Title, ex.Duration.String()})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			return table.Render()
		}, "Wrote exercises")
	default:
		return unsupportedOutput("train list", cfg.Output)
	}
}

// PrintReflectResult confirms a logged reflection.
func PrintReflectResult(result schema.ReflectResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON reflection")
	case schema.TextOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			fmtFloat := createFormatter(cfg.Precision)
			_, _ = fmt.Fprintf(w, "✅ Reflection saved for %s at %s\n", result.Identity, result.Entry.Timestamp.Local().Format("2006-01-02 15:04"))
			_, _ = fmt.Fprintf(w, "Overall Progress: %s%% %s\n", fmtFloat(result.AggregatePercent), percentLabel(result.AggregatePercent, cfg.UseColors))
			_, _ = fmt.Fprintf(w, "Streak: %s\n", formatStreak(result.Streak))
			_, _ = fmt.Fprintf(w, "Next focus: %s\n", result.Recommendation.Label())
			return nil
		}, "Wrote reflection summary")
	default:
		return unsupportedOutput("reflect", cfg.Output)
	}
}
