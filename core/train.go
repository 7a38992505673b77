package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/huangsam/uli/internal/contract"
	"github.com/huangsam/uli/internal/outwriter"
	"github.com/huangsam/uli/schema"
	"golang.org/x/term"
)

// countdownInterval is the tick period of a practice session.
var countdownInterval = time.Second

// plainTickEvery controls how often the non-interactive countdown prints.
const plainTickEvery = 30 * time.Second

// RunCountdown calls tick with the remaining time once per interval, starting with d
// and ending with zero. It returns ctx.Err() when cancelled before the end.
func RunCountdown(ctx context.Context, d time.Duration, tick func(remaining time.Duration)) error {
	remaining := max(d, 0)
	tick(remaining)
	if remaining == 0 {
		return nil
	}

	ticker := time.NewTicker(countdownInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			remaining = max(remaining-countdownInterval, 0)
			tick(remaining)
			if remaining == 0 {
				return nil
			}
		}
	}
}

// formatRemaining renders a duration as mm:ss.
func formatRemaining(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// remainingMsg carries the time left in the session.
type remainingMsg time.Duration

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	timerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginTop(1)
)

// countdownModel is the bubbletea model of a practice session.
type countdownModel struct {
	exercise  schema.Exercise
	remaining time.Duration
	bar       progress.Model
	done      bool
	cancelled bool
}

func newCountdownModel(ex schema.Exercise) countdownModel {
	return countdownModel{
		exercise:  ex,
		remaining: ex.Duration,
		bar: progress.New(
			progress.WithGradient(ex.Principle.Color(), "#ffffff"),
			progress.WithWidth(40),
		),
	}
}

// Init implements tea.Model.
func (m countdownModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m countdownModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	case remainingMsg:
		m.remaining = time.Duration(msg)
		if m.remaining <= 0 {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// elapsedFraction is the share of the session already spent.
func (m countdownModel) elapsedFraction() float64 {
	if m.exercise.Duration <= 0 {
		return 1
	}
	return 1 - float64(m.remaining)/float64(m.exercise.Duration)
}

// View implements tea.Model.
func (m countdownModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.exercise.Title))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(m.elapsedFraction()))
	b.WriteString("  ")
	b.WriteString(timerStyle.Render(formatRemaining(m.remaining)))
	b.WriteString("\n")
	if m.done {
		b.WriteString(footerStyle.Render("Session complete."))
	} else {
		b.WriteString(footerStyle.Render("q: stop session"))
	}
	b.WriteString("\n")
	return b.String()
}

// ExecuteTrainList prints the exercise catalog.
func ExecuteTrainList(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	return outwriter.PrintExercises(schema.AllExercises(), cfg)
}

// ExecuteTrainStart returns an executor that runs a timed practice session.
func ExecuteTrainStart(p schema.Principle) ExecutorFunc {
	return func(ctx context.Context, cfg *contract.Config, _ contract.StoreManager) error {
		ex, ok := schema.ExerciseFor(p)
		if !ok {
			return fmt.Errorf("no exercise for principle '%s'", p)
		}
		if err := outwriter.PrintExercise(ex, cfg); err != nil {
			return err
		}
		if cfg.Output != schema.TextOut || cfg.OutputFile != "" {
			return nil
		}

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()

		var cancelled bool
		var err error
		if term.IsTerminal(int(os.Stdout.Fd())) {
			cancelled, err = runInteractive(ctx, ex)
		} else {
			cancelled, err = runPlain(ctx, os.Stdout, ex)
		}
		if err != nil {
			return err
		}

		if cancelled {
			_, _ = fmt.Fprintln(os.Stdout, "Session stopped early.")
			return nil
		}
		_, _ = fmt.Fprintln(os.Stdout, "Session complete. Capture your answers with `uli reflect`.")
		return nil
	}
}

// runInteractive drives the countdown model from a RunCountdown goroutine.
func runInteractive(ctx context.Context, ex schema.Exercise) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(newCountdownModel(ex))
	go func() {
		err := RunCountdown(ctx, ex.Duration, func(remaining time.Duration) {
			program.Send(remainingMsg(remaining))
		})
		if err != nil {
			program.Quit()
		}
	}()

	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("practice session failed: %w", err)
	}
	m, _ := final.(countdownModel)
	return m.cancelled || ctx.Err() != nil, nil
}

// runPlain prints the remaining time periodically when no terminal is attached.
func runPlain(ctx context.Context, w io.Writer, ex schema.Exercise) (bool, error) {
	err := RunCountdown(ctx, ex.Duration, func(remaining time.Duration) {
		if remaining%plainTickEvery == 0 {
			_, _ = fmt.Fprintf(w, "⏳ %s remaining\n", formatRemaining(remaining))
		}
	})
	if err == nil {
		return false, nil
	}
	if ctx.Err() != nil {
		return true, nil
	}
	return false, err
}
