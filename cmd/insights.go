package cmd

import (
	"github.com/huangsam/uli/core"
	"github.com/spf13/cobra"
)

// dashboardCmd shows the current state of every principle.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show current scores, overall progress, streak and next focus.",
	Long: `Summarize everything stored for the identity.

Shows:
- Overall progress as the percentage of the maximum possible total
- Consecutive-day reflection streak
- Current score, rating and sparkline trend for each principle
- The exercise for the lowest-scoring principle

Examples:
  # Show the dashboard
  uli dashboard

  # Dashboard for another identity, as JSON
  uli dashboard --identity alice --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		run(core.ExecuteDashboard, "Cannot show dashboard")
	},
}

// trendCmd charts scores over time.
var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Chart principle scores over a time window.",
	Long: `Plot the score history of the selected principles.

All series share one time axis and a fixed 0-10 score axis. At least two
points are needed to draw a chart.

Examples:
  # Summarize all principles over all time
  uli trend

  # Last 30 days of two principles
  uli trend --window 30d --principles r3,lps

  # Render the chart as SVG
  uli trend --output svg --output-file trend.svg`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		run(core.ExecuteTrend, "Cannot build trend")
	},
}

// recommendCmd suggests the next exercise.
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend the exercise for the lowest-scoring principle.",
	Long: `Pick the principle with the lowest current score and show its exercise.

Ties go to the principle listed first (r3, phcb, apd, lps, cdr, eia) unless
--shuffle-ties is set.

Examples:
  uli recommend
  uli recommend --shuffle-ties`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		run(core.ExecuteRecommend, "Cannot build recommendation")
	},
}
