package algo

import (
	"testing"
	"time"

	"github.com/huangsam/uli/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildTrendScaling tests coordinate mapping on the default layout.
func TestBuildTrendScaling(t *testing.T) {
	history := []schema.HistoryPoint{
		point(daysAgo(1), schema.ScoreSet{R3: 8, PHCB: 5, APD: 5, LPS: 5, CDR: 5, EIA: 5}),
		point(daysAgo(4), schema.ScoreSet{R3: 2, PHCB: 5, APD: 5, LPS: 5, CDR: 5, EIA: 5}),
	}

	result := BuildTrend(history, schema.WindowAll, []schema.Principle{schema.R3}, fixedNow, schema.DefaultChartLayout)
	require.False(t, result.Insufficient)
	require.NotNil(t, result.Chart)
	assert.Equal(t, 2, result.PointCount)
	require.Len(t, result.Chart.Series, 1)

	pts := result.Chart.Series[0].Points
	require.Len(t, pts, 2)
	assert.InDelta(t, 40.0, pts[0].X, 1e-9)
	assert.InDelta(t, 216.0, pts[0].Y, 1e-9)
	assert.Equal(t, 2, pts[0].Score)
	assert.InDelta(t, 560.0, pts[1].X, 1e-9)
	assert.InDelta(t, 84.0, pts[1].Y, 1e-9)
	assert.Equal(t, "M 40.00 216.00 L 560.00 84.00", result.Chart.Series[0].Path)

	assert.Equal(t, schema.R3.Label(), result.Chart.Series[0].Label)
	assert.Equal(t, schema.R3.Color(), result.Chart.Series[0].Color)

	require.Len(t, result.Chart.YTicks, 3)
	assert.InDelta(t, 260.0, result.Chart.YTicks[0].Y, 1e-9)
	assert.InDelta(t, 40.0, result.Chart.YTicks[2].Y, 1e-9)

	require.Len(t, result.Chart.XLabels, 2)
	assert.Equal(t, "3/11", result.Chart.XLabels[0].Text)
	assert.Equal(t, "3/14", result.Chart.XLabels[1].Text)
}

// TestBuildTrendZeroLayout tests the fallback to the default canvas.
func TestBuildTrendZeroLayout(t *testing.T) {
	history := []schema.HistoryPoint{point(daysAgo(1), uniform(4)), point(fixedNow, uniform(6))}
	result := BuildTrend(history, schema.WindowAll, schema.AllPrinciples, fixedNow, schema.ChartLayout{})
	require.NotNil(t, result.Chart)
	assert.Equal(t, schema.DefaultChartLayout, result.Chart.Layout)
}

// TestBuildTrendInsufficient tests the cases that cannot produce a chart.
func TestBuildTrendInsufficient(t *testing.T) {
	tests := []struct {
		name     string
		history  []schema.HistoryPoint
		window   schema.TrendWindow
		selected []schema.Principle
	}{
		{name: "empty history", history: nil, window: schema.WindowAll, selected: schema.AllPrinciples},
		{
			name:     "single point single principle",
			history:  []schema.HistoryPoint{point(fixedNow, uniform(5))},
			window:   schema.WindowAll,
			selected: []schema.Principle{schema.CDR},
		},
		{
			name:     "window excludes everything",
			history:  []schema.HistoryPoint{point(daysAgo(10), uniform(5)), point(daysAgo(9), uniform(5))},
			window:   schema.Window7d,
			selected: schema.AllPrinciples,
		},
		{
			name:     "no principles selected",
			history:  []schema.HistoryPoint{point(daysAgo(1), uniform(5)), point(fixedNow, uniform(5))},
			window:   schema.WindowAll,
			selected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BuildTrend(tt.history, tt.window, tt.selected, fixedNow, schema.DefaultChartLayout)
			assert.True(t, result.Insufficient)
			assert.Nil(t, result.Chart)
		})
	}
}

// TestBuildTrendSinglePointCentered tests a single history point across all principles.
func TestBuildTrendSinglePointCentered(t *testing.T) {
	history := []schema.HistoryPoint{point(fixedNow, uniform(5))}
	result := BuildTrend(history, schema.WindowAll, schema.AllPrinciples, fixedNow, schema.DefaultChartLayout)
	require.False(t, result.Insufficient)
	assert.Equal(t, 6, result.PointCount)
	require.Len(t, result.Chart.Series, 6)

	for _, series := range result.Chart.Series {
		require.Len(t, series.Points, 1)
		assert.InDelta(t, 300.0, series.Points[0].X, 1e-9)
		assert.Empty(t, series.Path)
	}
	require.Len(t, result.Chart.XLabels, 1)
	assert.InDelta(t, 300.0, result.Chart.XLabels[0].X, 1e-9)
}

// TestBuildTrendWindow tests window filtering and the inclusive cutoff.
func TestBuildTrendWindow(t *testing.T) {
	history := []schema.HistoryPoint{
		point(daysAgo(40), uniform(1)),
		point(daysAgo(20), uniform(2)),
		point(daysAgo(7), uniform(3)),
		point(daysAgo(1), uniform(4)),
	}
	only := []schema.Principle{schema.APD}

	week := BuildTrend(history, schema.Window7d, only, fixedNow, schema.DefaultChartLayout)
	assert.Equal(t, 2, week.PointCount)

	month := BuildTrend(history, schema.Window30d, only, fixedNow, schema.DefaultChartLayout)
	assert.Equal(t, 3, month.PointCount)

	all := BuildTrend(history, schema.WindowAll, only, fixedNow, schema.DefaultChartLayout)
	assert.Equal(t, 4, all.PointCount)
}

// TestBuildTrendCanonicalOrder tests that series follow canonical order regardless of selection order.
func TestBuildTrendCanonicalOrder(t *testing.T) {
	history := []schema.HistoryPoint{point(daysAgo(1), uniform(4)), point(fixedNow, uniform(6))}
	selected := []schema.Principle{schema.EIA, schema.R3, schema.EIA, schema.LPS}

	result := BuildTrend(history, schema.WindowAll, selected, fixedNow, schema.DefaultChartLayout)
	assert.Equal(t, []schema.Principle{schema.R3, schema.LPS, schema.EIA}, result.Principles)
	require.Len(t, result.Chart.Series, 3)
	assert.Equal(t, schema.R3, result.Chart.Series[0].Principle)
	assert.Equal(t, schema.EIA, result.Chart.Series[2].Principle)
}

// TestBuildTrendAxisSampling tests that at most five labels are sampled evenly.
func TestBuildTrendAxisSampling(t *testing.T) {
	var history []schema.HistoryPoint
	for i := range 9 {
		history = append(history, point(daysAgo(8-i), uniform(5)))
	}
	// Duplicate instant should not add a label slot.
	history = append(history, point(fixedNow, uniform(7)))

	result := BuildTrend(history, schema.WindowAll, []schema.Principle{schema.R3}, fixedNow, schema.DefaultChartLayout)
	require.Len(t, result.Chart.XLabels, 5)
	// Nine distinct days sampled at indexes 0, 2, 4, 6, 8.
	want := []string{"3/7", "3/9", "3/11", "3/13", "3/15"}
	for i, label := range result.Chart.XLabels {
		assert.Equal(t, want[i], label.Text)
	}
	assert.InDelta(t, 40.0, result.Chart.XLabels[0].X, 1e-9)
	assert.InDelta(t, 560.0, result.Chart.XLabels[4].X, 1e-9)
}

// TestWindowCutoff tests the cutoff instants for each window.
func TestWindowCutoff(t *testing.T) {
	assert.Equal(t, fixedNow.AddDate(0, 0, -7), WindowCutoff(schema.Window7d, fixedNow))
	assert.Equal(t, fixedNow.AddDate(0, 0, -30), WindowCutoff(schema.Window30d, fixedNow))
	assert.True(t, WindowCutoff(schema.WindowAll, fixedNow).IsZero())
}

// BenchmarkBuildTrend measures chart construction over a year of daily history.
func BenchmarkBuildTrend(b *testing.B) {
	history := make([]schema.HistoryPoint, 0, 365)
	for i := range 365 {
		history = append(history, point(fixedNow.Add(-time.Duration(i)*24*time.Hour), uniform(1+i%10)))
	}
	for b.Loop() {
		BuildTrend(history, schema.WindowAll, schema.AllPrinciples, fixedNow, schema.DefaultChartLayout)
	}
}
