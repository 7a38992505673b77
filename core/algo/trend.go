package algo

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/uli/schema"
)

// maxAxisLabels caps the number of sampled x-axis labels.
const maxAxisLabels = 5

// yTickValues are the score values marked on the vertical axis.
var yTickValues = []int{0, 5, 10}

// WindowCutoff returns the earliest instant kept by window, or the zero time for all-time.
func WindowCutoff(window schema.TrendWindow, now time.Time) time.Time {
	switch window {
	case schema.Window7d:
		return now.AddDate(0, 0, -7)
	case schema.Window30d:
		return now.AddDate(0, 0, -30)
	default:
		return time.Time{}
	}
}

// BuildTrend filters history by window and principle selection and scales it into
// plot coordinates on layout, or DefaultChartLayout when layout is zero. All series share one time axis spanning the global
// min and max timestamps; the score axis is fixed to [0, 10]. Fewer than two total
// points across the selected principles yields an insufficient result.
func BuildTrend(history []schema.HistoryPoint, window schema.TrendWindow, selected []schema.Principle, now time.Time, layout schema.ChartLayout) schema.TrendResult {
	if layout == (schema.ChartLayout{}) {
		layout = schema.DefaultChartLayout
	}
	principles := canonicalSelection(selected)
	result := schema.TrendResult{Window: window, Principles: principles}

	cutoff := WindowCutoff(window, now)
	var filtered []schema.HistoryPoint
	for _, h := range SortHistory(history) {
		if !cutoff.IsZero() && h.Timestamp.Before(cutoff) {
			continue
		}
		filtered = append(filtered, h)
	}

	result.PointCount = len(filtered) * len(principles)
	if result.PointCount < 2 {
		result.Insufficient = true
		return result
	}

	minTime := filtered[0].Timestamp.Time
	maxTime := filtered[len(filtered)-1].Timestamp.Time
	sc := scaler{layout: layout, minTime: minTime, maxTime: maxTime}

	chart := &schema.ChartDescriptor{
		Layout:   layout,
		MinTime:  minTime,
		MaxTime:  maxTime,
		MinScore: 0,
		MaxScore: schema.MaxScore,
	}

	for _, p := range principles {
		series := schema.Series{
			Principle: p,
			Label:     p.Label(),
			Color:     p.Color(),
			Points:    make([]schema.PlotPoint, 0, len(filtered)),
		}
		for _, h := range filtered {
			score := h.Scores.Get(p)
			series.Points = append(series.Points, schema.PlotPoint{
				X:         sc.x(h.Timestamp.Time),
				Y:         sc.y(float64(score)),
				Timestamp: h.Timestamp,
				Score:     score,
			})
		}
		series.Path = polylinePath(series.Points)
		chart.Series = append(chart.Series, series)
	}

	chart.XLabels = axisLabels(filtered, sc, now.Location())
	for _, v := range yTickValues {
		chart.YTicks = append(chart.YTicks, schema.AxisTick{Y: sc.y(float64(v)), Value: v})
	}

	result.Chart = chart
	return result
}

// canonicalSelection deduplicates the selection, drops unknown keys and restores canonical order.
func canonicalSelection(selected []schema.Principle) []schema.Principle {
	var out []schema.Principle
	for _, p := range schema.AllPrinciples {
		if slices.Contains(selected, p) {
			out = append(out, p)
		}
	}
	return out
}

type scaler struct {
	layout           schema.ChartLayout
	minTime, maxTime time.Time
}

// x interpolates t between minTime and maxTime onto the horizontal span.
// A degenerate span places every point at the horizontal center.
func (s scaler) x(t time.Time) float64 {
	span := s.layout.Width - 2*s.layout.Padding
	total := s.maxTime.Sub(s.minTime)
	if total <= 0 {
		return s.layout.Padding + span/2
	}
	frac := float64(t.Sub(s.minTime)) / float64(total)
	return s.layout.Padding + frac*span
}

// y maps a score onto the vertical span; higher scores sit higher on screen.
func (s scaler) y(score float64) float64 {
	span := s.layout.Height - 2*s.layout.Padding
	return s.layout.Height - s.layout.Padding - score/float64(schema.MaxScore)*span
}

// polylinePath renders points as an SVG path, or "" for fewer than two points.
func polylinePath(points []schema.PlotPoint) string {
	if len(points) < 2 {
		return ""
	}
	var b strings.Builder
	for i, pt := range points {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(formatCoord(pt.X))
		b.WriteByte(' ')
		b.WriteString(formatCoord(pt.Y))
	}
	return b.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// axisLabels samples up to maxAxisLabels evenly indexed labels from the distinct
// timestamps of the filtered points, which are already sorted ascending.
func axisLabels(points []schema.HistoryPoint, sc scaler, loc *time.Location) []schema.AxisLabel {
	var distinct []schema.Timestamp
	for _, h := range points {
		if n := len(distinct); n > 0 && distinct[n-1].Equal(h.Timestamp.Time) {
			continue
		}
		distinct = append(distinct, h.Timestamp)
	}

	count := min(maxAxisLabels, len(distinct))
	labels := make([]schema.AxisLabel, 0, count)
	for i := range count {
		idx := 0
		if count > 1 {
			idx = i * (len(distinct) - 1) / (count - 1)
		}
		ts := distinct[idx]
		local := ts.In(loc)
		labels = append(labels, schema.AxisLabel{
			X:         sc.x(ts.Time),
			Text:      fmt.Sprintf("%d/%d", int(local.Month()), local.Day()),
			Timestamp: ts,
		})
	}
	return labels
}
