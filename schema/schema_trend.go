package schema

import "time"

// ChartLayout holds the plotting area geometry in drawing units.
type ChartLayout struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding float64 `json:"padding"`
}

// DefaultChartLayout is the 600x300 canvas with 40 units of padding on every side.
var DefaultChartLayout = ChartLayout{Width: 600, Height: 300, Padding: 40}

// PlotPoint is a single scaled score sample.
type PlotPoint struct {
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Timestamp Timestamp `json:"timestamp"`
	Score     int       `json:"score"`
}

// Series is the plotted line for one principle.
type Series struct {
	Principle Principle   `json:"principle"`
	Label     string      `json:"label"`
	Color     string      `json:"color"`
	Points    []PlotPoint `json:"points"`
	Path      string      `json:"path,omitempty"` // empty when fewer than two points
}

// AxisLabel is a sampled x-axis date label.
type AxisLabel struct {
	X         float64   `json:"x"`
	Text      string    `json:"text"`
	Timestamp Timestamp `json:"timestamp"`
}

// AxisTick is a y-axis tick at a given score value.
type AxisTick struct {
	Y     float64 `json:"y"`
	Value int     `json:"value"`
}

// ChartDescriptor is a plot-ready, scaled description of the trend chart.
type ChartDescriptor struct {
	Layout   ChartLayout `json:"layout"`
	MinTime  time.Time   `json:"min_time"`
	MaxTime  time.Time   `json:"max_time"`
	MinScore int         `json:"min_score"`
	MaxScore int         `json:"max_score"`
	Series   []Series    `json:"series"`
	XLabels  []AxisLabel `json:"x_labels"`
	YTicks   []AxisTick  `json:"y_ticks"`
}

// TrendResult is the output of the trend pipeline.
type TrendResult struct {
	Window       TrendWindow      `json:"window"`
	Principles   []Principle      `json:"principles"`
	Insufficient bool             `json:"insufficient"`
	PointCount   int              `json:"point_count"`
	Chart        *ChartDescriptor `json:"chart,omitempty"`
}
