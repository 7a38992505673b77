package outwriter

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"

	"github.com/huangsam/uli/schema"
)

const (
	svgGridColor = "#E0E0E0"
	svgTextColor = "#666666"
	svgFont      = "font-family=\"sans-serif\" font-size=\"10\""
)

// writeSVGTrend renders a chart descriptor as a standalone SVG document.
// Coordinates are used as-is; all scaling happens when the descriptor is built.
func writeSVGTrend(w io.Writer, result schema.TrendResult) error {
	layout := schema.DefaultChartLayout
	if result.Chart != nil {
		layout = result.Chart.Layout
	}
	width, height, pad := svgNum(layout.Width), svgNum(layout.Height), layout.Padding

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		width, height, width, height)
	fmt.Fprintf(bw, `  <rect width="100%%" height="100%%" fill="#FFFFFF"/>`+"\n")

	if result.Insufficient || result.Chart == nil {
		fmt.Fprintf(bw, `  <text x="%s" y="%s" text-anchor="middle" fill="%s" %s>%s</text>`+"\n",
			svgNum(layout.Width/2), svgNum(layout.Height/2), svgTextColor, svgFont, html.EscapeString(InsufficientDataMessage))
		fmt.Fprintln(bw, "</svg>")
		return bw.Flush()
	}

	chart := result.Chart
	left, right := svgNum(pad), svgNum(layout.Width-pad)
	for _, tick := range chart.YTicks {
		y := svgNum(tick.Y)
		fmt.Fprintf(bw, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n", left, y, right, y, svgGridColor)
		fmt.Fprintf(bw, `  <text x="%s" y="%s" text-anchor="end" fill="%s" %s>%d</text>`+"\n",
			svgNum(pad-6), svgNum(tick.Y+3), svgTextColor, svgFont, tick.Value)
	}
	for _, label := range chart.XLabels {
		fmt.Fprintf(bw, `  <text x="%s" y="%s" text-anchor="middle" fill="%s" %s>%s</text>`+"\n",
			svgNum(label.X), svgNum(layout.Height-pad+16), svgTextColor, svgFont, html.EscapeString(label.Text))
	}

	for _, series := range chart.Series {
		fmt.Fprintf(bw, `  <g data-principle="%s">`+"\n", html.EscapeString(string(series.Principle)))
		fmt.Fprintf(bw, `    <title>%s</title>`+"\n", html.EscapeString(series.Label))
		if series.Path != "" {
			fmt.Fprintf(bw, `    <path d="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n", series.Path, series.Color)
		}
		for _, pt := range series.Points {
			fmt.Fprintf(bw, `    <circle cx="%s" cy="%s" r="3" fill="%s"/>`+"\n", svgNum(pt.X), svgNum(pt.Y), series.Color)
		}
		fmt.Fprintln(bw, "  </g>")
	}

	// Legend along the top padding.
	for i, series := range chart.Series {
		x := pad + float64(i)*(layout.Width-2*pad)/float64(len(chart.Series))
		fmt.Fprintf(bw, `  <rect x="%s" y="%s" width="8" height="8" fill="%s"/>`+"\n", svgNum(x), svgNum(pad/2-8), series.Color)
		fmt.Fprintf(bw, `  <text x="%s" y="%s" fill="%s" %s>%s</text>`+"\n",
			svgNum(x+11), svgNum(pad/2), svgTextColor, svgFont, html.EscapeString(string(series.Principle)))
	}

	fmt.Fprintln(bw, "</svg>")
	return bw.Flush()
}

// svgNum formats a coordinate with at most two decimals.
func svgNum(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
