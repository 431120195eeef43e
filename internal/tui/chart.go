package tui

import (
	"math"
	"strconv"
	"strings"

	"github.com/rshade/carbonplan/internal/greenops"
	"github.com/rshade/carbonplan/internal/scenario"
)

// Chart markers.
const (
	MarkBAU     = '*'
	MarkPlanned = 'o'
	MarkBoth    = '#'
)

const (
	minChartWidth  = 8
	minChartHeight = 3
)

// ChartLegend explains the markers used by RenderChart.
const ChartLegend = "* BAU   o planned   # both"

// RenderChart draws BAU and planned emissions of rows as an ASCII line
// chart. The y axis runs from 0 to ceiling; a non-positive ceiling uses
// the rows' chart ceiling. width and height size the plot area.
func RenderChart(rows []scenario.DatedRow, ceiling float64, width, height int) string {
	if len(rows) == 0 {
		return ""
	}
	width = max(width, minChartWidth)
	height = max(height, minChartHeight)
	if ceiling <= 0 {
		ceiling = chartCeiling(rows)
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	plot := func(x int, v float64, mark rune) {
		y := level(v, ceiling, height)
		switch cur := grid[y][x]; {
		case cur == ' ':
			grid[y][x] = mark
		case cur != mark:
			grid[y][x] = MarkBoth
		}
	}
	for i, row := range rows {
		x := column(i, len(rows), width)
		plot(x, row.Planned, MarkPlanned)
		plot(x, row.BAU, MarkBAU)
	}

	top := greenops.FormatFloat(ceiling, 0)
	bottom := "0"
	labelWidth := max(len(top), len(bottom))

	var sb strings.Builder
	for i, line := range grid {
		label := ""
		switch i {
		case 0:
			label = top
		case height - 1:
			label = bottom
		}
		sb.WriteString(strings.Repeat(" ", labelWidth-len(label)))
		sb.WriteString(label)
		sb.WriteString(" |")
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteByte('\n')
	}

	pad := strings.Repeat(" ", labelWidth)
	sb.WriteString(pad + " +" + strings.Repeat("-", width) + "\n")

	first := strconv.Itoa(rows[0].Year)
	last := strconv.Itoa(rows[len(rows)-1].Year)
	axis := []rune(strings.Repeat(" ", width+2))
	copy(axis, []rune(first))
	if len(rows) > 1 && width+2-len(last) > len(first) {
		copy(axis[width+2-len(last):], []rune(last))
	}
	sb.WriteString(pad + " " + strings.TrimRight(string(axis), " ") + "\n")
	return sb.String()
}

// chartCeiling is the axis maximum for rows, or 1 for an all-zero chart.
func chartCeiling(rows []scenario.DatedRow) float64 {
	r := make(scenario.Result, len(rows))
	for i, d := range rows {
		r[i] = d.Row
	}
	if c := r.ChartCeiling(); c > 0 {
		return c
	}
	return 1
}

func column(i, n, width int) int {
	if n <= 1 {
		return 0
	}
	return i * (width - 1) / (n - 1)
}

// level maps v onto a grid row, 0 being the top.
func level(v, ceiling float64, height int) int {
	frac := v / ceiling
	if math.IsNaN(frac) || frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return height - 1 - int(math.Round(frac*float64(height-1)))
}
