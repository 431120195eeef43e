package web

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/rshade/carbonplan/internal/greenops"
	"github.com/rshade/carbonplan/internal/scenario"
)

// SVG chart geometry in user units.
const (
	svgWidth     = 640
	svgHeight    = 320
	svgPadLeft   = 72
	svgPadRight  = 16
	svgPadTop    = 16
	svgPadBottom = 40
	svgGridLines = 4
)

const (
	bauColor     = "#e8590c"
	plannedColor = "#2f9e44"
)

// renderChartSVG draws BAU and planned emissions as two polylines with the
// y axis running from 0 to 110% of the largest value.
func renderChartSVG(rows []scenario.DatedRow) template.HTML {
	if len(rows) == 0 {
		return ""
	}

	result := make(scenario.Result, len(rows))
	for i, r := range rows {
		result[i] = r.Row
	}
	ceiling := result.ChartCeiling()
	if ceiling <= 0 {
		ceiling = 1
	}

	plotW := float64(svgWidth - svgPadLeft - svgPadRight)
	plotH := float64(svgHeight - svgPadTop - svgPadBottom)
	x := func(i int) float64 {
		if len(rows) == 1 {
			return svgPadLeft + plotW/2
		}
		return svgPadLeft + plotW*float64(i)/float64(len(rows)-1)
	}
	y := func(v float64) float64 {
		return svgPadTop + plotH*(1-v/ceiling)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" role="img" aria-label="Emission scenario chart" class="chart">`,
		svgWidth, svgHeight)

	for i := 0; i <= svgGridLines; i++ {
		v := ceiling * float64(i) / svgGridLines
		gy := y(v)
		fmt.Fprintf(&sb, `<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="#dee2e6"/>`,
			svgPadLeft, gy, svgWidth-svgPadRight, gy)
		fmt.Fprintf(&sb, `<text x="%d" y="%.1f" text-anchor="end" font-size="11" dominant-baseline="middle">%s</text>`,
			svgPadLeft-6, gy, template.HTMLEscapeString(greenops.FormatFloat(v, 0)))
	}

	for i, r := range rows {
		fmt.Fprintf(&sb, `<text x="%.1f" y="%d" text-anchor="middle" font-size="11">%d</text>`,
			x(i), svgHeight-svgPadBottom+18, r.Year)
	}

	line := func(color string, value func(scenario.DatedRow) float64, label string) {
		points := make([]string, len(rows))
		for i, r := range rows {
			points[i] = strconv.FormatFloat(x(i), 'f', 1, 64) + "," + strconv.FormatFloat(y(value(r)), 'f', 1, 64)
		}
		fmt.Fprintf(&sb, `<polyline fill="none" stroke="%s" stroke-width="2" points="%s"><title>%s</title></polyline>`,
			color, strings.Join(points, " "), label)
		for i, r := range rows {
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s"><title>%d %s: %s t-CO2e</title></circle>`,
				x(i), y(value(r)), color, r.Year, label, scenario.FormatEmissions(value(r)))
		}
	}
	line(bauColor, func(r scenario.DatedRow) float64 { return r.BAU }, "BAU")
	line(plannedColor, func(r scenario.DatedRow) float64 { return r.Planned }, "Planned")

	fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="12" fill="%s">&#9632; BAU</text>`,
		svgPadLeft, svgHeight-6, bauColor)
	fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="12" fill="%s">&#9632; Planned</text>`,
		svgPadLeft+70, svgHeight-6, plannedColor)
	sb.WriteString(`</svg>`)

	//nolint:gosec // Built from numbers and escaped labels only.
	return template.HTML(sb.String())
}
