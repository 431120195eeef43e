package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/carbonplan/internal/scenario"
)

const (
	yearColumnWidth    = 6
	valueColumnWidth   = 18
	percentColumnWidth = 13
	chartWidth         = 48
	chartHeight        = 10
)

// RenderScenarioTable renders the dated rows as a styled table with values
// at the report's precision.
func RenderScenarioTable(report scenario.Report) string {
	headerStyle := lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	yearStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	bauStyle := lipgloss.NewStyle().Foreground(ColorBAU)
	plannedStyle := lipgloss.NewStyle().Foreground(ColorPlanned)
	valueStyle := lipgloss.NewStyle().Foreground(ColorValue)

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%-*s%*s%*s%*s",
		yearColumnWidth, "Year",
		valueColumnWidth, "BAU (t-CO2e)",
		valueColumnWidth, "Planned (t-CO2e)",
		percentColumnWidth, "Reduction %")))
	sb.WriteByte('\n')
	sb.WriteString(lipgloss.NewStyle().Foreground(ColorBorder).Render(
		strings.Repeat("─", yearColumnWidth+2*valueColumnWidth+percentColumnWidth)))
	sb.WriteByte('\n')

	for _, row := range report.Rows {
		sb.WriteString(yearStyle.Render(fmt.Sprintf("%-*d", yearColumnWidth, row.Year)))
		sb.WriteString(bauStyle.Render(fmt.Sprintf("%*s", valueColumnWidth, report.Emissions(row.BAU))))
		sb.WriteString(plannedStyle.Render(fmt.Sprintf("%*s", valueColumnWidth, report.Emissions(row.Planned))))
		sb.WriteString(valueStyle.Render(fmt.Sprintf("%*s", percentColumnWidth,
			report.Percent(row.ReductionPercent))))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderScenarioSummary renders cumulative totals and the avoided-emission
// equivalency line.
func RenderScenarioSummary(report scenario.Report) string {
	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	valueStyle := lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	okStyle := lipgloss.NewStyle().Foreground(ColorOK).Bold(true)

	s := report.Summary
	lines := []string{
		labelStyle.Render("Cumulative BAU:     ") + valueStyle.Render(report.Emissions(s.CumulativeBAU)+" t-CO2e"),
		labelStyle.Render("Cumulative planned: ") + valueStyle.Render(report.Emissions(s.CumulativePlanned)+" t-CO2e"),
		labelStyle.Render("Avoided:            ") + okStyle.Render(report.Emissions(s.CumulativeAvoided)+" t-CO2e"),
	}
	if !report.Equivalency.IsEmpty && report.Equivalency.DisplayText != "" {
		muted := lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
		lines = append(lines, muted.Render(report.Equivalency.DisplayText))
	}
	return strings.Join(lines, "\n")
}

// RenderScenarioChart renders the ASCII chart with a coloured legend.
func RenderScenarioChart(report scenario.Report) string {
	chart := RenderChart(report.Rows, 0, chartWidth, chartHeight)
	if chart == "" {
		return ""
	}
	legend := lipgloss.NewStyle().Foreground(ColorMuted).Render(ChartLegend)
	return chart + legend
}

// RenderLoadingIndicator renders the static text shown while a roadmap is
// being generated without a spinner.
func RenderLoadingIndicator() string {
	return lipgloss.NewStyle().Foreground(ColorMuted).Italic(true).Render("Generating roadmap...")
}
