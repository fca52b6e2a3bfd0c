package ui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
)

// renderChartPane renders the score sparkline across the forecast hours
func (m Model) renderChartPane(width int) string {
	var content strings.Builder

	content.WriteString(titleStyle.Render("Score"))
	content.WriteString("\n\n")

	samples := m.forecast.Samples
	if len(samples) == 0 {
		content.WriteString(mutedStyle.Render("No scored hours to chart"))
		return m.paneFor(PaneChart).Width(width).Render(content.String())
	}

	chartWidth := width - 6
	if chartWidth < 10 {
		chartWidth = 10
	}
	if chartWidth > len(samples) {
		chartWidth = len(samples)
	}

	scores := make([]float64, len(samples))
	for i, s := range samples {
		scores[i] = s.Score
	}

	// The sparkline buffer keeps the last pushed values, so thin the
	// series to the chart width to keep the earliest hours visible.
	step := 1
	if len(scores) > chartWidth {
		step = (len(scores) + chartWidth - 1) / chartWidth
	}
	plotted := make([]float64, 0, chartWidth)
	for i := 0; i < len(scores); i += step {
		plotted = append(plotted, scores[i])
	}

	sl := sparkline.New(chartWidth, 6,
		sparkline.WithMaxValue(10),
		sparkline.WithNoAutoMaxValue(),
		sparkline.WithStyle(chartStyle))
	sl.PushAll(plotted)
	sl.Draw()

	content.WriteString(sl.View())
	content.WriteString("\n")
	content.WriteString(mutedStyle.Render(fmt.Sprintf("%s → %s, 0-10 scale",
		samples[0].Time.Format("Mon 15:04"),
		samples[len(samples)-1].Time.Format("Mon 15:04"))))

	if len(m.forecast.GoodWindows) > 0 {
		content.WriteString("\n\n")
		content.WriteString(labelStyle.Render("Good windows"))
		content.WriteString("\n")
		for _, w := range m.forecast.GoodWindows {
			content.WriteString(scoreGoodStyle.Render("  ● "))
			content.WriteString(fmt.Sprintf("%s → %s\n",
				w.Start.Format("Mon 15:04"), w.End.Format("Mon 15:04")))
		}
	}

	return m.paneFor(PaneChart).Width(width).Render(content.String())
}
