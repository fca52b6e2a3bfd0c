package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lucasinocencio1/surf-forecast/internal/forecast"
	"github.com/lucasinocencio1/surf-forecast/internal/models"
	"github.com/lucasinocencio1/surf-forecast/internal/scoring"
)

// maxHourRows caps the hourly table so a three-day fetch does not push
// everything else off screen.
const maxHourRows = 24

// renderBestBanner summarizes the best upcoming window
func (m Model) renderBestBanner() string {
	best, ok := forecast.Best(m.forecast)
	if !ok {
		return sectionBoxStyle.Render(mutedStyle.Render("No scorable hours in this forecast"))
	}

	headline := fmt.Sprintf("Best window  %s  %s",
		valueStyle.Bold(true).Render(best.Time.Format("Mon 15:04")),
		scoreStyle(best.Score).Render(fmt.Sprintf("%.2f/10 %s", best.Score, scoreLabel(best.Score))))

	lines := []string{headline, mutedStyle.Render(scoring.Notes(best.ForecastSample))}
	if m.forecast.SkippedSamples > 0 {
		lines = append(lines, mutedStyle.Render(
			fmt.Sprintf("%d hours skipped for missing data", m.forecast.SkippedSamples)))
	}

	return sectionBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderHoursPane renders the hourly conditions table
func (m Model) renderHoursPane(width int) string {
	var content strings.Builder

	content.WriteString(titleStyle.Render("Hourly Conditions"))
	content.WriteString("\n\n")

	if len(m.forecast.Samples) == 0 {
		content.WriteString(mutedStyle.Render("No hourly data available"))
		return m.paneFor(PaneHours).Width(width).Render(content.String())
	}

	content.WriteString(labelStyle.Render(
		fmt.Sprintf("  %-7s %-17s %-22s %-8s %s", "Time", "Swell", "Wind", "Temp", "Score")))
	content.WriteString("\n")

	samples := m.forecast.Samples
	truncated := 0
	if len(samples) > maxHourRows {
		truncated = len(samples) - maxHourRows
		samples = samples[:maxHourRows]
	}

	lastDay := -1
	for _, s := range samples {
		if day := s.Time.YearDay(); day != lastDay {
			if lastDay != -1 {
				content.WriteString("\n")
			}
			content.WriteString(mutedStyle.Render(s.Time.Format("Monday, Jan 2")))
			content.WriteString("\n")
			lastDay = day
		}

		// Rows inside a good window get a gutter mark.
		marker := " "
		if m.inGoodWindow(s.Time) {
			marker = "●"
		}

		// Pad before styling so ANSI codes do not skew the columns.
		content.WriteString(fmt.Sprintf("%s %-7s %-17s %-22s %-8s %s\n",
			scoreStyle(s.Score).Render(marker),
			s.Time.Format("15:04"),
			formatSwell(s.ForecastSample),
			formatWind(s.ForecastSample),
			formatTemps(s.ForecastSample),
			scoreStyle(s.Score).Render(fmt.Sprintf("%5.2f", s.Score))))
	}

	if truncated > 0 {
		content.WriteString(mutedStyle.Render(fmt.Sprintf("… %d more hours", truncated)))
		content.WriteString("\n")
	}

	return m.paneFor(PaneHours).Width(width).Render(content.String())
}

// inGoodWindow reports whether a timestamp falls inside a good window
func (m Model) inGoodWindow(t time.Time) bool {
	for _, w := range m.forecast.GoodWindows {
		if !t.Before(w.Start) && !t.After(w.End) {
			return true
		}
	}
	return false
}

// formatSwell formats swell height, period and direction for a table row
func formatSwell(s models.ForecastSample) string {
	if s.SwellHeightM == nil || s.SwellPeriodS == nil {
		return "-"
	}
	str := fmt.Sprintf("%.1fm %.0fs", *s.SwellHeightM, *s.SwellPeriodS)
	if s.SwellDirectionDeg != nil {
		str += fmt.Sprintf(" %s %s", models.DegreesToCompass(*s.SwellDirectionDeg),
			models.DirectionArrow(*s.SwellDirectionDeg))
	}
	return str
}

// formatWind formats wind speed in m/s with knots and the origin bearing
func formatWind(s models.ForecastSample) string {
	if s.WindSpeedMS == nil {
		return "-"
	}
	str := fmt.Sprintf("%.1f m/s (%.0f kn)", *s.WindSpeedMS, models.MSToKnots(*s.WindSpeedMS))
	if s.WindDirectionDeg != nil {
		str += fmt.Sprintf(" %s %s", models.DegreesToCompass(*s.WindDirectionDeg),
			models.DirectionArrow(*s.WindDirectionDeg))
	}
	return str
}

// formatTemps formats air/sea temperature when present
func formatTemps(s models.ForecastSample) string {
	switch {
	case s.AirTempC != nil && s.SeaTempC != nil:
		return fmt.Sprintf("%.0f/%.0f°C", *s.AirTempC, *s.SeaTempC)
	case s.AirTempC != nil:
		return fmt.Sprintf("%.0f°C", *s.AirTempC)
	case s.SeaTempC != nil:
		return fmt.Sprintf("sea %.0f°C", *s.SeaTempC)
	default:
		return "-"
	}
}
