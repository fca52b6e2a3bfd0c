package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucasinocencio1/surf-forecast/internal/models"
)

// renderTidePane renders the tide information pane
func (m Model) renderTidePane(width int) string {
	var content strings.Builder

	content.WriteString(titleStyle.Render("Tides"))
	content.WriteString("\n\n")

	if m.tideSource == nil || !m.tideSource.Enabled() {
		content.WriteString(mutedStyle.Render("Tides disabled - set a WorldTides API key to enable"))
		return m.paneFor(PaneTides).Width(width).Render(content.String())
	}

	if m.tides == nil || len(m.tides.Points) == 0 {
		content.WriteString(mutedStyle.Render("No tide data available"))
		return m.paneFor(PaneTides).Width(width).Render(content.String())
	}

	events := m.tides.Extremes()
	if len(events) == 0 {
		content.WriteString(mutedStyle.Render("No tide extremes in range"))
		return m.paneFor(PaneTides).Width(width).Render(content.String())
	}

	// Group events by day
	today := time.Now()
	for day := 0; day < 3; day++ {
		date := today.AddDate(0, 0, day)
		dayEvents := eventsForDay(events, date)
		if len(dayEvents) == 0 {
			continue
		}

		var dayLabel string
		switch day {
		case 0:
			dayLabel = "Today"
		case 1:
			dayLabel = "Tomorrow"
		default:
			dayLabel = date.Format("Monday")
		}

		content.WriteString(labelStyle.Render(dayLabel))
		content.WriteString(fmt.Sprintf(" %s\n", mutedStyle.Render(date.Format("Jan 2"))))

		for _, event := range dayEvents {
			typeStr := "Low"
			if event.Type == models.TideHigh {
				typeStr = "High"
			}

			content.WriteString(fmt.Sprintf("  %s  %-4s %5.2f m\n",
				valueStyle.Render(event.Time.Format("15:04")),
				typeStr,
				event.HeightM))
		}
		content.WriteString("\n")
	}

	return m.paneFor(PaneTides).Width(width).Render(content.String())
}

// eventsForDay filters tide events to one calendar day
func eventsForDay(events []models.TideEvent, date time.Time) []models.TideEvent {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)

	var out []models.TideEvent
	for _, e := range events {
		if !e.Time.Before(start) && e.Time.Before(end) {
			out = append(out, e)
		}
	}
	return out
}
