package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	colorPrimary = lipgloss.Color("#00BFFF") // Deep sky blue
	colorWave    = lipgloss.Color("#87CEEB") // Sky blue
	colorDanger  = lipgloss.Color("#FF6B6B") // Red for errors
	colorWarning = lipgloss.Color("#FFD93D") // Yellow
	colorSuccess = lipgloss.Color("#6BCF7F") // Green
	colorMuted   = lipgloss.Color("#6C757D") // Gray
	colorBorder  = lipgloss.Color("#4A90E2") // Border blue

	// Title styles (no padding - paneStyle already has padding)
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// Pane styles
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2).
			MarginBottom(1)

	activePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2).
			MarginBottom(1)

	// Content styles
	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	// Score band styles, one per band of the 0-10 scale
	scoreEpicStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	scoreGoodStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	scoreFairStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	scorePoorStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Chart style
	chartStyle = lipgloss.NewStyle().
			Foreground(colorWave)

	// Error text style
	errorTextStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	// Help text style
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0)

	// Utility styles
	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Section box style (best-window banner)
	sectionBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2).
			MarginBottom(1)
)

// scoreStyle returns the style for a 0-10 surf score. The bands match
// the CSV and REST semantics: below 5 is not worth paddling out for,
// 8.5 and up is a drop-everything session.
func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 8.5:
		return scoreEpicStyle
	case score >= 7:
		return scoreGoodStyle
	case score >= 5:
		return scoreFairStyle
	default:
		return scorePoorStyle
	}
}

// scoreLabel names the band a score falls in
func scoreLabel(score float64) string {
	switch {
	case score >= 8.5:
		return "epic"
	case score >= 7:
		return "good"
	case score >= 5:
		return "fair"
	default:
		return "poor"
	}
}
