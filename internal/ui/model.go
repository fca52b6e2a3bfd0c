package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lucasinocencio1/surf-forecast/internal/forecast"
	"github.com/lucasinocencio1/surf-forecast/internal/models"
	"github.com/lucasinocencio1/surf-forecast/internal/spots"
)

// TideSource supplies predicted sea levels for the tide pane. Satisfied
// by tides.Client; a nil or disabled source hides tide content.
type TideSource interface {
	Enabled() bool
	GetHeights(ctx context.Context, lat, lon float64, start time.Time, length time.Duration) (*models.TideSeries, error)
}

// AppState represents the current state of the application
type AppState int

const (
	StateSpotList AppState = iota // Pick a spot from the stored list
	StateAddSpot                  // Add-spot form
	StateLoading                  // Fetching forecast/tide data
	StateForecast                 // Display the scored forecast
	StateError                    // Error state
)

// ActivePane represents which pane is currently focused
type ActivePane int

const (
	PaneChart ActivePane = iota
	PaneHours
	PaneTides

	paneCount = 3
)

// Model represents the application's state
type Model struct {
	state      AppState
	activePane ActivePane
	width      int
	height     int
	err        error

	// Services
	spotSvc     *spots.Service
	forecastSvc *forecast.Service
	tideSource  TideSource

	// Spot selection
	spotRows     []models.Spot
	spotList     list.Model
	selectedSpot *models.Spot
	openSpot     string // spot to open directly on startup, by name

	// Data
	forecast *models.SpotForecast
	tides    *models.TideSeries

	// Loading states
	loadingForecast bool
	loadingTides    bool
	spinner         spinner.Model

	// Add-spot form
	form addSpotForm
}

// NewModel creates a new application model. openSpot, when non-empty,
// names a stored spot to open directly instead of starting on the list.
func NewModel(spotSvc *spots.Service, forecastSvc *forecast.Service, tideSource TideSource, openSpot string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return Model{
		state:       StateSpotList,
		activePane:  PaneChart,
		spotSvc:     spotSvc,
		forecastSvc: forecastSvc,
		tideSource:  tideSource,
		openSpot:    openSpot,
		spinner:     s,
	}
}

// Init loads the stored spots
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadSpots(m.spotSvc))
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle window size
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		if len(m.spotRows) > 0 {
			m.spotList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil
	}

	// Handle custom messages
	switch msg := msg.(type) {
	case errMsg:
		m.err = msg.err
		m.state = StateError
		return m, nil

	case spotsLoadedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("loading spots: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.spotRows = msg.spots
		m.spotList = createSpotList(msg.spots, m.width-4, m.height-8)

		// Jump straight into a named spot when one was requested.
		if m.openSpot != "" {
			name := m.openSpot
			m.openSpot = ""
			for i := range msg.spots {
				if strings.EqualFold(msg.spots[i].Name, name) {
					return m.selectSpot(msg.spots[i])
				}
			}
			m.err = fmt.Errorf("no stored spot named %q", name)
			m.state = StateError
			return m, nil
		}

		m.state = StateSpotList
		return m, nil

	case forecastFetchedMsg:
		m.loadingForecast = false
		if msg.err != nil {
			m.err = fmt.Errorf("fetching forecast: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.forecast = msg.forecast
		if !m.loadingTides {
			m.state = StateForecast
		}
		return m, nil

	case tidesFetchedMsg:
		m.loadingTides = false
		// A failed tide fetch leaves the pane empty, never blocks the
		// forecast.
		if msg.err == nil {
			m.tides = msg.tides
		}
		if !m.loadingForecast && m.state == StateLoading {
			m.state = StateForecast
		}
		return m, nil

	case spotSavedMsg:
		if msg.err != nil {
			m.form.err = msg.err
			m.state = StateAddSpot
			return m, nil
		}
		// Show the fresh spot's forecast right away.
		return m.selectSpot(*msg.spot)
	}

	// Handle keyboard input
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// "q" quits everywhere except the form, where it has to type.
		if keyMsg.String() == "q" && m.state != StateAddSpot {
			return m, tea.Quit
		}

		switch m.state {
		case StateSpotList:
			return m.handleSpotList(keyMsg)

		case StateAddSpot:
			return m.handleAddSpot(keyMsg)

		case StateForecast:
			return m.handleForecast(keyMsg)

		case StateError:
			// Any key returns to the spot list
			m.err = nil
			m.state = StateSpotList
			return m, loadSpots(m.spotSvc)
		}
	}

	// Update appropriate component based on state
	switch m.state {
	case StateLoading:
		m.spinner, cmd = m.spinner.Update(msg)
	case StateSpotList:
		m.spotList, cmd = m.spotList.Update(msg)
	case StateAddSpot:
		m.form, cmd = m.form.update(msg)
	}

	return m, cmd
}

// selectSpot kicks off the forecast and tide fetches for a spot
func (m Model) selectSpot(spot models.Spot) (tea.Model, tea.Cmd) {
	m.selectedSpot = &spot
	m.state = StateLoading
	m.activePane = PaneChart
	m.forecast = nil
	m.tides = nil
	m.loadingForecast = true
	m.loadingTides = false

	cmds := []tea.Cmd{m.spinner.Tick, fetchForecast(m.forecastSvc, spot)}

	if m.tideSource != nil && m.tideSource.Enabled() {
		m.loadingTides = true
		cmds = append(cmds, fetchTides(m.tideSource, spot, m.forecastSvc.Options().ForecastDays))
	}

	return m, tea.Batch(cmds...)
}

// handleSpotList handles keyboard input while picking a spot
func (m Model) handleSpotList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case msg.Type == tea.KeyEnter:
		if item, ok := m.spotList.SelectedItem().(spotItem); ok {
			return m.selectSpot(item.spot)
		}
		return m, nil

	case msg.String() == "a":
		m.form = newAddSpotForm()
		m.state = StateAddSpot
		return m, textinput.Blink

	case msg.String() == "r":
		return m, loadSpots(m.spotSvc)
	}

	m.spotList, cmd = m.spotList.Update(msg)
	return m, cmd
}

// handleAddSpot handles keyboard input in the add-spot form
func (m Model) handleAddSpot(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = StateSpotList
		return m, nil

	case tea.KeyTab, tea.KeyDown:
		m.form.next()
		return m, textinput.Blink

	case tea.KeyShiftTab, tea.KeyUp:
		m.form.prev()
		return m, textinput.Blink

	case tea.KeyEnter:
		// Enter advances until the last field, then submits.
		if m.form.focused < fieldFacing {
			m.form.next()
			return m, textinput.Blink
		}

		name, location, facingDeg, err := m.form.values()
		if err != nil {
			m.form.err = err
			return m, nil
		}
		m.form.err = nil
		m.selectedSpot = nil
		m.state = StateLoading
		return m, tea.Batch(m.spinner.Tick, saveSpot(m.spotSvc, name, location, facingDeg))
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// handleForecast handles keyboard input on the forecast view
func (m Model) handleForecast(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "s", msg.Type == tea.KeyEsc:
		m.state = StateSpotList
		m.selectedSpot = nil
		m.forecast = nil
		m.tides = nil
		return m, loadSpots(m.spotSvc)

	case msg.String() == "r":
		if m.selectedSpot != nil {
			return m.selectSpot(*m.selectedSpot)
		}
		return m, nil

	case msg.Type == tea.KeyTab:
		m.activePane = (m.activePane + 1) % paneCount
		return m, nil
	}

	return m, nil
}

// paneFor returns the pane style, thick-bordered when the pane is active
func (m Model) paneFor(pane ActivePane) lipgloss.Style {
	if m.activePane == pane {
		return activePaneStyle
	}
	return paneStyle
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateSpotList:
		return m.viewSpotList()
	case StateAddSpot:
		return m.viewAddSpot()
	case StateLoading:
		return m.viewLoading()
	case StateForecast:
		return m.viewForecast()
	case StateError:
		return m.viewError()
	}

	return ""
}

// viewSpotList renders the spot selection list
func (m Model) viewSpotList() string {
	title := titleStyle.Render("🌊 Surf Forecast")
	subtitle := mutedStyle.Render(fmt.Sprintf("%d spots stored", len(m.spotRows)))

	help := helpStyle.Render("↑/↓: Navigate • Enter: Forecast • A: Add spot • R: Reload • Q: Quit")

	var sections []string
	sections = append(sections, title)
	sections = append(sections, subtitle)
	sections = append(sections, "")
	sections = append(sections, m.spotList.View())
	sections = append(sections, "")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewAddSpot renders the add-spot form
func (m Model) viewAddSpot() string {
	title := titleStyle.Render("🌊 Add Surf Spot")

	formBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(1, 2).
		Width(52).
		Render(m.form.view())

	help := helpStyle.Render("Tab: Next field • Enter: Save • Esc: Cancel • Ctrl+C: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", formBox, "", help)
}

// viewLoading renders the loading view
func (m Model) viewLoading() string {
	if m.selectedSpot == nil {
		return fmt.Sprintf("%s Saving spot...", m.spinner.View())
	}

	s := fmt.Sprintf("%s Loading %s...\n\n", m.spinner.View(), m.selectedSpot.Name)

	if m.loadingForecast {
		s += "⏳ Fetching marine and wind forecast\n"
	} else {
		s += "✓ Forecast scored\n"
	}

	if m.tideSource != nil && m.tideSource.Enabled() {
		if m.loadingTides {
			s += "⏳ Fetching tide predictions\n"
		} else {
			s += "✓ Tides loaded\n"
		}
	}

	return s
}

// viewForecast renders the scored forecast display
func (m Model) viewForecast() string {
	if m.selectedSpot == nil || m.forecast == nil {
		return "No forecast loaded"
	}
	spot := m.selectedSpot

	var sections []string

	header := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Padding(0, 1).
		Render(fmt.Sprintf("🌊 %s", spot.Name))
	sections = append(sections, header)

	info := mutedStyle.Render(fmt.Sprintf("📍 %.3f, %.3f • faces %s (%.0f°) • offshore wind from %s",
		spot.Latitude, spot.Longitude,
		models.DegreesToCompass(spot.FacingDeg), spot.FacingDeg,
		models.DegreesToCompass(spot.OffshoreDeg())))
	sections = append(sections, info, "")

	sections = append(sections, m.renderBestBanner())

	paneWidth := m.width - 4
	if paneWidth < 40 {
		paneWidth = 40
	}

	sections = append(sections, m.renderChartPane(paneWidth))
	sections = append(sections, m.renderHoursPane(paneWidth))
	sections = append(sections, m.renderTidePane(paneWidth))

	help := helpStyle.Render("R: Refresh • Tab: Switch panes • S/Esc: Spots • Q: Quit")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewError renders the error view
func (m Model) viewError() string {
	title := errorTextStyle.Render("✗ Error")

	var errorMsg string
	if m.err != nil {
		errorMsg = m.err.Error()
	} else {
		errorMsg = "An unknown error occurred"
	}

	help := helpStyle.Render("Press any key to return to the spot list • Q: Quit")

	var sections []string
	sections = append(sections, title)
	sections = append(sections, "")
	sections = append(sections, errorMsg)
	sections = append(sections, "")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
