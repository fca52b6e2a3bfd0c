package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/lucasinocencio1/surf-forecast/internal/config"
	"github.com/lucasinocencio1/surf-forecast/internal/database"
	"github.com/lucasinocencio1/surf-forecast/internal/forecast"
	"github.com/lucasinocencio1/surf-forecast/internal/geocoding"
	"github.com/lucasinocencio1/surf-forecast/internal/observability"
	"github.com/lucasinocencio1/surf-forecast/internal/openmeteo"
	"github.com/lucasinocencio1/surf-forecast/internal/scoring"
	"github.com/lucasinocencio1/surf-forecast/internal/spots"
	"github.com/lucasinocencio1/surf-forecast/internal/tides"
	"github.com/lucasinocencio1/surf-forecast/internal/ui"
)

func main() {
	spotName := flag.String("spot", "", "Name of a stored spot to open directly (e.g., Carcavelos)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to bubbletea, so service logs stay silent
	// unless SURF_LOG_FILE points them somewhere.
	logger := zerolog.Nop()
	if path := os.Getenv("SURF_LOG_FILE"); path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		logger = observability.NewLoggerTo(file, cfg.Log.Level, "json")
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		fmt.Printf("Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		fmt.Printf("Error preparing database: %v\n", err)
		os.Exit(1)
	}

	repo := spots.NewRepository(db)
	if err := repo.SeedDefaults(); err != nil {
		fmt.Printf("Error seeding default spots: %v\n", err)
		os.Exit(1)
	}

	engine, err := scoring.NewEngine(cfg.Scoring)
	if err != nil {
		fmt.Printf("Error in scoring config: %v\n", err)
		os.Exit(1)
	}

	spotSvc := spots.NewService(repo, geocoding.NewGeocoder())
	history := spots.NewHistoryRepository(db)

	forecastSvc, err := forecast.NewService(
		openmeteo.NewMarineClient(), openmeteo.NewWindClient(),
		engine, history, cfg.Fetch, logger,
	)
	if err != nil {
		fmt.Printf("Error in fetch config: %v\n", err)
		os.Exit(1)
	}

	tideClient := tides.NewClient(cfg.Tides.APIKey)

	p := tea.NewProgram(ui.NewModel(spotSvc, forecastSvc, tideClient, *spotName), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
