package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lucasinocencio1/surf-forecast/internal/config"
	"github.com/lucasinocencio1/surf-forecast/internal/database"
	"github.com/lucasinocencio1/surf-forecast/internal/forecast"
	"github.com/lucasinocencio1/surf-forecast/internal/models"
	"github.com/lucasinocencio1/surf-forecast/internal/observability"
	"github.com/lucasinocencio1/surf-forecast/internal/openmeteo"
	"github.com/lucasinocencio1/surf-forecast/internal/scoring"
	"github.com/lucasinocencio1/surf-forecast/internal/spots"
)

const fetchTimeout = 2 * time.Minute

func main() {
	noCSV := flag.Bool("no-csv", false, "Skip writing per-spot history CSV files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config failed")
	}

	log.Logger = observability.NewLogger(cfg.Log.Level, "console")

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("opening database failed")
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatal().Err(err).Msg("preparing database failed")
	}

	repo := spots.NewRepository(db)
	if err := repo.SeedDefaults(); err != nil {
		log.Fatal().Err(err).Msg("seeding default spots failed")
	}

	engine, err := scoring.NewEngine(cfg.Scoring)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid scoring config")
	}

	history := spots.NewHistoryRepository(db)

	forecastSvc, err := forecast.NewService(
		openmeteo.NewMarineClient(), openmeteo.NewWindClient(),
		engine, history, cfg.Fetch, log.Logger,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid fetch config")
	}

	spotList, err := repo.List()
	if err != nil {
		log.Fatal().Err(err).Msg("listing spots failed")
	}
	if len(spotList) == 0 {
		fmt.Println("No spots stored. Add one with the dashboard or POST /api/spots.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	// One fetch per spot; a failing spot drops to the bottom of the
	// table instead of aborting the run.
	rankings := make([]models.SpotRanking, 0, len(spotList))
	for i := range spotList {
		spot := spotList[i]

		f, err := forecastSvc.Fetch(ctx, &spot)
		if err != nil {
			log.Warn().Err(err).Str("spot", spot.Name).Msg("fetch failed")
			rankings = append(rankings, models.SpotRanking{Spot: spot, NoData: true})
			continue
		}

		rankings = append(rankings, forecast.RankingFor(spot, f))

		if !*noCSV {
			path, err := forecast.ExportCSV(cfg.Export.Dir, f)
			if err != nil {
				log.Warn().Err(err).Str("spot", spot.Name).Msg("csv export failed")
			} else {
				log.Info().Str("spot", spot.Name).Str("path", path).Msg("history exported")
			}
		}
	}

	forecast.SortRankings(rankings)
	printRankings(rankings)
}

func printRankings(rankings []models.SpotRanking) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "Rank\tSpot\tBest Window\tScore\tSwell\tWind\tSkipped")
	fmt.Fprintln(w, "----\t----\t-----------\t-----\t-----\t----\t-------")

	for i, r := range rankings {
		if r.NoData {
			fmt.Fprintf(w, "%d\t%s\tno data\t-\t-\t-\t%d\n", i+1, r.Spot.Name, r.SkippedSamples)
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%.1fm %.0fs\t%.1f m/s\t%d\n",
			i+1, r.Spot.Name,
			r.BestTime.Format("Mon Jan 2 15:04"),
			r.BestScore,
			r.SwellHeightM, r.SwellPeriodS,
			r.WindSpeedMS,
			r.SkippedSamples)
	}

	w.Flush()
}
