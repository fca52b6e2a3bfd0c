package forecast

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/lucasinocencio1/surf-forecast/internal/models"
	"github.com/lucasinocencio1/surf-forecast/internal/openmeteo"
	"github.com/lucasinocencio1/surf-forecast/internal/scoring"
)

// Recorder persists a scored series after a fetch. Satisfied by
// spots.HistoryRepository; nil disables history.
type Recorder interface {
	Record(spotID int64, scored []models.ScoredSample, fetchedAt time.Time) error
}

// Options carry the fetch knobs shared by every spot.
type Options struct {
	Timezone      string          `yaml:"timezone"`
	ForecastDays  int             `yaml:"forecast_days"`
	Model         openmeteo.Model `yaml:"model"`
	GoodThreshold float64         `yaml:"good_threshold"`
}

// DefaultOptions returns the stock fetch configuration.
func DefaultOptions() Options {
	return Options{
		Timezone:      "Europe/Lisbon",
		ForecastDays:  3,
		Model:         openmeteo.ModelBestMatch,
		GoodThreshold: scoring.DefaultGoodThreshold,
	}
}

// Validate rejects options the APIs would refuse.
func (o Options) Validate() error {
	if o.ForecastDays < 0 || o.ForecastDays > 16 {
		return fmt.Errorf("forecast_days %d outside [0,16]", o.ForecastDays)
	}
	if !o.Model.Valid() {
		return fmt.Errorf("unknown wind model %q", o.Model)
	}
	if o.GoodThreshold < 0 || o.GoodThreshold > 10 {
		return fmt.Errorf("good_threshold %.1f outside [0,10]", o.GoodThreshold)
	}
	return nil
}

// Service fetches, aligns and scores forecasts for spots.
type Service struct {
	marine  openmeteo.MarineSource
	wind    openmeteo.WindSource
	engine  *scoring.Engine
	history Recorder
	opts    Options
	logger  zerolog.Logger
	clock   clockwork.Clock
}

// NewService wires a forecast service. history may be nil when nothing
// should be persisted.
func NewService(marine openmeteo.MarineSource, wind openmeteo.WindSource, engine *scoring.Engine, history Recorder, opts Options, logger zerolog.Logger) (*Service, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("forecast options: %w", err)
	}
	return &Service{
		marine:  marine,
		wind:    wind,
		engine:  engine,
		history: history,
		opts:    opts,
		logger:  logger,
		clock:   clockwork.NewRealClock(),
	}, nil
}

// SetClock replaces the service clock, for tests.
func (s *Service) SetClock(clock clockwork.Clock) {
	s.clock = clock
}

// Options returns the fetch configuration the service runs with.
func (s *Service) Options() Options {
	return s.opts
}

// Fetch retrieves, merges and scores the forecast for one spot. Samples
// missing swell or wind fields are skipped and counted, never scored.
func (s *Service) Fetch(ctx context.Context, spot *models.Spot) (*models.SpotForecast, error) {
	reqOpts := openmeteo.RequestOptions{
		Timezone:     s.opts.Timezone,
		ForecastDays: s.opts.ForecastDays,
		Model:        s.opts.Model,
	}

	marine, err := s.marine.GetSwell(ctx, spot.Latitude, spot.Longitude, reqOpts)
	if err != nil {
		return nil, fmt.Errorf("fetching swell for %s: %w", spot.Name, err)
	}

	wind, err := s.wind.GetWind(ctx, spot.Latitude, spot.Longitude, reqOpts)
	if err != nil {
		return nil, fmt.Errorf("fetching wind for %s: %w", spot.Name, err)
	}

	samples := MergeHourly(marine, wind)
	scored, skipped := s.engine.ScoreSeries(samples, spot)

	if skipped > 0 {
		s.logger.Debug().
			Str("spot", spot.Name).
			Int("skipped", skipped).
			Msg("samples missing swell or wind fields were skipped")
	}

	result := &models.SpotForecast{
		Spot:           *spot,
		Samples:        scored,
		SkippedSamples: skipped,
		GoodWindows:    scoring.ContiguousWindows(scored, s.opts.GoodThreshold),
		FetchedAt:      s.clock.Now(),
	}

	if s.history != nil && spot.ID != 0 {
		if err := s.history.Record(spot.ID, scored, result.FetchedAt); err != nil {
			// History is an archive, not the product; log and move on.
			s.logger.Warn().Err(err).Str("spot", spot.Name).Msg("recording forecast history failed")
		}
	}

	return result, nil
}

// Best returns the best-scoring slot of a fetched forecast, earliest
// first on ties. ok is false when no sample could be scored.
func Best(f *models.SpotForecast) (models.ScoredSample, bool) {
	return scoring.Best(f.Samples)
}

// Rank fetches every spot and orders them by their best score, highest
// first. A spot whose fetch fails or yields no scorable samples is kept
// in the table flagged NoData, after all scored spots.
func (s *Service) Rank(ctx context.Context, spotList []models.Spot) []models.SpotRanking {
	rankings := make([]models.SpotRanking, 0, len(spotList))

	for i := range spotList {
		spot := spotList[i]

		f, err := s.Fetch(ctx, &spot)
		if err != nil {
			s.logger.Warn().Err(err).Str("spot", spot.Name).Msg("fetch failed, spot excluded from scoring")
			rankings = append(rankings, models.SpotRanking{Spot: spot, NoData: true})
			continue
		}

		rankings = append(rankings, RankingFor(spot, f))
	}

	SortRankings(rankings)
	return rankings
}

// RankingFor summarizes one fetched forecast into a ranking row. A nil
// forecast, or one with no scorable samples, flags the row NoData.
func RankingFor(spot models.Spot, f *models.SpotForecast) models.SpotRanking {
	if f == nil {
		return models.SpotRanking{Spot: spot, NoData: true}
	}

	best, ok := scoring.Best(f.Samples)
	if !ok {
		return models.SpotRanking{
			Spot:           spot,
			SkippedSamples: f.SkippedSamples,
			NoData:         true,
		}
	}

	return models.SpotRanking{
		Spot:           spot,
		BestTime:       best.Time,
		BestScore:      best.Score,
		SwellHeightM:   *best.SwellHeightM,
		SwellPeriodS:   *best.SwellPeriodS,
		WindSpeedMS:    *best.WindSpeedMS,
		SkippedSamples: f.SkippedSamples,
	}
}

// SortRankings orders rows best score first, keeping no-data rows at the
// bottom. The sort is stable so equal scores keep input order.
func SortRankings(rankings []models.SpotRanking) {
	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].NoData != rankings[j].NoData {
			return !rankings[i].NoData
		}
		return rankings[i].BestScore > rankings[j].BestScore
	})
}
