// Package scoring turns merged swell and wind samples into a 0-10 surf
// score per hourly slot, plus the selections built on top of it: best
// window, contiguous good runs, and condition notes.
package scoring

import (
	"fmt"
	"math"

	"github.com/lucasinocencio1/surf-forecast/internal/models"
)

// Engine scores forecast samples against a spot's geometry. It holds no
// mutable state: the same sample, spot and config always produce the
// same score.
type Engine struct {
	cfg Config
}

// NewEngine validates the config and returns a ready engine.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the tuning the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Score rates a single sample for a spot. ok is false when the sample is
// missing any of the fields scoring needs; such samples are skipped by
// callers, never scored as zero.
func (e *Engine) Score(sample models.ForecastSample, spot *models.Spot) (models.ScoredSample, bool) {
	if !sample.Complete() {
		return models.ScoredSample{}, false
	}

	c := e.cfg.Calibration
	h := *sample.SwellHeightM
	p := *sample.SwellPeriodS
	swellDir := *sample.SwellDirectionDeg
	windSpeed := *sample.WindSpeedMS
	windDir := *sample.WindDirectionDeg

	height := clamp01((h - c.MinGoodHeightM) / (c.MaxGoodHeightM - c.MinGoodHeightM))
	period := clamp01((p - c.MinGoodPeriodS) / (c.MaxPeriodRefS - c.MinGoodPeriodS))
	calm := clamp01(1 - windSpeed/c.MaxCalmWindMS)

	alignment := clamp01(1 - e.swellDistance(spot, swellDir)/180)
	offshore := clamp01(1 - e.windDistance(spot, windDir)/math.Max(c.OffshoreToleranceDeg, 1))

	// Onshore direction or strong wind each collapse the wind block on
	// their own; swell alignment and offshore share the direction block.
	windBlock := offshore * calm
	dirBlock := (alignment + offshore) / 2

	w := e.cfg.Weights
	raw := (w.Height*height + w.Period*period + w.Wind*windBlock + w.Direction*dirBlock) / w.Sum()

	return models.ScoredSample{
		ForecastSample: sample,
		Score:          round2(10 * clamp01(raw)),
		Breakdown: models.ScoreBreakdown{
			Height:    height,
			Period:    period,
			Direction: dirBlock,
			Wind:      windBlock,
			Alignment: alignment,
			Offshore:  offshore,
			Calm:      calm,
		},
	}, true
}

// ScoreSeries scores every complete sample in order and reports how many
// incomplete samples were skipped.
func (e *Engine) ScoreSeries(samples []models.ForecastSample, spot *models.Spot) ([]models.ScoredSample, int) {
	scored := make([]models.ScoredSample, 0, len(samples))
	skipped := 0
	for _, sample := range samples {
		s, ok := e.Score(sample, spot)
		if !ok {
			skipped++
			continue
		}
		scored = append(scored, s)
	}
	return scored, skipped
}

// swellDistance measures how far the swell origin sits from the spot's
// ideal arc, falling back to the facing azimuth when no arc is set.
func (e *Engine) swellDistance(spot *models.Spot, deg float64) float64 {
	if spot.SwellWindow != nil {
		return arcDistance(deg, *spot.SwellWindow)
	}
	return AngularDistance(deg, spot.FacingDeg)
}

// windDistance measures how far the wind origin sits from the spot's
// ideal arc, falling back to straight offshore when no arc is set.
func (e *Engine) windDistance(spot *models.Spot, deg float64) float64 {
	if spot.WindWindow != nil {
		return arcDistance(deg, *spot.WindWindow)
	}
	return AngularDistance(deg, spot.OffshoreDeg())
}
