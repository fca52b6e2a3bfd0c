package scoring

import "fmt"

// Weights control the relative influence of each score component.
// They do not need to sum to 1; the engine normalizes by the total.
type Weights struct {
	Height    float64 `json:"height" yaml:"height"`
	Period    float64 `json:"period" yaml:"period"`
	Wind      float64 `json:"wind" yaml:"wind"`
	Direction float64 `json:"direction" yaml:"direction"`
}

// DefaultWeights returns the tuning used for the Portuguese beach breaks
// the project started with.
func DefaultWeights() Weights {
	return Weights{
		Height:    0.35,
		Period:    0.35,
		Wind:      0.10,
		Direction: 0.20,
	}
}

// Sum returns the weight total the engine normalizes by.
func (w Weights) Sum() float64 {
	return w.Height + w.Period + w.Wind + w.Direction
}

// Validate rejects negative weights and an all-zero set.
func (w Weights) Validate() error {
	if w.Height < 0 || w.Period < 0 || w.Wind < 0 || w.Direction < 0 {
		return fmt.Errorf("weights must be >= 0, got height=%.2f period=%.2f wind=%.2f direction=%.2f",
			w.Height, w.Period, w.Wind, w.Direction)
	}
	if w.Sum() <= 0 {
		return fmt.Errorf("weight sum must be > 0")
	}
	return nil
}

// Calibration sets the physical windows each factor ramps across.
type Calibration struct {
	MinGoodHeightM       float64 `json:"min_good_height_m" yaml:"min_good_height_m"`
	MaxGoodHeightM       float64 `json:"max_good_height_m" yaml:"max_good_height_m"`
	MinGoodPeriodS       float64 `json:"min_good_period_s" yaml:"min_good_period_s"`
	MaxPeriodRefS        float64 `json:"max_period_ref_s" yaml:"max_period_ref_s"`
	MaxCalmWindMS        float64 `json:"max_calm_wind_ms" yaml:"max_calm_wind_ms"`
	OffshoreToleranceDeg float64 `json:"offshore_tolerance_deg" yaml:"offshore_tolerance_deg"`
}

// DefaultCalibration returns the stock beach-break windows: waves scored
// across 0.8-2.2 m, periods across 8-15 s, wind considered calm under
// 12 m/s, offshore tolerance 45 degrees either side.
func DefaultCalibration() Calibration {
	return Calibration{
		MinGoodHeightM:       0.8,
		MaxGoodHeightM:       2.2,
		MinGoodPeriodS:       8,
		MaxPeriodRefS:        15,
		MaxCalmWindMS:        12,
		OffshoreToleranceDeg: 45,
	}
}

// Validate rejects degenerate windows before they reach the engine.
func (c Calibration) Validate() error {
	if c.MaxGoodHeightM <= c.MinGoodHeightM {
		return fmt.Errorf("max_good_height_m %.2f must exceed min_good_height_m %.2f",
			c.MaxGoodHeightM, c.MinGoodHeightM)
	}
	if c.MinGoodHeightM < 0 {
		return fmt.Errorf("min_good_height_m must be >= 0, got %.2f", c.MinGoodHeightM)
	}
	if c.MaxPeriodRefS <= c.MinGoodPeriodS {
		return fmt.Errorf("max_period_ref_s %.2f must exceed min_good_period_s %.2f",
			c.MaxPeriodRefS, c.MinGoodPeriodS)
	}
	if c.MinGoodPeriodS < 0 {
		return fmt.Errorf("min_good_period_s must be >= 0, got %.2f", c.MinGoodPeriodS)
	}
	if c.MaxCalmWindMS <= 0 {
		return fmt.Errorf("max_calm_wind_ms must be > 0, got %.2f", c.MaxCalmWindMS)
	}
	if c.OffshoreToleranceDeg < 1 || c.OffshoreToleranceDeg > 180 {
		return fmt.Errorf("offshore_tolerance_deg %.1f outside [1,180]", c.OffshoreToleranceDeg)
	}
	return nil
}

// Config is the full engine tuning, exposed in the YAML config file so
// weights stay policy rather than code.
type Config struct {
	Weights     Weights     `json:"weights" yaml:"weights"`
	Calibration Calibration `json:"calibration" yaml:"calibration"`
}

// DefaultConfig returns the stock weights and calibration.
func DefaultConfig() Config {
	return Config{
		Weights:     DefaultWeights(),
		Calibration: DefaultCalibration(),
	}
}

// Validate checks weights and calibration together.
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	if err := c.Calibration.Validate(); err != nil {
		return fmt.Errorf("calibration: %w", err)
	}
	return nil
}
