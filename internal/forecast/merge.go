// Package forecast turns raw Open-Meteo series into scored spot
// forecasts: it aligns swell and wind on the hourly grid, runs the
// scoring engine, and builds the cross-spot ranking.
package forecast

import (
	"github.com/lucasinocencio1/surf-forecast/internal/models"
	"github.com/lucasinocencio1/surf-forecast/internal/openmeteo"
)

// MergeHourly inner-joins a marine and a wind series on their hourly
// timestamps. Both APIs serve the same grid for a given timezone, so
// matching is by exact instant; hours present in only one series are
// dropped. Order follows the marine series, which arrives ascending.
func MergeHourly(marine *openmeteo.MarineSeries, wind *openmeteo.WindSeries) []models.ForecastSample {
	if marine == nil || wind == nil {
		return nil
	}

	windIdx := make(map[int64]int, len(wind.Times))
	for i, t := range wind.Times {
		windIdx[t.Unix()] = i
	}

	samples := make([]models.ForecastSample, 0, len(marine.Times))
	for i, t := range marine.Times {
		j, ok := windIdx[t.Unix()]
		if !ok {
			continue
		}

		samples = append(samples, models.ForecastSample{
			Time:              t,
			SwellHeightM:      at(marine.SwellHeightM, i),
			SwellPeriodS:      at(marine.SwellPeriodS, i),
			SwellDirectionDeg: at(marine.SwellDirectionDeg, i),
			WindSpeedMS:       at(wind.WindSpeedMS, j),
			WindDirectionDeg:  at(wind.WindDirectionDeg, j),
			WaveHeightM:       at(marine.WaveHeightM, i),
			WindGustsMS:       at(wind.WindGustsMS, j),
			AirTempC:          at(wind.AirTempC, j),
			SeaTempC:          at(marine.SeaTempC, i),
		})
	}

	return samples
}

// at reads an index from a nullable hourly array, tolerating arrays the
// API returned shorter than the time axis.
func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}
