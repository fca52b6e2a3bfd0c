// Package openmeteo fetches hourly marine and wind forecasts from the
// Open-Meteo public APIs. Responses are cached for 30 minutes; the
// upstream models refresh hourly at best.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "surf-forecast/1.0 (github.com/lucasinocencio1/surf-forecast)"

// Hourly timestamps arrive in the requested timezone without an offset.
const hourlyTimeLayout = "2006-01-02T15:04"

// MarineSource is the swell side of a forecast fetch
type MarineSource interface {
	GetSwell(ctx context.Context, lat, lon float64, opts RequestOptions) (*MarineSeries, error)
}

// WindSource is the wind side of a forecast fetch
type WindSource interface {
	GetWind(ctx context.Context, lat, lon float64, opts RequestOptions) (*WindSeries, error)
}

// RequestOptions carry the per-request knobs both APIs share.
type RequestOptions struct {
	Timezone     string // IANA name, e.g. "Europe/Lisbon"; "auto" resolves server-side
	ForecastDays int    // 1..16, API default when zero
	Model        Model  // wind model, ignored by the marine API
}

func (o RequestOptions) timezone() string {
	if o.Timezone == "" {
		return "auto"
	}
	return o.Timezone
}

// MarineSeries holds the decoded hourly swell fields for one location.
// Slices are index-aligned with Times; nil entries are hours the model
// does not cover.
type MarineSeries struct {
	Times             []time.Time
	WaveHeightM       []*float64
	SwellHeightM      []*float64
	SwellPeriodS      []*float64
	SwellDirectionDeg []*float64
	SeaTempC          []*float64
}

// WindSeries holds the decoded hourly wind fields for one location.
type WindSeries struct {
	Times            []time.Time
	WindSpeedMS      []*float64
	WindDirectionDeg []*float64
	WindGustsMS      []*float64
	AirTempC         []*float64
}

// fetchJSON performs a GET through the shared response cache and returns
// the raw body on a 200.
func fetchJSON(ctx context.Context, httpClient *http.Client, cache *responseCache, url string) ([]byte, error) {
	if body, ok := cache.get(url); ok {
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	cache.put(url, body)
	return body, nil
}

func decodeJSON(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseHourlyTimes interprets the API's naive local timestamps in the
// timezone the response was resolved to, falling back to UTC when the
// zone is unknown to the host.
func parseHourlyTimes(raw []string, tz string) ([]time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}

	times := make([]time.Time, len(raw))
	for i, s := range raw {
		t, err := time.ParseInLocation(hourlyTimeLayout, s, loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse hourly time %q: %w", s, err)
		}
		times[i] = t
	}
	return times, nil
}
