package openmeteo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
)

// MarineClient fetches swell and sea state from the Open-Meteo Marine API
type MarineClient struct {
	baseURL    string
	httpClient *http.Client
	cache      *responseCache
}

// NewMarineClient creates a marine client against the public API
func NewMarineClient() *MarineClient {
	return &MarineClient{
		baseURL: "https://marine-api.open-meteo.com",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: newResponseCache(clockwork.NewRealClock()),
	}
}

// GetSwell retrieves the hourly swell series for a location
func (c *MarineClient) GetSwell(ctx context.Context, lat, lon float64, opts RequestOptions) (*MarineSeries, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", lat))
	params.Set("longitude", fmt.Sprintf("%.4f", lon))
	params.Set("hourly", "wave_height,swell_wave_height,swell_wave_period,swell_wave_direction,sea_surface_temperature")
	params.Set("timezone", opts.timezone())
	if opts.ForecastDays > 0 {
		params.Set("forecast_days", strconv.Itoa(opts.ForecastDays))
	}

	reqURL := fmt.Sprintf("%s/v1/marine?%s", c.baseURL, params.Encode())

	body, err := fetchJSON(ctx, c.httpClient, c.cache, reqURL)
	if err != nil {
		return nil, fmt.Errorf("marine forecast for %.4f,%.4f: %w", lat, lon, err)
	}

	var resp marineResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}

	times, err := parseHourlyTimes(resp.Hourly.Time, resp.Timezone)
	if err != nil {
		return nil, err
	}

	return &MarineSeries{
		Times:             times,
		WaveHeightM:       resp.Hourly.WaveHeight,
		SwellHeightM:      resp.Hourly.SwellWaveHeight,
		SwellPeriodS:      resp.Hourly.SwellWavePeriod,
		SwellDirectionDeg: resp.Hourly.SwellWaveDirection,
		SeaTempC:          resp.Hourly.SeaSurfaceTemperature,
	}, nil
}

// Internal types for Open-Meteo Marine API responses

type marineResponse struct {
	Timezone string `json:"timezone"`
	Hourly   struct {
		Time                  []string   `json:"time"`
		WaveHeight            []*float64 `json:"wave_height"`
		SwellWaveHeight       []*float64 `json:"swell_wave_height"`
		SwellWavePeriod       []*float64 `json:"swell_wave_period"`
		SwellWaveDirection    []*float64 `json:"swell_wave_direction"`
		SeaSurfaceTemperature []*float64 `json:"sea_surface_temperature"`
	} `json:"hourly"`
}
