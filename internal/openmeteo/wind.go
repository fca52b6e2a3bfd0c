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

// Model selects which numerical weather model serves the wind fields.
type Model string

const (
	ModelBestMatch Model = "best_match"
	ModelGFS       Model = "gfs"
	ModelICON      Model = "icon"
	ModelECMWF     Model = "ecmwf"
)

// endpointPath maps a model to its dedicated API path.
func (m Model) endpointPath() string {
	switch m {
	case ModelGFS:
		return "/v1/gfs"
	case ModelICON:
		return "/v1/dwd-icon"
	case ModelECMWF:
		return "/v1/ecmwf"
	default:
		return "/v1/forecast"
	}
}

// Valid reports whether the model name is one the API serves.
func (m Model) Valid() bool {
	switch m {
	case "", ModelBestMatch, ModelGFS, ModelICON, ModelECMWF:
		return true
	}
	return false
}

// WindClient fetches hourly wind from the Open-Meteo Forecast API.
// Wind speeds are requested in m/s so scoring thresholds stay in one unit.
type WindClient struct {
	baseURL    string
	httpClient *http.Client
	cache      *responseCache
}

// NewWindClient creates a wind client against the public API
func NewWindClient() *WindClient {
	return &WindClient{
		baseURL: "https://api.open-meteo.com",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: newResponseCache(clockwork.NewRealClock()),
	}
}

// GetWind retrieves the hourly wind series for a location
func (c *WindClient) GetWind(ctx context.Context, lat, lon float64, opts RequestOptions) (*WindSeries, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", lat))
	params.Set("longitude", fmt.Sprintf("%.4f", lon))
	params.Set("hourly", "wind_speed_10m,wind_direction_10m,wind_gusts_10m,temperature_2m")
	params.Set("wind_speed_unit", "ms")
	params.Set("timezone", opts.timezone())
	if opts.ForecastDays > 0 {
		params.Set("forecast_days", strconv.Itoa(opts.ForecastDays))
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, opts.Model.endpointPath(), params.Encode())

	body, err := fetchJSON(ctx, c.httpClient, c.cache, reqURL)
	if err != nil {
		return nil, fmt.Errorf("wind forecast for %.4f,%.4f: %w", lat, lon, err)
	}

	var resp forecastResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}

	times, err := parseHourlyTimes(resp.Hourly.Time, resp.Timezone)
	if err != nil {
		return nil, err
	}

	return &WindSeries{
		Times:            times,
		WindSpeedMS:      resp.Hourly.WindSpeed10m,
		WindDirectionDeg: resp.Hourly.WindDirection10m,
		WindGustsMS:      resp.Hourly.WindGusts10m,
		AirTempC:         resp.Hourly.Temperature2m,
	}, nil
}

// Internal types for Open-Meteo Forecast API responses

type forecastResponse struct {
	Timezone string `json:"timezone"`
	Hourly   struct {
		Time             []string   `json:"time"`
		WindSpeed10m     []*float64 `json:"wind_speed_10m"`
		WindDirection10m []*float64 `json:"wind_direction_10m"`
		WindGusts10m     []*float64 `json:"wind_gusts_10m"`
		Temperature2m    []*float64 `json:"temperature_2m"`
	} `json:"hourly"`
}
