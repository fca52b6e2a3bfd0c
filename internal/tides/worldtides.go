// Package tides fetches predicted sea levels from the WorldTides API.
package tides

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lucasinocencio1/surf-forecast/internal/models"
)

// Client talks to the WorldTides v3 API. Requests burn prepaid credits,
// so callers should hold on to a series for the whole session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
}

// NewClient creates a WorldTides client. An empty key disables the
// client rather than failing; tide data is optional everywhere.
func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: "https://www.worldtides.info/api/v3",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey: apiKey,
	}
}

// Enabled reports whether an API key is configured
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// GetHeights retrieves the predicted sea level curve for a location at
// 30-minute resolution, relative to mean sea level.
func (c *Client) GetHeights(ctx context.Context, lat, lon float64, start time.Time, length time.Duration) (*models.TideSeries, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("worldtides API key not configured")
	}

	params := url.Values{}
	params.Add("heights", "")
	params.Add("lat", fmt.Sprintf("%.4f", lat))
	params.Add("lon", fmt.Sprintf("%.4f", lon))
	params.Add("start", strconv.FormatInt(start.Unix(), 10))
	params.Add("length", strconv.Itoa(int(length.Seconds())))
	params.Add("step", "1800")
	params.Add("datum", "MSL")
	params.Add("key", c.apiKey)

	requestURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tide data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var tideResp worldTidesResponse
	if err := json.NewDecoder(resp.Body).Decode(&tideResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// WorldTides reports failures in the body with a 200-class status line.
	if tideResp.Status != http.StatusOK {
		return nil, fmt.Errorf("worldtides error: %s", tideResp.Error)
	}

	series := &models.TideSeries{
		Station:   tideResp.Station,
		Points:    make([]models.TidePoint, 0, len(tideResp.Heights)),
		UpdatedAt: time.Now(),
	}

	for _, h := range tideResp.Heights {
		series.Points = append(series.Points, models.TidePoint{
			Time:    time.Unix(h.Dt, 0),
			HeightM: h.Height,
		})
	}

	return series, nil
}

// Internal types for WorldTides API responses

type worldTidesResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Station string `json:"station"`
	Heights []struct {
		Dt     int64   `json:"dt"`
		Date   string  `json:"date"`
		Height float64 `json:"height"`
	} `json:"heights"`
}
