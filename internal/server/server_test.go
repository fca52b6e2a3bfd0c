package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasinocencio1/surf-forecast/internal/database"
	"github.com/lucasinocencio1/surf-forecast/internal/forecast"
	"github.com/lucasinocencio1/surf-forecast/internal/geocoding"
	"github.com/lucasinocencio1/surf-forecast/internal/models"
	"github.com/lucasinocencio1/surf-forecast/internal/observability"
	"github.com/lucasinocencio1/surf-forecast/internal/openmeteo"
	"github.com/lucasinocencio1/surf-forecast/internal/scoring"
	"github.com/lucasinocencio1/surf-forecast/internal/spots"
)

func fp(v float64) *float64 { return &v }

type fakeLocator struct {
	loc *geocoding.Location
	err error
}

func (f *fakeLocator) Geocode(_ context.Context, query string) (*geocoding.Location, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.loc != nil {
		return f.loc, nil
	}
	return &geocoding.Location{Latitude: 38.7, Longitude: -9.4, Name: query}, nil
}

type fakeMarine struct {
	series *openmeteo.MarineSeries
	err    error
}

func (f *fakeMarine) GetSwell(context.Context, float64, float64, openmeteo.RequestOptions) (*openmeteo.MarineSeries, error) {
	return f.series, f.err
}

type fakeWind struct {
	series *openmeteo.WindSeries
	err    error
}

func (f *fakeWind) GetWind(context.Context, float64, float64, openmeteo.RequestOptions) (*openmeteo.WindSeries, error) {
	return f.series, f.err
}

// surfableSeries builds aligned fixtures with n fully populated hours of
// clean west swell and light offshore wind.
func surfableSeries(base time.Time, n int) (*openmeteo.MarineSeries, *openmeteo.WindSeries) {
	marine := &openmeteo.MarineSeries{}
	wind := &openmeteo.WindSeries{}
	for i := 0; i < n; i++ {
		ts := base.Add(time.Duration(i) * time.Hour)
		marine.Times = append(marine.Times, ts)
		wind.Times = append(wind.Times, ts)
		marine.SwellHeightM = append(marine.SwellHeightM, fp(1.5))
		marine.SwellPeriodS = append(marine.SwellPeriodS, fp(13))
		marine.SwellDirectionDeg = append(marine.SwellDirectionDeg, fp(250))
		wind.WindSpeedMS = append(wind.WindSpeedMS, fp(2))
		wind.WindDirectionDeg = append(wind.WindDirectionDeg, fp(70))
	}
	return marine, wind
}

type testEnv struct {
	server  *Server
	spots   *spots.Service
	history *spots.HistoryRepository
}

// newTestEnv builds a server over a temp sqlite file and fake upstream
// sources.
func newTestEnv(t *testing.T, marine openmeteo.MarineSource, wind openmeteo.WindSource, locator spots.Locator) *testEnv {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.EnsureSchema(db))

	repo := spots.NewRepository(db)
	history := spots.NewHistoryRepository(db)
	spotSvc := spots.NewService(repo, locator)

	engine, err := scoring.NewEngine(scoring.DefaultConfig())
	require.NoError(t, err)

	forecastSvc, err := forecast.NewService(marine, wind, engine, history, forecast.DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)

	metrics := observability.NewMetricsForTesting()
	handlers := NewHandlers(spotSvc, forecastSvc, history, locator, metrics, zerolog.Nop())

	srv := New(Config{Addr: ":0"}, handlers, metrics, zerolog.Nop())
	return &testEnv{server: srv, spots: spotSvc, history: history}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func carcavelosRequest() spotRequest {
	return spotRequest{
		Name:      "Carcavelos",
		Latitude:  38.676,
		Longitude: -9.335,
		FacingDeg: 250,
	}
}

func TestServer_SpotCRUD(t *testing.T) {
	env := newTestEnv(t, &fakeMarine{}, &fakeWind{}, &fakeLocator{})

	// Empty store lists as [], not null.
	rec := env.do(t, "GET", "/api/spots", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = env.do(t, "POST", "/api/spots", carcavelosRequest())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[models.Spot](t, rec)
	require.NotZero(t, created.ID)
	assert.Equal(t, "Carcavelos", created.Name)

	rec = env.do(t, "GET", fmt.Sprintf("/api/spots/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[models.Spot](t, rec)
	assert.Equal(t, created.ID, got.ID)
	assert.InDelta(t, 38.676, got.Latitude, 1e-9)

	update := carcavelosRequest()
	update.FacingDeg = 245
	update.SwellWindow = &models.DirectionWindow{FromDeg: 220, ToDeg: 280}
	rec = env.do(t, "PUT", fmt.Sprintf("/api/spots/%d", created.ID), update)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[models.Spot](t, rec)
	assert.InDelta(t, 245, updated.FacingDeg, 1e-9)
	require.NotNil(t, updated.SwellWindow)

	rec = env.do(t, "DELETE", fmt.Sprintf("/api/spots/%d", created.ID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, "GET", fmt.Sprintf("/api/spots/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, "DELETE", fmt.Sprintf("/api/spots/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_CreateSpotRejectsBadPayloads(t *testing.T) {
	env := newTestEnv(t, &fakeMarine{}, &fakeWind{}, &fakeLocator{})

	tests := []struct {
		name   string
		mutate func(*spotRequest)
	}{
		{"facing out of range", func(r *spotRequest) { r.FacingDeg = 360 }},
		{"latitude out of range", func(r *spotRequest) { r.Latitude = 91 }},
		{"empty name", func(r *spotRequest) { r.Name = "  " }},
		{"bad swell window", func(r *spotRequest) {
			r.SwellWindow = &models.DirectionWindow{FromDeg: -5, ToDeg: 10}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := carcavelosRequest()
			tt.mutate(&req)
			rec := env.do(t, "POST", "/api/spots", req)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	req := httptest.NewRequest("POST", "/api/spots", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_CreateSpotFromLocation(t *testing.T) {
	locator := &fakeLocator{loc: &geocoding.Location{Latitude: 38.9866, Longitude: -9.4207, Name: "Ericeira"}}
	env := newTestEnv(t, &fakeMarine{}, &fakeWind{}, locator)

	rec := env.do(t, "POST", "/api/spots", spotRequest{
		Name:      "Ribeira d'Ilhas",
		Location:  "Ericeira, Portugal",
		FacingDeg: 290,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decodeBody[models.Spot](t, rec)
	assert.InDelta(t, 38.9866, created.Latitude, 1e-9)
	assert.InDelta(t, -9.4207, created.Longitude, 1e-9)
}

func TestServer_CreateSpotUnknownLocation(t *testing.T) {
	locator := &fakeLocator{err: fmt.Errorf("geocoding %q: %w", "atlantis", geocoding.ErrNoResults)}
	env := newTestEnv(t, &fakeMarine{}, &fakeWind{}, locator)

	rec := env.do(t, "POST", "/api/spots", spotRequest{Name: "Atlantis", Location: "atlantis", FacingDeg: 180})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Forecast(t *testing.T) {
	base := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)
	marine, wind := surfableSeries(base, 6)
	env := newTestEnv(t, &fakeMarine{series: marine}, &fakeWind{series: wind}, &fakeLocator{})

	rec := env.do(t, "POST", "/api/spots", carcavelosRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	spot := decodeBody[models.Spot](t, rec)

	rec = env.do(t, "GET", fmt.Sprintf("/api/spots/%d/forecast", spot.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	f := decodeBody[models.SpotForecast](t, rec)
	assert.Len(t, f.Samples, 6)
	assert.Zero(t, f.SkippedSamples)
	assert.Equal(t, "Carcavelos", f.Spot.Name)
	for _, s := range f.Samples {
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.LessOrEqual(t, s.Score, 10.0)
	}
}

func TestServer_ForecastUpstreamFailure(t *testing.T) {
	env := newTestEnv(t, &fakeMarine{err: errors.New("open-meteo down")}, &fakeWind{}, &fakeLocator{})

	rec := env.do(t, "POST", "/api/spots", carcavelosRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	spot := decodeBody[models.Spot](t, rec)

	rec = env.do(t, "GET", fmt.Sprintf("/api/spots/%d/forecast", spot.ID), nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestServer_Best(t *testing.T) {
	base := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)
	marine, wind := surfableSeries(base, 4)
	env := newTestEnv(t, &fakeMarine{series: marine}, &fakeWind{series: wind}, &fakeLocator{})

	rec := env.do(t, "POST", "/api/spots", carcavelosRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	spot := decodeBody[models.Spot](t, rec)

	rec = env.do(t, "GET", fmt.Sprintf("/api/spots/%d/best", spot.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[bestResponse](t, rec)
	require.NotNil(t, resp.Best)
	assert.False(t, resp.NoData)
	assert.NotEmpty(t, resp.Notes)
	// All hours score identically, so the earliest wins.
	assert.Equal(t, base.Unix(), resp.Best.Time.Unix())
}

func TestServer_BestNoData(t *testing.T) {
	// Swell fields all null: every sample is skipped, nothing scored.
	base := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)
	marine, wind := surfableSeries(base, 3)
	marine.SwellHeightM = []*float64{nil, nil, nil}
	env := newTestEnv(t, &fakeMarine{series: marine}, &fakeWind{series: wind}, &fakeLocator{})

	rec := env.do(t, "POST", "/api/spots", carcavelosRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	spot := decodeBody[models.Spot](t, rec)

	rec = env.do(t, "GET", fmt.Sprintf("/api/spots/%d/best", spot.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code, "no data is a result, not an error")

	resp := decodeBody[bestResponse](t, rec)
	assert.True(t, resp.NoData)
	assert.Nil(t, resp.Best)
	assert.Equal(t, 3, resp.SkippedSamples)
}

func TestServer_Rank(t *testing.T) {
	base := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)
	marine, wind := surfableSeries(base, 4)
	env := newTestEnv(t, &fakeMarine{series: marine}, &fakeWind{series: wind}, &fakeLocator{})

	for _, name := range []string{"Carcavelos", "Costa da Caparica"} {
		req := carcavelosRequest()
		req.Name = name
		rec := env.do(t, "POST", "/api/spots", req)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := env.do(t, "GET", "/api/rank", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rankings := decodeBody[[]models.SpotRanking](t, rec)
	require.Len(t, rankings, 2)
	assert.GreaterOrEqual(t, rankings[0].BestScore, rankings[1].BestScore)
}

func TestServer_Nearest(t *testing.T) {
	env := newTestEnv(t, &fakeMarine{}, &fakeWind{}, &fakeLocator{})

	req := carcavelosRequest()
	rec := env.do(t, "POST", "/api/spots", req)
	require.Equal(t, http.StatusCreated, rec.Code)

	far := carcavelosRequest()
	far.Name = "Nazare"
	far.Latitude = 39.604
	far.Longitude = -9.085
	rec = env.do(t, "POST", "/api/spots", far)
	require.Equal(t, http.StatusCreated, rec.Code)

	// From Lisbon, only Carcavelos sits inside 50 km.
	rec = env.do(t, "GET", "/api/spots/nearest?lat=38.72&lon=-9.14&max_km=50", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	nearby := decodeBody[[]spots.SpotDistance](t, rec)
	require.Len(t, nearby, 1)
	assert.Equal(t, "Carcavelos", nearby[0].Spot.Name)
	assert.Less(t, nearby[0].DistanceKm, 50.0)

	rec = env.do(t, "GET", "/api/spots/nearest?lon=-9.14", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing lat")

	rec = env.do(t, "GET", "/api/spots/nearest?lat=38.72&lon=-9.14&max_km=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "negative radius")
}

func TestServer_Geocode(t *testing.T) {
	locator := &fakeLocator{loc: &geocoding.Location{Latitude: 39.3558, Longitude: -9.3812, Name: "Peniche"}}
	env := newTestEnv(t, &fakeMarine{}, &fakeWind{}, locator)

	rec := env.do(t, "GET", "/api/geocode?q=Peniche", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	loc := decodeBody[geocoding.Location](t, rec)
	assert.InDelta(t, 39.3558, loc.Latitude, 1e-9)

	rec = env.do(t, "GET", "/api/geocode", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing query")

	locator.err = fmt.Errorf("geocoding: %w", geocoding.ErrNoResults)
	rec = env.do(t, "GET", "/api/geocode?q=nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_History(t *testing.T) {
	base := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)
	marine, wind := surfableSeries(base, 3)
	env := newTestEnv(t, &fakeMarine{series: marine}, &fakeWind{series: wind}, &fakeLocator{})

	rec := env.do(t, "POST", "/api/spots", carcavelosRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	spot := decodeBody[models.Spot](t, rec)

	// A forecast fetch records one history batch.
	rec = env.do(t, "GET", fmt.Sprintf("/api/spots/%d/forecast", spot.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	since := base.Add(-time.Hour).Format(time.RFC3339)
	rec = env.do(t, "GET", fmt.Sprintf("/api/spots/%d/history?since=%s", spot.ID, since), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	entries := decodeBody[[]spots.HistoryEntry](t, rec)
	assert.Len(t, entries, 3)

	rec = env.do(t, "GET", fmt.Sprintf("/api/spots/%d/history?since=not-a-time", spot.ID), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_HealthAndNotFound(t *testing.T) {
	env := newTestEnv(t, &fakeMarine{}, &fakeWind{}, &fakeLocator{})

	rec := env.do(t, "GET", "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = env.do(t, "GET", "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, "GET", "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestServer_RequestIDHeader(t *testing.T) {
	env := newTestEnv(t, &fakeMarine{}, &fakeWind{}, &fakeLocator{})

	rec := env.do(t, "GET", "/healthz", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_NearestBeforeIDRoute(t *testing.T) {
	// "nearest" must never be parsed as a spot id.
	env := newTestEnv(t, &fakeMarine{}, &fakeWind{}, &fakeLocator{})

	rec := env.do(t, "GET", "/api/spots/nearest?lat=1&lon=1", nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
