package forecast

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasinocencio1/surf-forecast/internal/models"
	"github.com/lucasinocencio1/surf-forecast/internal/openmeteo"
	"github.com/lucasinocencio1/surf-forecast/internal/scoring"
)

type fakeMarine struct {
	bySpot map[string]*openmeteo.MarineSeries
	series *openmeteo.MarineSeries
	err    error
	calls  int
}

func (f *fakeMarine) GetSwell(_ context.Context, lat, lon float64, _ openmeteo.RequestOptions) (*openmeteo.MarineSeries, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.bySpot != nil {
		return f.bySpot[key(lat, lon)], nil
	}
	return f.series, nil
}

type fakeWind struct {
	series *openmeteo.WindSeries
	err    error
	calls  int
}

func (f *fakeWind) GetWind(_ context.Context, _, _ float64, _ openmeteo.RequestOptions) (*openmeteo.WindSeries, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.series, nil
}

type fakeRecorder struct {
	spotID    int64
	scored    []models.ScoredSample
	fetchedAt time.Time
	err       error
	calls     int
}

func (f *fakeRecorder) Record(spotID int64, scored []models.ScoredSample, fetchedAt time.Time) error {
	f.calls++
	f.spotID = spotID
	f.scored = scored
	f.fetchedAt = fetchedAt
	return f.err
}

func key(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}

// cleanSeries builds aligned marine and wind fixtures with n fully
// populated hours; holeAt (when >= 0) blanks the swell height there.
func cleanSeries(base time.Time, n, holeAt int) (*openmeteo.MarineSeries, *openmeteo.WindSeries) {
	marine := &openmeteo.MarineSeries{Times: hourRange(base, n)}
	wind := &openmeteo.WindSeries{Times: hourRange(base, n)}
	for i := 0; i < n; i++ {
		if i == holeAt {
			marine.SwellHeightM = append(marine.SwellHeightM, nil)
		} else {
			marine.SwellHeightM = append(marine.SwellHeightM, fp(1.2+0.1*float64(i)))
		}
		marine.SwellPeriodS = append(marine.SwellPeriodS, fp(12))
		marine.SwellDirectionDeg = append(marine.SwellDirectionDeg, fp(270))
		wind.WindSpeedMS = append(wind.WindSpeedMS, fp(3))
		wind.WindDirectionDeg = append(wind.WindDirectionDeg, fp(90))
	}
	return marine, wind
}

func testEngine(t *testing.T) *scoring.Engine {
	t.Helper()
	engine, err := scoring.NewEngine(scoring.DefaultConfig())
	require.NoError(t, err)
	return engine
}

func testSpot() *models.Spot {
	return &models.Spot{
		ID:        7,
		Name:      "Carcavelos",
		Latitude:  38.676,
		Longitude: -9.335,
		FacingDeg: 250,
	}
}

func TestService_Fetch(t *testing.T) {
	base := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)
	marineSeries, windSeries := cleanSeries(base, 5, 2)

	marine := &fakeMarine{series: marineSeries}
	wind := &fakeWind{series: windSeries}
	recorder := &fakeRecorder{}

	svc, err := NewService(marine, wind, testEngine(t), recorder, DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)

	clock := clockwork.NewFakeClockAt(base.Add(-time.Hour))
	svc.SetClock(clock)

	f, err := svc.Fetch(context.Background(), testSpot())
	require.NoError(t, err)

	assert.Len(t, f.Samples, 4, "the blanked hour is skipped")
	assert.Equal(t, 1, f.SkippedSamples)
	assert.Equal(t, base.Add(-time.Hour), f.FetchedAt, "fetch time comes from the injected clock")
	assert.Equal(t, "Carcavelos", f.Spot.Name)

	for _, s := range f.Samples {
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.LessOrEqual(t, s.Score, 10.0)
	}

	require.Equal(t, 1, recorder.calls, "history recorded once per fetch")
	assert.Equal(t, int64(7), recorder.spotID)
	assert.Len(t, recorder.scored, 4)
	assert.Equal(t, f.FetchedAt, recorder.fetchedAt)
}

func TestService_FetchWithoutHistory(t *testing.T) {
	base := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)
	marineSeries, windSeries := cleanSeries(base, 3, -1)

	svc, err := NewService(&fakeMarine{series: marineSeries}, &fakeWind{series: windSeries},
		testEngine(t), nil, DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)

	f, err := svc.Fetch(context.Background(), testSpot())
	require.NoError(t, err)
	assert.Len(t, f.Samples, 3)
}

func TestService_FetchHistoryFailureIsNotFatal(t *testing.T) {
	base := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)
	marineSeries, windSeries := cleanSeries(base, 3, -1)
	recorder := &fakeRecorder{err: errors.New("disk full")}

	svc, err := NewService(&fakeMarine{series: marineSeries}, &fakeWind{series: windSeries},
		testEngine(t), recorder, DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)

	f, err := svc.Fetch(context.Background(), testSpot())
	require.NoError(t, err, "a failed history write must not fail the fetch")
	assert.Len(t, f.Samples, 3)
}

func TestService_FetchErrorsWrapTheSpot(t *testing.T) {
	svc, err := NewService(&fakeMarine{err: errors.New("boom")}, &fakeWind{},
		testEngine(t), nil, DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)

	_, err = svc.Fetch(context.Background(), testSpot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Carcavelos")

	svc, err = NewService(&fakeMarine{series: &openmeteo.MarineSeries{}}, &fakeWind{err: errors.New("boom")},
		testEngine(t), nil, DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)

	_, err = svc.Fetch(context.Background(), testSpot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wind")
}

func TestService_Rank(t *testing.T) {
	base := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)

	// Good conditions at Carcavelos, mediocre at Caparica: big clean
	// swell versus small short-period waves.
	good := &openmeteo.MarineSeries{
		Times:             hourRange(base, 2),
		SwellHeightM:      []*float64{fp(1.8), fp(1.9)},
		SwellPeriodS:      []*float64{fp(14), fp(14)},
		SwellDirectionDeg: []*float64{fp(250), fp(250)},
	}
	poor := &openmeteo.MarineSeries{
		Times:             hourRange(base, 2),
		SwellHeightM:      []*float64{fp(0.5), fp(0.6)},
		SwellPeriodS:      []*float64{fp(6), fp(6)},
		SwellDirectionDeg: []*float64{fp(100), fp(100)},
	}
	wind := &openmeteo.WindSeries{
		Times:            hourRange(base, 2),
		WindSpeedMS:      []*float64{fp(2), fp(2)},
		WindDirectionDeg: []*float64{fp(70), fp(70)},
	}

	carcavelos := models.Spot{ID: 1, Name: "Carcavelos", Latitude: 38.676, Longitude: -9.335, FacingDeg: 250}
	caparica := models.Spot{ID: 2, Name: "Costa da Caparica", Latitude: 38.643, Longitude: -9.236, FacingDeg: 240}

	marine := &fakeMarine{bySpot: map[string]*openmeteo.MarineSeries{
		key(carcavelos.Latitude, carcavelos.Longitude): good,
		key(caparica.Latitude, caparica.Longitude):     poor,
	}}

	svc, err := NewService(marine, &fakeWind{series: wind}, testEngine(t), nil, DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)

	rankings := svc.Rank(context.Background(), []models.Spot{caparica, carcavelos})
	require.Len(t, rankings, 2)

	assert.Equal(t, "Carcavelos", rankings[0].Spot.Name, "best spot ranks first")
	assert.Greater(t, rankings[0].BestScore, rankings[1].BestScore)
	assert.False(t, rankings[0].NoData)
	assert.Equal(t, base, rankings[0].BestTime, "equal scores break to the earliest hour")
}

func TestService_RankKeepsFailingSpots(t *testing.T) {
	base := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)
	marineSeries, windSeries := cleanSeries(base, 2, -1)

	ok := models.Spot{ID: 1, Name: "Carcavelos", Latitude: 38.676, Longitude: -9.335, FacingDeg: 250}
	broken := models.Spot{ID: 2, Name: "Atlantis", Latitude: 0, Longitude: 0, FacingDeg: 0}

	marine := &fakeMarine{bySpot: map[string]*openmeteo.MarineSeries{
		key(ok.Latitude, ok.Longitude): marineSeries,
		// Atlantis resolves to nil: the fetch yields no samples.
	}}

	svc, err := NewService(marine, &fakeWind{series: windSeries}, testEngine(t), nil, DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)

	rankings := svc.Rank(context.Background(), []models.Spot{broken, ok})
	require.Len(t, rankings, 2)

	assert.Equal(t, "Carcavelos", rankings[0].Spot.Name)
	assert.True(t, rankings[1].NoData, "empty spot flagged as no data")
	assert.Equal(t, "Atlantis", rankings[1].Spot.Name)
	assert.Zero(t, rankings[1].BestScore)
}

func TestService_RankEmptyList(t *testing.T) {
	svc, err := NewService(&fakeMarine{}, &fakeWind{}, testEngine(t), nil, DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)

	assert.Empty(t, svc.Rank(context.Background(), nil))
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{"defaults pass", func(o *Options) {}, false},
		{"zero days allowed", func(o *Options) { o.ForecastDays = 0 }, false},
		{"too many days", func(o *Options) { o.ForecastDays = 17 }, true},
		{"negative days", func(o *Options) { o.ForecastDays = -1 }, true},
		{"unknown model", func(o *Options) { o.Model = "hurricane9000" }, true},
		{"gfs model", func(o *Options) { o.Model = openmeteo.ModelGFS }, false},
		{"threshold out of range", func(o *Options) { o.GoodThreshold = 11 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
