package forecast

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasinocencio1/surf-forecast/internal/models"
)

var csvHeader = []string{
	"time",
	"swell_height_m", "swell_period_s", "swell_direction_deg",
	"wind_speed_ms", "wind_direction_deg", "wind_gusts_ms",
	"wave_height_m", "air_temp_c", "sea_temp_c",
	"score",
}

// WriteCSV streams a scored forecast as CSV, one row per scored hour.
func WriteCSV(w io.Writer, f *models.SpotForecast) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, s := range f.Samples {
		row := []string{
			s.Time.Format("2006-01-02T15:04"),
			csvFloat(s.SwellHeightM),
			csvFloat(s.SwellPeriodS),
			csvFloat(s.SwellDirectionDeg),
			csvFloat(s.WindSpeedMS),
			csvFloat(s.WindDirectionDeg),
			csvFloat(s.WindGustsMS),
			csvFloat(s.WaveHeightM),
			csvFloat(s.AirTempC),
			csvFloat(s.SeaTempC),
			strconv.FormatFloat(s.Score, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the scored forecast to dir/history_<spot>.csv,
// creating the directory if needed, and returns the file path.
func ExportCSV(dir string, f *models.SpotForecast) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, HistoryFileName(f.Spot.Name))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	if err := WriteCSV(file, f); err != nil {
		return "", err
	}

	return path, nil
}

// HistoryFileName maps a spot name to its CSV file name:
// "Peniche - Supertubos" becomes history_peniche_supertubos.csv.
func HistoryFileName(spotName string) string {
	slug := strings.ToLower(spotName)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, slug)
	for strings.Contains(slug, "__") {
		slug = strings.ReplaceAll(slug, "__", "_")
	}
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "spot"
	}
	return "history_" + slug + ".csv"
}

func csvFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
