package scoring

import "github.com/lucasinocencio1/surf-forecast/internal/models"

// DefaultGoodThreshold marks the score at which conditions are worth a
// session; the dashboard shades these runs.
const DefaultGoodThreshold = 7.0

// Best returns the highest-scoring sample. Ties break to the earliest
// timestamp. ok is false for an empty series, which callers report as
// "no data" rather than an error.
func Best(scored []models.ScoredSample) (models.ScoredSample, bool) {
	if len(scored) == 0 {
		return models.ScoredSample{}, false
	}
	best := scored[0]
	for _, s := range scored[1:] {
		if s.Score > best.Score || (s.Score == best.Score && s.Time.Before(best.Time)) {
			best = s
		}
	}
	return best, true
}

// ContiguousWindows collects runs of consecutive samples scoring at or
// above the threshold, in series order.
func ContiguousWindows(scored []models.ScoredSample, threshold float64) []models.GoodWindow {
	var windows []models.GoodWindow
	var open *models.GoodWindow
	for _, s := range scored {
		if s.Score >= threshold {
			if open == nil {
				open = &models.GoodWindow{Start: s.Time, End: s.Time}
			} else {
				open.End = s.Time
			}
			continue
		}
		if open != nil {
			windows = append(windows, *open)
			open = nil
		}
	}
	if open != nil {
		windows = append(windows, *open)
	}
	return windows
}
