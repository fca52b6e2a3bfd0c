package scoring

import (
	"math"

	"github.com/lucasinocencio1/surf-forecast/internal/models"
)

// AngularDistance returns the shortest rotation between two bearings,
// in degrees within [0,180]. It is symmetric and wrap-safe: 359 vs 1 is 2.
func AngularDistance(a, b float64) float64 {
	d := math.Mod(a-b+180, 360)
	if d < 0 {
		d += 360
	}
	return math.Abs(d - 180)
}

// arcDistance returns how far a bearing sits outside a direction window:
// zero anywhere inside the arc, otherwise the angular distance to the
// nearer edge.
func arcDistance(deg float64, w models.DirectionWindow) float64 {
	if w.Contains(deg) {
		return 0
	}
	return math.Min(AngularDistance(deg, w.FromDeg), AngularDistance(deg, w.ToDeg))
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
