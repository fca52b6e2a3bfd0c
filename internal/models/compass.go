package models

import "math"

var compassNames = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

var compassArrows = []string{"↑", "↗", "→", "↘", "↓", "↙", "←", "↖"}

// NormalizeDeg maps any angle onto [0,360).
func NormalizeDeg(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// DegreesToCompass converts a bearing to its 16-wind compass name.
func DegreesToCompass(deg float64) string {
	ix := int(math.Round(NormalizeDeg(deg)/22.5)) % 16
	return compassNames[ix]
}

// DirectionArrow returns an 8-way arrow glyph for a bearing, matching
// the forecast-table convention of pointing along the reported bearing.
func DirectionArrow(deg float64) string {
	ix := int(NormalizeDeg(deg)/45.0+0.5) % 8
	return compassArrows[ix]
}

// MSToKnots converts metres per second to knots.
func MSToKnots(ms float64) float64 {
	return ms * 1.94384
}
