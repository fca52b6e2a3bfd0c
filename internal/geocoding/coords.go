package geocoding

import (
	"fmt"
	"strconv"
	"strings"
)

// parseCoordinates accepts a literal "lat,lon" query like "38.64, -9.23"
func parseCoordinates(query string) (*Location, bool) {
	parts := strings.Split(query, ",")
	if len(parts) != 2 {
		return nil, false
	}

	lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if latErr != nil || lonErr != nil {
		return nil, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, false
	}

	return &Location{
		Latitude:  lat,
		Longitude: lon,
		Name:      fmt.Sprintf("%.4f, %.4f", lat, lon),
	}, true
}
