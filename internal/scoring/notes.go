package scoring

import (
	"strings"

	"github.com/lucasinocencio1/surf-forecast/internal/models"
)

// Notes produces a short human-readable assessment of one sample, banded
// the way surfers talk about conditions. Field groups with missing data
// are left out rather than assessed as zero.
func Notes(sample models.ForecastSample) string {
	var notes []string

	waveHeight := sample.WaveHeightM
	if waveHeight == nil {
		waveHeight = sample.SwellHeightM
	}

	if waveHeight != nil {
		switch h := *waveHeight; {
		case h < 0.5:
			notes = append(notes, "very small waves - flat conditions")
		case h < 1.0:
			notes = append(notes, "small waves - suitable for beginners")
		case h < 2.0:
			notes = append(notes, "good wave height for most surfers")
		case h < 3.0:
			notes = append(notes, "solid waves - intermediate to advanced")
		default:
			notes = append(notes, "big waves - advanced surfers only")
		}
	}

	if sample.WindSpeedMS != nil {
		switch kn := models.MSToKnots(*sample.WindSpeedMS); {
		case kn < 5:
			notes = append(notes, "light winds - glassy conditions")
		case kn < 10:
			notes = append(notes, "light breeze - good conditions")
		case kn < 15:
			notes = append(notes, "moderate wind - textured surface")
		case kn < 20:
			notes = append(notes, "strong wind - challenging conditions")
		default:
			notes = append(notes, "very strong wind - difficult surfing")
		}
	}

	if sample.SwellPeriodS != nil {
		switch p := *sample.SwellPeriodS; {
		case p > 12:
			notes = append(notes, "long period swell - clean waves expected")
		case p > 8:
			notes = append(notes, "moderate period - decent wave quality")
		default:
			notes = append(notes, "short period - choppy conditions likely")
		}
	}

	if sample.SwellHeightM != nil && sample.WaveHeightM != nil && *sample.WaveHeightM > 0 {
		if *sample.SwellHeightM / *sample.WaveHeightM > 0.7 {
			notes = append(notes, "swell dominant - cleaner conditions")
		} else {
			notes = append(notes, "wind waves present - may be choppy")
		}
	}

	return strings.Join(notes, " | ")
}
