package report

import "skybrief/internal/models"

// Fixed mid-latitude reference altitudes for the three pressure levels.
// The mapping ignores season and latitude; it is an approximation carried
// over from the source data design, not a barometric computation.
const (
	Alt850hPaM = 1500.0
	Alt700hPaM = 3000.0
	Alt600hPaM = 4200.0
)

// Report altitudes. 1500 m is read directly off the 850 hPa level; the
// other two are interpolated between neighboring levels.
const (
	profileAlt2500M = 2500.0
	profileAlt3500M = 3500.0
)

func kmhToMS(kmh float64) float64 {
	return kmh / 3.6
}

func interpolate(vLow, altLow, vHigh, altHigh, target float64) float64 {
	if altHigh == altLow {
		return vLow
	}
	return vLow + (target-altLow)/(altHigh-altLow)*(vHigh-vLow)
}

// DeriveWindProfile merges two models' pressure-level wind speeds into one
// consensus sample per hour, keyed by timestamp. A model contributes to an
// hour only when it has readings at all three levels; hours where neither
// model is complete are omitted entirely (no interpolation from neighbors).
func DeriveWindProfile(times []string, modelA, modelB models.HourlySeries) map[string]models.WindProfileSample {
	out := make(map[string]models.WindProfileSample)

	for i, ts := range times {
		var s850, s700, s600 []float64

		for _, series := range []models.HourlySeries{modelA, modelB} {
			v850 := series.At("wind_speed_850hPa", i)
			v700 := series.At("wind_speed_700hPa", i)
			v600 := series.At("wind_speed_600hPa", i)
			if v850 == nil || v700 == nil || v600 == nil {
				continue
			}
			s850 = append(s850, kmhToMS(*v850))
			s700 = append(s700, kmhToMS(*v700))
			s600 = append(s600, kmhToMS(*v600))
		}

		if len(s850) == 0 {
			continue
		}

		c850 := mean(s850)
		c700 := mean(s700)
		c600 := mean(s600)

		out[ts] = models.WindProfileSample{
			Wind1500MS: c850,
			Wind2500MS: interpolate(c850, Alt850hPaM, c700, Alt700hPaM, profileAlt2500M),
			Wind3500MS: interpolate(c700, Alt700hPaM, c600, Alt600hPaM, profileAlt3500M),
		}
	}

	return out
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
