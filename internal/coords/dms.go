package coords

import (
	"fmt"
	"math"
)

// DMSToDecimal converts a degree/minute/second triple into signed decimal
// degrees. The sign argument carries the hemisphere (+1 north/east,
// -1 south/west); the degree magnitude is taken absolute so a stray leading
// minus cannot double-negate.
func DMSToDecimal(deg, min, sec, sign float64) float64 {
	return sign * (math.Abs(deg) + min/60.0 + sec/3600.0)
}

// FormatDMS renders decimal coordinates back into the DMS notation used in
// report headers, e.g. "47°41'с. ш., 36°49'в. д.".
func FormatDMS(lat, lon float64) string {
	return formatAngle(lat, axisLatitude) + ", " + formatAngle(lon, axisLongitude)
}

func formatAngle(x float64, ax axis) string {
	negative := x < 0
	x = math.Abs(x)

	deg := int(x)
	minFloat := (x - float64(deg)) * 60
	min := int(minFloat)
	sec := int(math.Round((minFloat - float64(min)) * 60))
	// carry rounded-up seconds through minutes and degrees
	if sec == 60 {
		sec = 0
		min++
	}
	if min == 60 {
		min = 0
		deg++
	}

	var suffix string
	if ax == axisLatitude {
		suffix = "с. ш."
		if negative {
			suffix = "ю. ш."
		}
	} else {
		suffix = "в. д."
		if negative {
			suffix = "з. д."
		}
	}
	return fmt.Sprintf("%d°%d'%s", deg, min, suffix)
}
