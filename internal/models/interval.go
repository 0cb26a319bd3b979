package models

// SkyDescription is the qualitative classification of a report window.
type SkyDescription string

const (
	SkyRain     SkyDescription = "rain"
	SkyOvercast SkyDescription = "overcast"
	SkyVariable SkyDescription = "variable"
	SkyClearish SkyDescription = "clear-ish"
	SkyNoData   SkyDescription = "no-data"
)

// IntervalSummary is one report window. Pointer fields are nil when the
// quantity could not be computed; the formatter renders nil as a dash, so
// no NaN or sentinel value ever reaches the output.
type IntervalSummary struct {
	Label            string
	Description      SkyDescription
	GroundWindMeanMS *float64
	GroundGustMaxMS  *float64
	Wind1500MS       *float64
	Wind2500MS       *float64
	Wind3500MS       *float64
	CloudBaseM       *float64
}
