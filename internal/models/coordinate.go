package models

import "fmt"

// Coordinate is the parsed result of one user message. AltitudeM and
// TimezoneLabel are optional and independent of the lat/lon extraction.
type Coordinate struct {
	Latitude      float64
	Longitude     float64
	AltitudeM     *float64
	TimezoneLabel string
}

func (c Coordinate) RequestParams() string {
	return fmt.Sprintf("lat: %.4f lon: %.4f tz: %q", c.Latitude, c.Longitude, c.TimezoneLabel)
}
