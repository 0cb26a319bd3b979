// Package tz normalizes free-form timezone labels ("Europe/Kyiv (UTC+3)",
// "МСК Europe/Moscow", ...) into identifiers usable for local-date math.
package tz

import (
	"regexp"
	"strings"
	"time"
)

// Auto is the sentinel returned when no label was given: downstream it
// means "let the weather source localize by coordinates, and use the
// system offset for date math".
const Auto = "auto"

var zonePattern = regexp.MustCompile(`[A-Za-z_]+/[A-Za-z_+-]+`)

// legacyZoneNames maps renamed IANA identifiers that still circulate in
// user-pasted labels to their current names.
var legacyZoneNames = map[string]string{
	"Europe/Kiev": "Europe/Kyiv",
}

// Resolve extracts a zone identifier from a label. It never fails: inputs
// it cannot make sense of degrade to Auto, and identifiers it cannot
// verify are returned as-is for Location to fall back on.
func Resolve(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return Auto
	}

	zone := zonePattern.FindString(label)
	if zone == "" {
		zone = strings.Fields(label)[0]
	}
	if renamed, ok := legacyZoneNames[zone]; ok {
		zone = renamed
	}
	if zone == "" {
		return Auto
	}
	return zone
}

// Location loads the zone for date math. Unresolvable identifiers and the
// Auto sentinel both fall back to the system's local zone.
func Location(zone string) *time.Location {
	if zone == Auto {
		return time.Local
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Local
	}
	return loc
}
