// Package coords extracts geographic coordinates from loosely structured
// chat text, e.g.
//
//	Широта: 47°41'с. ш. / Долгота: 36°49'в. д. / Высота: 119 m
//	Часовой пояс: Europe/Kiev (UTC+3)
//
// Labels and direction letters are accepted in both Cyrillic and Latin.
package coords

import (
	"regexp"
	"strconv"
	"strings"

	"skybrief/internal/models"
)

// ParseError reports text in which no coordinate pair could be located.
type ParseError struct {
	Text string
}

func (e *ParseError) Error() string {
	return "no latitude/longitude pair recognized in message text"
}

var (
	// degrees required, minutes/seconds and the degree glyph optional
	dmsPattern = regexp.MustCompile(`([-+]?\d{1,3})\s*[°º]?\s*(\d{1,2})?\s*['’′]?\s*(\d{1,2}(?:\.\d+)?)?\s*"?`)

	latLabelPattern = regexp.MustCompile(`(?i)широт|lat`)
	lonLabelPattern = regexp.MustCompile(`(?i)долгот|lon|lng`)

	fragmentSeparator = regexp.MustCompile(`[\n/|]`)

	altitudePattern = regexp.MustCompile(`(?i)высот[ае]:?\s*([+-]?\d+(?:\.\d+)?)\s*(?:m|м)?`)
	timezonePattern = regexp.MustCompile(`(?i)часов[ао]й\s+пояс\s*:\s*([^\n]+)`)
)

type axis int

const (
	axisLatitude axis = iota
	axisLongitude
)

// directionIndicators maps each recognized direction token to its axis and
// sign. Tokens are matched against the text trailing a numeric fragment;
// the earliest (longest on ties) match wins, and no match means positive.
var directionIndicators = []struct {
	pattern *regexp.Regexp
	axis    axis
	sign    float64
}{
	{regexp.MustCompile(`(?i)ю\.?\s*ш\.`), axisLatitude, -1},
	{regexp.MustCompile(`(?i)с\.?\s*ш\.`), axisLatitude, 1},
	{regexp.MustCompile(`(?i)з\.?\s*д\.`), axisLongitude, -1},
	{regexp.MustCompile(`(?i)в\.?\s*д\.`), axisLongitude, 1},
	{regexp.MustCompile(`(?i)[sю]`), axisLatitude, -1},
	{regexp.MustCompile(`(?i)[nс]`), axisLatitude, 1},
	{regexp.MustCompile(`(?i)[wз]`), axisLongitude, -1},
	{regexp.MustCompile(`(?i)[eв]`), axisLongitude, 1},
}

func directionSign(tail string, ax axis) float64 {
	sign := 1.0
	bestStart, bestLen := -1, 0
	for _, ind := range directionIndicators {
		if ind.axis != ax {
			continue
		}
		loc := ind.pattern.FindStringIndex(tail)
		if loc == nil {
			continue
		}
		length := loc[1] - loc[0]
		if bestStart == -1 || loc[0] < bestStart || (loc[0] == bestStart && length > bestLen) {
			bestStart, bestLen = loc[0], length
			sign = ind.sign
		}
	}
	return sign
}

type dmsFragment struct {
	deg, min, sec float64
	tail          string
}

func extractDMS(fragment string) (dmsFragment, bool) {
	m := dmsPattern.FindStringSubmatchIndex(fragment)
	if m == nil {
		return dmsFragment{}, false
	}
	return fragmentFromMatch(fragment, m, len(fragment)), true
}

// Parse extracts a Coordinate from free-form text. Latitude and longitude
// are required; altitude and timezone label are optional extras scanned
// over the whole text independently.
func Parse(text string) (models.Coordinate, error) {
	latFrag, lonFrag, labeled := labeledFragments(text)

	var lat, lon dmsFragment
	ok := false
	if labeled {
		var latOK, lonOK bool
		lat, latOK = extractDMS(latFrag)
		lon, lonOK = extractDMS(lonFrag)
		ok = latOK && lonOK
	}
	if !ok {
		// No usable labels: take the first two numeric fragments in
		// document order as latitude then longitude.
		lat, lon, ok = unlabeledFragments(text)
	}
	if !ok {
		return models.Coordinate{}, &ParseError{Text: text}
	}

	coord := models.Coordinate{
		Latitude:  DMSToDecimal(lat.deg, lat.min, lat.sec, directionSign(lat.tail, axisLatitude)),
		Longitude: DMSToDecimal(lon.deg, lon.min, lon.sec, directionSign(lon.tail, axisLongitude)),
	}

	if m := altitudePattern.FindStringSubmatch(text); m != nil {
		if alt, err := strconv.ParseFloat(m[1], 64); err == nil {
			coord.AltitudeM = &alt
		}
	}
	if m := timezonePattern.FindStringSubmatch(text); m != nil {
		coord.TimezoneLabel = strings.TrimSpace(m[1])
	}

	return coord, nil
}

func labeledFragments(text string) (latFrag, lonFrag string, ok bool) {
	for _, part := range fragmentSeparator.Split(text, -1) {
		pt := strings.TrimSpace(part)
		switch {
		case latLabelPattern.MatchString(pt):
			latFrag = pt
		case lonLabelPattern.MatchString(pt):
			lonFrag = pt
		}
	}
	return latFrag, lonFrag, latFrag != "" && lonFrag != ""
}

func unlabeledFragments(text string) (lat, lon dmsFragment, ok bool) {
	matches := dmsPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) < 2 {
		return dmsFragment{}, dmsFragment{}, false
	}
	first, second := matches[0], matches[1]
	lat = fragmentFromMatch(text, first, second[0])
	lon = fragmentFromMatch(text, second, len(text))
	return lat, lon, true
}

// fragmentFromMatch rebuilds a dmsFragment from a precomputed regexp match,
// limiting the sign-carrying tail to tailEnd so one fragment's direction
// letters cannot leak into the previous one.
func fragmentFromMatch(text string, m []int, tailEnd int) dmsFragment {
	var out dmsFragment
	out.deg, _ = strconv.ParseFloat(text[m[2]:m[3]], 64)
	if m[4] >= 0 {
		out.min, _ = strconv.ParseFloat(text[m[4]:m[5]], 64)
	}
	if m[6] >= 0 {
		out.sec, _ = strconv.ParseFloat(text[m[6]:m[7]], 64)
	}
	if tailEnd < m[1] {
		tailEnd = m[1]
	}
	out.tail = text[m[1]:tailEnd]
	return out
}
