package report

import (
	"fmt"
	"time"

	"skybrief/internal/models"
)

// Window is a half-open [Start, End) local-time window, in minutes from
// midnight.
type Window struct {
	StartMin int
	EndMin   int
}

func (w Window) Contains(minute int) bool {
	return minute >= w.StartMin && minute < w.EndMin
}

func (w Window) Label() string {
	return fmt.Sprintf("Погода с %02d:%02d по %02d:%02d",
		w.StartMin/60, w.StartMin%60, w.EndMin/60, w.EndMin%60)
}

// ReportWindows is the fixed report schedule. The windows do not cover the
// whole day: the 23:00-24:00 hour falls outside every window on purpose,
// matching the schedule the reports have always used.
var ReportWindows = []Window{
	{0, 3 * 60},
	{3 * 60, 6 * 60},
	{6 * 60, 12 * 60},
	{12 * 60, 15 * 60},
	{15 * 60, 18 * 60},
	{18 * 60, 20 * 60},
	{20 * 60, 23 * 60},
}

// precipPresenceThresholdMM separates trace noise from actual rain when
// summing hourly precipitation over a window.
const precipPresenceThresholdMM = 0.05

// cloudBasePerDegreeM is the lifted-condensation approximation slope:
// cloud base in meters per degree of temperature/dew-point spread.
const cloudBasePerDegreeM = 125.0

// Aggregate buckets the hourly surface series and the derived wind profile
// into the fixed report windows. Always returns exactly
// len(ReportWindows) summaries, in schedule order.
func Aggregate(surface models.HourlySeries, profile map[string]models.WindProfileSample) []models.IntervalSummary {
	minutes := make([]int, len(surface.Times))
	parsed := make([]bool, len(surface.Times))
	for i, ts := range surface.Times {
		minutes[i], parsed[i] = minuteOfDay(ts)
	}

	summaries := make([]models.IntervalSummary, 0, len(ReportWindows))
	for _, w := range ReportWindows {
		var idxs []int
		for i := range surface.Times {
			if parsed[i] && w.Contains(minutes[i]) {
				idxs = append(idxs, i)
			}
		}
		summaries = append(summaries, summarizeWindow(w, surface, profile, idxs))
	}
	return summaries
}

func summarizeWindow(w Window, surface models.HourlySeries, profile map[string]models.WindProfileSample, idxs []int) models.IntervalSummary {
	summary := models.IntervalSummary{
		Label:       w.Label(),
		Description: models.SkyNoData,
	}
	if len(idxs) == 0 {
		return summary
	}

	n := float64(len(idxs))

	var precipSum, cloudSum, windSum float64
	for _, i := range idxs {
		precipSum += valueOrZero(surface.At("precipitation", i))
		cloudSum += valueOrZero(surface.At("cloud_cover", i))
		windSum += valueOrZero(surface.At("wind_speed_10m", i))
	}
	cloudMean := cloudSum / n

	switch {
	case precipSum > precipPresenceThresholdMM:
		summary.Description = models.SkyRain
	case cloudMean >= 70:
		summary.Description = models.SkyOvercast
	case cloudMean >= 30:
		summary.Description = models.SkyVariable
	default:
		summary.Description = models.SkyClearish
	}

	groundWind := kmhToMS(windSum / n)
	summary.GroundWindMeanMS = &groundWind

	if gusts := surface.Column("wind_gusts_10m"); len(gusts) > 0 {
		maxGust := 0.0
		for _, i := range idxs {
			if g := valueOrZero(surface.At("wind_gusts_10m", i)); g > maxGust {
				maxGust = g
			}
		}
		maxGust = kmhToMS(maxGust)
		summary.GroundGustMaxMS = &maxGust
	}

	if base, ok := cloudBase(surface, idxs); ok {
		summary.CloudBaseM = &base
	}

	// Upper-air winds are read at the middle selected hour; the
	// later-middle one when the count is even.
	mid := idxs[len(idxs)/2]
	if sample, ok := profile[surface.Times[mid]]; ok {
		summary.Wind1500MS = &sample.Wind1500MS
		summary.Wind2500MS = &sample.Wind2500MS
		summary.Wind3500MS = &sample.Wind3500MS
	}

	return summary
}

// cloudBase averages the per-hour lifted-condensation estimates over the
// hours where both temperature and dew point are known.
func cloudBase(surface models.HourlySeries, idxs []int) (float64, bool) {
	sum := 0.0
	count := 0
	for _, i := range idxs {
		temp := surface.At("temperature_2m", i)
		dew := surface.At("dew_point_2m", i)
		if temp == nil || dew == nil {
			continue
		}
		lcl := cloudBasePerDegreeM * (*temp - *dew)
		if lcl < 0 {
			lcl = 0
		}
		sum += lcl
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// minuteOfDay parses the zone-localized open-meteo timestamp format
// (no offset suffix) into a minute-of-day for window bucketing.
func minuteOfDay(ts string) (int, bool) {
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}
	return 0, false
}
