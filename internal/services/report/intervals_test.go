package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skybrief/internal/models"
)

// fullDaySeries builds 24 hourly records with uniform values.
func fullDaySeries(temp, dew, precip, cloud, wind, gust float64) models.HourlySeries {
	s := models.HourlySeries{Values: map[string][]*float64{}}
	for h := 0; h < 24; h++ {
		s.Times = append(s.Times, fmt.Sprintf("2024-06-01T%02d:00", h))
		s.Values["temperature_2m"] = append(s.Values["temperature_2m"], fptr(temp))
		s.Values["dew_point_2m"] = append(s.Values["dew_point_2m"], fptr(dew))
		s.Values["precipitation"] = append(s.Values["precipitation"], fptr(precip))
		s.Values["cloud_cover"] = append(s.Values["cloud_cover"], fptr(cloud))
		s.Values["wind_speed_10m"] = append(s.Values["wind_speed_10m"], fptr(wind))
		s.Values["wind_gusts_10m"] = append(s.Values["wind_gusts_10m"], fptr(gust))
	}
	return s
}

func TestReportWindowsAssignEachHourAtMostOnce(t *testing.T) {
	assigned := map[int]int{}
	for h := 0; h < 24; h++ {
		for _, w := range ReportWindows {
			if w.Contains(h * 60) {
				assigned[h]++
			}
		}
	}
	for h := 0; h < 23; h++ {
		assert.Equal(t, 1, assigned[h], "hour %d must belong to exactly one window", h)
	}
	// the final hour of the day is outside the schedule on purpose
	assert.Zero(t, assigned[23])
}

func TestAggregateReturnsAllWindowsInOrder(t *testing.T) {
	summaries := Aggregate(fullDaySeries(20, 10, 0, 50, 10, 20), nil)
	require.Len(t, summaries, len(ReportWindows))

	assert.Equal(t, "Погода с 00:00 по 03:00", summaries[0].Label)
	assert.Equal(t, "Погода с 06:00 по 12:00", summaries[2].Label)
	assert.Equal(t, "Погода с 20:00 по 23:00", summaries[6].Label)
}

func TestAggregateEmptyWindowYieldsNoData(t *testing.T) {
	// Only two early-morning hours: every later window has no data.
	s := models.HourlySeries{
		Times: []string{"2024-06-01T00:00", "2024-06-01T01:00"},
		Values: map[string][]*float64{
			"cloud_cover": {fptr(10), fptr(20)},
		},
	}

	summaries := Aggregate(s, nil)
	last := summaries[len(summaries)-1]

	assert.Equal(t, models.SkyNoData, last.Description)
	assert.Nil(t, last.GroundWindMeanMS)
	assert.Nil(t, last.GroundGustMaxMS)
	assert.Nil(t, last.Wind1500MS)
	assert.Nil(t, last.Wind2500MS)
	assert.Nil(t, last.Wind3500MS)
	assert.Nil(t, last.CloudBaseM)
}

func TestAggregateDescriptionThresholds(t *testing.T) {
	tests := []struct {
		name   string
		precip float64
		cloud  float64
		want   models.SkyDescription
	}{
		{"precipitation wins", 1.0, 10, models.SkyRain},
		{"cloud mean exactly 70", 0, 70, models.SkyOvercast},
		{"cloud mean exactly 30", 0, 30, models.SkyVariable},
		{"cloud mean just below 30", 0, 29.9, models.SkyClearish},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summaries := Aggregate(fullDaySeries(20, 10, tt.precip, tt.cloud, 10, 0), nil)
			assert.Equal(t, tt.want, summaries[0].Description)
		})
	}
}

func TestAggregatePrecipitationThresholdIsStrict(t *testing.T) {
	// One hour at exactly the 0.05 threshold: not classified as rain.
	s := models.HourlySeries{
		Times: []string{"2024-06-01T00:00"},
		Values: map[string][]*float64{
			"precipitation": {fptr(0.05)},
			"cloud_cover":   {fptr(0)},
		},
	}
	summaries := Aggregate(s, nil)
	assert.Equal(t, models.SkyClearish, summaries[0].Description)
}

func TestAggregateGroundWind(t *testing.T) {
	// 18 km/h mean wind is 5 m/s; 36 km/h max gust is 10 m/s.
	summaries := Aggregate(fullDaySeries(20, 10, 0, 0, 18, 36), nil)

	first := summaries[0]
	require.NotNil(t, first.GroundWindMeanMS)
	assert.InDelta(t, 5.0, *first.GroundWindMeanMS, 1e-9)
	require.NotNil(t, first.GroundGustMaxMS)
	assert.InDelta(t, 10.0, *first.GroundGustMaxMS, 1e-9)
}

func TestAggregateGustAbsentWithoutGustSeries(t *testing.T) {
	s := models.HourlySeries{
		Times: []string{"2024-06-01T00:00"},
		Values: map[string][]*float64{
			"wind_speed_10m": {fptr(18)},
			"cloud_cover":    {fptr(0)},
		},
	}
	summaries := Aggregate(s, nil)
	assert.NotNil(t, summaries[0].GroundWindMeanMS)
	assert.Nil(t, summaries[0].GroundGustMaxMS)
}

func TestAggregateCloudBase(t *testing.T) {
	// temperature/dew-point spread of 8 degrees puts the base at 1000 m
	summaries := Aggregate(fullDaySeries(20, 12, 0, 0, 0, 0), nil)
	require.NotNil(t, summaries[0].CloudBaseM)
	assert.InDelta(t, 1000.0, *summaries[0].CloudBaseM, 1e-9)
}

func TestAggregateCloudBaseClampedAtGround(t *testing.T) {
	// supersaturated hour (dew point above temperature) clamps to zero
	summaries := Aggregate(fullDaySeries(10, 14, 0, 0, 0, 0), nil)
	require.NotNil(t, summaries[0].CloudBaseM)
	assert.Zero(t, *summaries[0].CloudBaseM)
}

func TestAggregateCloudBaseAbsentWithoutInputs(t *testing.T) {
	s := models.HourlySeries{
		Times: []string{"2024-06-01T00:00"},
		Values: map[string][]*float64{
			"temperature_2m": {fptr(20)},
			// dew point missing for the only hour
		},
	}
	summaries := Aggregate(s, nil)
	assert.Nil(t, summaries[0].CloudBaseM)
}

func TestAggregateUsesMiddleHourForUpperWinds(t *testing.T) {
	surface := fullDaySeries(20, 10, 0, 0, 10, 0)
	// the 06:00-12:00 window selects hours 6..11; selected[6/2] is hour 9
	profile := map[string]models.WindProfileSample{
		"2024-06-01T09:00": {Wind1500MS: 7, Wind2500MS: 8, Wind3500MS: 9},
	}

	summaries := Aggregate(surface, profile)

	window := summaries[2]
	require.Equal(t, "Погода с 06:00 по 12:00", window.Label)
	require.NotNil(t, window.Wind1500MS)
	assert.Equal(t, 7.0, *window.Wind1500MS)
	assert.Equal(t, 8.0, *window.Wind2500MS)
	assert.Equal(t, 9.0, *window.Wind3500MS)

	// windows whose middle hour has no sample carry no upper-air winds
	assert.Nil(t, summaries[0].Wind1500MS)
}
