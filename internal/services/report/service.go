package report

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"skybrief/internal/coords"
	"skybrief/internal/models"
	"skybrief/internal/repositories"
	"skybrief/internal/tz"
	"skybrief/pkg/observe"
)

// ReportService runs the whole per-message pipeline: parse the coordinate
// text, resolve the timezone and local date, fetch the weather data, and
// render the report. Each call is fully isolated; nothing is cached or
// shared between messages.
type ReportService struct {
	forecasts repositories.ForecastRepository
	geocoder  repositories.GeocodeRepository
	modelA    string
	modelB    string
	l         *observe.Logger
}

func NewReportService(
	forecasts repositories.ForecastRepository,
	geocoder repositories.GeocodeRepository,
	modelA, modelB string,
	l *observe.Logger,
) *ReportService {
	return &ReportService{
		forecasts: forecasts,
		geocoder:  geocoder,
		modelA:    modelA,
		modelB:    modelB,
		l:         l,
	}
}

// BuildReport turns one raw user message into a formatted weather report.
// Failures to parse coordinates or to fetch required weather series return
// an error (*coords.ParseError / *repositories.FetchError underneath);
// a missing place name or timezone only degrades the output.
func (s *ReportService) BuildReport(ctx context.Context, text string) (string, error) {
	coord, err := coords.Parse(text)
	if err != nil {
		return "", err
	}

	zone := tz.Resolve(coord.TimezoneLabel)
	now := time.Now().In(tz.Location(zone))
	date := now.Format("2006-01-02")

	s.l.Info("starting report pipeline", map[string]any{
		"params": coord.RequestParams(),
		"zone":   zone,
		"date":   date,
	})

	// The three outbound lookups are independent: fan out, join before
	// the local computation.
	var (
		wg sync.WaitGroup

		surface    models.HourlySeries
		surfaceErr error

		winds    map[string]models.HourlySeries
		windsErr error

		placeShort string
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		surface, surfaceErr = s.forecasts.FetchSurface(ctx, coord.Latitude, coord.Longitude, zone, date)
	}()
	go func() {
		defer wg.Done()
		winds, windsErr = s.forecasts.FetchWindsAloft(ctx, coord.Latitude, coord.Longitude, zone, date, []string{s.modelA, s.modelB})
	}()
	go func() {
		defer wg.Done()
		_, placeShort = s.geocoder.ReverseGeocode(ctx, coord.Latitude, coord.Longitude)
	}()
	wg.Wait()

	if surfaceErr != nil {
		s.l.Error(surfaceErr, map[string]any{"stage": "surface"})
		return "", errors.Wrap(surfaceErr, "surface fetch")
	}
	if windsErr != nil {
		s.l.Error(windsErr, map[string]any{"stage": "winds aloft"})
		return "", errors.Wrap(windsErr, "winds aloft fetch")
	}

	profile := DeriveWindProfile(surface.Times, winds[s.modelA], winds[s.modelB])
	summaries := Aggregate(surface, profile)

	place := placeShort
	if place == "" {
		place = UnknownPlace
	}

	s.l.Info("report pipeline complete", map[string]any{
		"hours":           len(surface.Times),
		"profile_samples": len(profile),
		"place":           place,
	})

	return FormatReport(now, coords.FormatDMS(coord.Latitude, coord.Longitude), place, summaries), nil
}
