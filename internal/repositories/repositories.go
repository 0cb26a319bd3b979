package repositories

import (
	"context"
	"net/http"
	"time"

	"skybrief/config"
	"skybrief/internal/models"
	"skybrief/pkg/observe"
)

// HTTPClient abstracts the outbound HTTP transport for test doubles.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ForecastRepository provides the hourly weather series for a single local day.
type ForecastRepository interface {
	Name() string
	FetchSurface(ctx context.Context, lat, lon float64, zone, date string) (models.HourlySeries, error)
	FetchWindsAloft(ctx context.Context, lat, lon float64, zone, date string, windModels []string) (map[string]models.HourlySeries, error)
}

// GeocodeRepository resolves a coordinate into a human place name. It is
// best-effort only: implementations return empty strings on any failure
// instead of an error.
type GeocodeRepository interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (display, short string)
}

func InitRepositories(cfg *config.Config, l *observe.Logger) (ForecastRepository, GeocodeRepository) {
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second,
	}

	forecasts := NewOpenMeteoRepository(l, httpClient, cfg.OpenMeteo.BaseURL, cfg.UserAgent)
	geocoder := NewNominatimRepository(l, httpClient, cfg.Nominatim.BaseURL, cfg.Nominatim.Language, cfg.UserAgent)

	return forecasts, geocoder
}
