package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"skybrief/internal/models"
	"skybrief/pkg/observe"
)

// SurfaceVariables is the fixed hourly variable set of a surface fetch.
var SurfaceVariables = []string{
	"temperature_2m",
	"dew_point_2m",
	"precipitation",
	"precipitation_probability",
	"rain",
	"showers",
	"snowfall",
	"cloud_cover",
	"cloud_cover_low",
	"cloud_cover_mid",
	"cloud_cover_high",
	"wind_speed_10m",
	"wind_gusts_10m",
	"cape",
}

// WindsAloftVariables covers the three pressure levels used by the wind
// profile. Directions are requested for parity with the source data even
// though the consensus is speed-only.
var WindsAloftVariables = []string{
	"wind_speed_850hPa", "wind_direction_850hPa",
	"wind_speed_700hPa", "wind_direction_700hPa",
	"wind_speed_600hPa", "wind_direction_600hPa",
}

type OpenMeteoRepository struct {
	baseURL    string
	userAgent  string
	httpClient HTTPClient
	l          *observe.Logger
}

func NewOpenMeteoRepository(l *observe.Logger, httpClient HTTPClient, baseURL, userAgent string) *OpenMeteoRepository {
	return &OpenMeteoRepository{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
		l:          l,
	}
}

func (o *OpenMeteoRepository) Name() string {
	return "open-meteo"
}

// FetchSurface returns the surface variable series for a single calendar
// day in the given zone, using open-meteo's best-match model selection.
func (o *OpenMeteoRepository) FetchSurface(ctx context.Context, lat, lon float64, zone, date string) (models.HourlySeries, error) {
	return o.fetchHourly(ctx, lat, lon, zone, date, "best_match", SurfaceVariables)
}

// FetchWindsAloft queries each model independently (and concurrently) for
// the pressure-level wind series. A failure on any model aborts the whole
// call: partial results would silently bias the consensus.
func (o *OpenMeteoRepository) FetchWindsAloft(ctx context.Context, lat, lon float64, zone, date string, windModels []string) (map[string]models.HourlySeries, error) {
	results := make(map[string]models.HourlySeries, len(windModels))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		fetchErr error
	)

	for _, model := range windModels {
		wg.Add(1)

		go func(model string) {
			defer wg.Done()

			series, err := o.fetchHourly(ctx, lat, lon, zone, date, model, WindsAloftVariables)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if fetchErr == nil {
					fetchErr = err
				}
				return
			}
			results[model] = series
		}(model)
	}

	wg.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	return results, nil
}

func (o *OpenMeteoRepository) fetchHourly(ctx context.Context, lat, lon float64, zone, date, model string, variables []string) (models.HourlySeries, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%.6f", lat))
	values.Set("longitude", fmt.Sprintf("%.6f", lon))
	values.Set("hourly", strings.Join(variables, ","))
	values.Set("timezone", zone)
	values.Set("start_date", date)
	values.Set("end_date", date)
	values.Set("models", model)

	reqURL := fmt.Sprintf("%s?%s", o.baseURL, values.Encode())

	o.l.Debug("making open-meteo request", map[string]any{
		"model": model,
		"lat":   lat,
		"lon":   lon,
		"date":  date,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.HourlySeries{}, &FetchError{Source: o.Name(), Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", o.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return models.HourlySeries{}, &FetchError{Source: o.Name(), Err: fmt.Errorf("failed to do request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.HourlySeries{}, &FetchError{Source: o.Name(), Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return models.HourlySeries{}, &FetchError{
			Source:     o.Name(),
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s: %s", resp.Status, firstLine(body)),
		}
	}

	series, err := decodeHourly(body, variables)
	if err != nil {
		return models.HourlySeries{}, &FetchError{Source: o.Name(), Err: err}
	}

	o.l.Debug("parsed open-meteo response", map[string]any{
		"model": model,
		"hours": len(series.Times),
	})

	return series, nil
}

// decodeHourly rebuilds the hourly block as one shared timestamp axis plus
// per-variable columns. Missing hours arrive as JSON nulls and stay nil.
func decodeHourly(body []byte, variables []string) (models.HourlySeries, error) {
	var payload struct {
		Hourly map[string]json.RawMessage `json:"hourly"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.HourlySeries{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	series := models.HourlySeries{
		Values: make(map[string][]*float64, len(variables)),
	}

	if raw, ok := payload.Hourly["time"]; ok {
		if err := json.Unmarshal(raw, &series.Times); err != nil {
			return models.HourlySeries{}, fmt.Errorf("failed to parse hourly time axis: %w", err)
		}
	}
	if len(series.Times) == 0 {
		return models.HourlySeries{}, fmt.Errorf("no hourly data available")
	}

	for _, variable := range variables {
		raw, ok := payload.Hourly[variable]
		if !ok {
			continue
		}
		var column []*float64
		if err := json.Unmarshal(raw, &column); err != nil {
			return models.HourlySeries{}, fmt.Errorf("failed to parse hourly variable %s: %w", variable, err)
		}
		series.Values[variable] = column
	}

	return series, nil
}

func firstLine(body []byte) string {
	s := strings.TrimSpace(string(body))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
