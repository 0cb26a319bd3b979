package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"skybrief/pkg/observe"
)

type NominatimRepository struct {
	baseURL    string
	language   string
	userAgent  string
	httpClient HTTPClient
	l          *observe.Logger
}

func NewNominatimRepository(l *observe.Logger, httpClient HTTPClient, baseURL, language, userAgent string) *NominatimRepository {
	return &NominatimRepository{
		baseURL:    baseURL,
		language:   language,
		userAgent:  userAgent,
		httpClient: httpClient,
		l:          l,
	}
}

type nominatimAddress struct {
	Village      string `json:"village"`
	Town         string `json:"town"`
	City         string `json:"city"`
	Municipality string `json:"municipality"`
	District     string `json:"district"`
	State        string `json:"state"`
}

// ReverseGeocode resolves a coordinate to a display name and a short place
// name, preferring the smallest settlement-level entry available. Every
// failure path degrades to empty strings: a missing place name must never
// abort a weather report.
func (n *NominatimRepository) ReverseGeocode(ctx context.Context, lat, lon float64) (string, string) {
	values := url.Values{}
	values.Set("format", "jsonv2")
	values.Set("lat", fmt.Sprintf("%.6f", lat))
	values.Set("lon", fmt.Sprintf("%.6f", lon))
	values.Set("accept-language", n.language)

	reqURL := fmt.Sprintf("%s?%s", n.baseURL, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		n.l.Warning("reverse geocode request build failed", map[string]any{"err": err})
		return "", ""
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.l.Warning("reverse geocode request failed", map[string]any{"err": err})
		return "", ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		n.l.Warning("reverse geocode non-OK status", map[string]any{"status": resp.StatusCode})
		return "", ""
	}

	var payload struct {
		DisplayName string           `json:"display_name"`
		Address     nominatimAddress `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		n.l.Warning("reverse geocode decode failed", map[string]any{"err": err})
		return "", ""
	}

	return payload.DisplayName, shortName(payload.Address, payload.DisplayName)
}

// shortName picks the most specific non-empty name:
// settlement -> town -> city -> municipality -> district -> region.
func shortName(addr nominatimAddress, display string) string {
	for _, candidate := range []string{
		addr.Village,
		addr.Town,
		addr.City,
		addr.Municipality,
		addr.District,
		addr.State,
	} {
		if candidate != "" {
			return candidate
		}
	}
	return display
}
