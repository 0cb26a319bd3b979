package repositories

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"skybrief/pkg/observe"
)

func newTestGeocoder(baseURL string) *NominatimRepository {
	l := observe.NewZapLogger("test-app", "test")
	return NewNominatimRepository(l, http.DefaultClient, baseURL, "ru", "skybrief-test/1.0")
}

func TestNominatimRepository_ReverseGeocode(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("format") != "jsonv2" {
			t.Errorf("Expected jsonv2 format, got %q", r.URL.Query().Get("format"))
		}
		if r.URL.Query().Get("accept-language") != "ru" {
			t.Errorf("Expected ru language hint, got %q", r.URL.Query().Get("accept-language"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"display_name": "Гуляйполе, Пологовский район, Запорожская область, Украина",
			"address": {"town": "Гуляйполе", "district": "Пологовский район", "state": "Запорожская область"}
		}`))
	}))
	defer mockServer.Close()

	geocoder := newTestGeocoder(mockServer.URL)

	display, short := geocoder.ReverseGeocode(context.Background(), 47.6833, 36.8167)
	if display == "" {
		t.Error("Expected non-empty display name")
	}
	if short != "Гуляйполе" {
		t.Errorf("Expected town preferred over district and state, got %q", short)
	}
}

func TestNominatimRepository_ShortNamePreferenceOrder(t *testing.T) {
	tests := []struct {
		name string
		addr nominatimAddress
		want string
	}{
		{"village wins over everything", nominatimAddress{Village: "v", Town: "t", City: "c", State: "s"}, "v"},
		{"city wins over municipality", nominatimAddress{City: "c", Municipality: "m"}, "c"},
		{"district wins over state", nominatimAddress{District: "d", State: "s"}, "d"},
		{"state as last structured resort", nominatimAddress{State: "s"}, "s"},
		{"falls back to display name", nominatimAddress{}, "full display"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shortName(tt.addr, "full display"); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNominatimRepository_FailuresDegradeToEmpty(t *testing.T) {
	errorServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer errorServer.Close()

	for name, baseURL := range map[string]string{
		"unreachable host": "http://127.0.0.1:1",
		"non-OK status":    errorServer.URL,
	} {
		geocoder := newTestGeocoder(baseURL)
		display, short := geocoder.ReverseGeocode(context.Background(), 47.68, 36.82)
		if display != "" || short != "" {
			t.Errorf("%s: expected empty strings, got %q / %q", name, display, short)
		}
	}
}
