package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeMaps serves canned geocode and nearby-search payloads.
func fakeMaps(t *testing.T, geocode, nearby string) (*httptest.Server, *Client) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/geocode", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geocode)
	})
	mux.HandleFunc("/nearby", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, nearby)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client := NewClientWithOptions("test-key", srv.URL+"/geocode", srv.URL+"/nearby", srv.Client())
	return srv, client
}

const geocodeOK = `{"status":"OK","results":[{"geometry":{"location":{"lat":18.52,"lng":73.85}}}]}`

func TestGeocodeNoCandidates(t *testing.T) {
	_, client := fakeMaps(t, `{"status":"ZERO_RESULTS","results":[]}`, `{}`)

	_, err := client.Geocode(context.Background(), "Zzzzqx")
	var geoErr *GeocodingError
	if !errors.As(err, &geoErr) {
		t.Fatalf("err = %v, want *GeocodingError", err)
	}
	if geoErr.Location != "Zzzzqx" {
		t.Errorf("GeocodingError.Location = %q", geoErr.Location)
	}
}

func TestSearchNoResultsIsNotAnError(t *testing.T) {
	_, client := fakeMaps(t, geocodeOK, `{"status":"ZERO_RESULTS","results":[]}`)

	out, err := client.Search(context.Background(), "Pune", "psychiatrist")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if !strings.Contains(out, "No psychiatrists found near Pune") {
		t.Errorf("output = %q, want the no-results message", out)
	}
}

func TestSearchFormatsTopFive(t *testing.T) {
	var results []map[string]any
	for i := 1; i <= 7; i++ {
		results = append(results, map[string]any{
			"name":     fmt.Sprintf("Clinic %d", i),
			"vicinity": fmt.Sprintf("%d Main Road", i),
			"rating":   4.5,
		})
	}
	nearby, _ := json.Marshal(map[string]any{"status": "OK", "results": results})
	_, client := fakeMaps(t, geocodeOK, string(nearby))

	out, err := client.Search(context.Background(), "Pune", "dermatologist")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if !strings.Contains(out, "Top Dermatologists near Pune") {
		t.Errorf("missing header, got %q", out)
	}
	if got := strings.Count(out, "📍"); got != 5 {
		t.Errorf("formatted %d results, want 5", got)
	}
	if strings.Contains(out, "Clinic 6") {
		t.Error("results beyond the top 5 were included")
	}
	if !strings.Contains(out, "Clinic 1 (4.5⭐)") {
		t.Errorf("rating formatting wrong, got %q", out)
	}
}

func TestSearchHandlesMissingFields(t *testing.T) {
	nearby := `{"status":"OK","results":[{"name":"","vicinity":"","rating":0}]}`
	_, client := fakeMaps(t, geocodeOK, nearby)

	out, err := client.Search(context.Background(), "Pune", "doctor")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if !strings.Contains(out, "Unknown") || !strings.Contains(out, "Address not available") || !strings.Contains(out, "N/A") {
		t.Errorf("missing-field placeholders absent, got %q", out)
	}
}

func TestGeocodeRequiresAPIKey(t *testing.T) {
	client := NewClientWithOptions("", "", "", nil)
	if _, err := client.Geocode(context.Background(), "Pune"); err == nil {
		t.Fatal("expected an error without an api key")
	}
}
