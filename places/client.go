package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

const (
	geocodeURL      = "https://maps.googleapis.com/maps/api/geocode/json"
	nearbySearchURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"

	defaultHTTPTimeout = 8 * time.Second
)

// GeocodingError means the geocoder returned no candidates for a location.
// Callers turn it into a user-facing "couldn't find coordinates" message; it
// is distinct from transport failures.
type GeocodingError struct {
	Location string
}

func (e *GeocodingError) Error() string {
	return fmt.Sprintf("no geocoding candidates for %q", e.Location)
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Place struct {
	Name     string
	Vicinity string
	Rating   float64
}

// Client talks to the Google Maps Geocoding and Places APIs. The base URLs
// and HTTP client are overridable so tests can point it at an httptest
// server.
type Client struct {
	apiKey     string
	httpClient *http.Client
	geocodeURL string
	nearbyURL  string
}

func NewClient() *Client {
	return NewClientWithOptions(os.Getenv("GOOGLE_MAPS_API_KEY"), "", "", nil)
}

func NewClientWithOptions(apiKey, geoURL, nearbyURL string, httpClient *http.Client) *Client {
	if geoURL == "" {
		geoURL = geocodeURL
	}
	if nearbyURL == "" {
		nearbyURL = nearbySearchURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{apiKey: apiKey, httpClient: httpClient, geocodeURL: geoURL, nearbyURL: nearbyURL}
}

// Geocode resolves an address to coordinate candidates. An empty candidate
// list is reported as *GeocodingError.
func (c *Client) Geocode(ctx context.Context, address string) ([]LatLng, error) {
	params := url.Values{}
	params.Set("address", address)

	var payload geocodeResponse
	if err := c.get(ctx, c.geocodeURL, params, &payload); err != nil {
		return nil, err
	}
	if payload.Status == "ZERO_RESULTS" || len(payload.Results) == 0 {
		return nil, &GeocodingError{Location: address}
	}
	if payload.Status != "OK" {
		return nil, fmt.Errorf("geocode request failed: %s", payload.Status)
	}

	coords := make([]LatLng, 0, len(payload.Results))
	for _, res := range payload.Results {
		coords = append(coords, res.Geometry.Location)
	}
	return coords, nil
}

// NearbySearch returns places around loc within radiusMeters matching the
// keyword and place type. An empty result set is a normal outcome, not an
// error.
func (c *Client) NearbySearch(ctx context.Context, loc LatLng, radiusMeters int, keyword, placeType string) ([]Place, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", loc.Lat, loc.Lng))
	params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	params.Set("keyword", keyword)
	params.Set("type", placeType)

	var payload nearbyResponse
	if err := c.get(ctx, c.nearbyURL, params, &payload); err != nil {
		return nil, err
	}
	if payload.Status == "ZERO_RESULTS" {
		return nil, nil
	}
	if payload.Status != "OK" {
		return nil, fmt.Errorf("nearby search failed: %s", payload.Status)
	}

	result := make([]Place, 0, len(payload.Results))
	for _, r := range payload.Results {
		result = append(result, Place{Name: r.Name, Vicinity: r.Vicinity, Rating: r.Rating})
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, baseURL string, params url.Values, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("google maps api key is required")
	}
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build maps request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("maps request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("maps request returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode maps response: %w", err)
	}
	return nil
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location LatLng `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type nearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name     string  `json:"name"`
		Vicinity string  `json:"vicinity"`
		Rating   float64 `json:"rating"`
	} `json:"results"`
}
