package places

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	searchRadiusMeters = 5000
	maxResults         = 5
)

// Search geocodes location, looks for the given specialty nearby and formats
// the top results. Empty place results produce a friendly "none found"
// message; only geocoding and transport problems surface as errors.
func (c *Client) Search(ctx context.Context, location, specialty string) (string, error) {
	coords, err := c.Geocode(ctx, location)
	if err != nil {
		return "", err
	}

	query := fmt.Sprintf("%s in %s", specialty, location)
	results, err := c.NearbySearch(ctx, coords[0], searchRadiusMeters, query, "doctor")
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return fmt.Sprintf("😕 No %ss found near %s.", specialty, location), nil
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	title := cases.Title(language.English).String(specialty)
	var b strings.Builder
	fmt.Fprintf(&b, "🩺 Top %ss near %s:\n", title, location)
	for _, p := range results {
		name := p.Name
		if name == "" {
			name = "Unknown"
		}
		addr := p.Vicinity
		if addr == "" {
			addr = "Address not available"
		}
		rating := "N/A"
		if p.Rating > 0 {
			rating = fmt.Sprintf("%.1f", p.Rating)
		}
		fmt.Fprintf(&b, "\n- %s (%s⭐)\n  📍 %s\n", name, rating, addr)
	}
	return b.String(), nil
}
