package docpipe

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BiomarkerRecord is one named, unit-qualified numeric measurement. Value is
// always numeric: non-numeric entries are dropped at extraction time and
// never stored.
type BiomarkerRecord struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// TrendEntry holds one file's extracted biomarkers.
type TrendEntry struct {
	Filename string            `json:"filename"`
	Date     *string           `json:"date"`
	Metrics  []BiomarkerRecord `json:"metrics"`
}

// Structural validation of the extraction payload. Value types stay loose
// here ("value" may arrive as a number or a numeric string); coercion and
// the numeric-only rule are applied while parsing.
const biomarkerSchema = `{
	"type": "object",
	"properties": {
		"date": {"type": ["string", "null"]},
		"metrics": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"name": {"type": "string"},
					"unit": {"type": "string"}
				},
				"required": ["name", "value"]
			}
		}
	},
	"required": ["metrics"]
}`

var compiledBiomarkerSchema = jsonschema.MustCompileString("biomarkers.json", biomarkerSchema)

// ExtractBiomarkers asks the structured-extraction service for the report
// date and quantitative metrics in text. On any service, validation or parse
// failure it returns an empty result rather than an error: one bad file must
// never fail a whole trend batch.
func (p *Pipeline) ExtractBiomarkers(ctx context.Context, text string) TrendEntry {
	empty := TrendEntry{Metrics: []BiomarkerRecord{}}

	raw, err := p.extractor.ExtractJSON(ctx, biomarkerInstructions, text)
	if err != nil {
		p.log.Warn().Err(err).Msg("biomarker extraction service failed")
		return empty
	}
	payload := stripMarkdownFences(raw)

	var generic any
	if err := json.Unmarshal([]byte(payload), &generic); err != nil {
		p.log.Warn().Err(err).Msg("biomarker payload is not valid json")
		return empty
	}
	if err := compiledBiomarkerSchema.Validate(generic); err != nil {
		p.log.Warn().Err(err).Msg("biomarker payload failed schema validation")
		return empty
	}

	var parsed struct {
		Date    *string `json:"date"`
		Metrics []struct {
			Name  string          `json:"name"`
			Value json.RawMessage `json:"value"`
			Unit  string          `json:"unit"`
		} `json:"metrics"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		p.log.Warn().Err(err).Msg("biomarker payload decode failed")
		return empty
	}

	entry := TrendEntry{Date: normalizeDate(parsed.Date), Metrics: []BiomarkerRecord{}}
	for _, m := range parsed.Metrics {
		value, ok := coerceNumeric(m.Value)
		if !ok || strings.TrimSpace(m.Name) == "" {
			// malformed entries are discarded silently to keep the schema strict
			continue
		}
		entry.Metrics = append(entry.Metrics, BiomarkerRecord{
			Name:  strings.TrimSpace(m.Name),
			Value: value,
			Unit:  strings.TrimSpace(m.Unit),
		})
	}
	return entry
}

// coerceNumeric accepts JSON numbers plus numeric strings (with stray
// comparison symbols removed); everything else is rejected.
func coerceNumeric(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	s = strings.TrimSpace(strings.Trim(s, "<>≤≥ "))
	num, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

func normalizeDate(date *string) *string {
	if date == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*date)
	if trimmed == "" || strings.EqualFold(trimmed, "null") {
		return nil
	}
	return &trimmed
}

// stripMarkdownFences removes ```json fences some models wrap payloads in.
func stripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
