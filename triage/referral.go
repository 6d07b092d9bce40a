package triage

import (
	"regexp"
	"strings"
)

// ReferralQuery is what the router needs to run a place search. Location is
// always non-empty; Condition may be empty when the user asked for a doctor
// without naming a complaint.
type ReferralQuery struct {
	Location  string
	Condition string
}

// Ordered location matchers; first match wins. All of them anchor on a
// provider word so that plain symptom descriptions never look like referral
// requests.
var locationPatterns = []*regexp.Regexp{
	// "therapists available in London", "doctors nearby Pune", "clinics close to Leeds"
	regexp.MustCompile(`(?i)\b(?:doctors?|therapists?|psychiatrists?|hospitals?|clinics?)\s+(?:available\s+)?(?:close\s*to|nearby|around|within|near|in|at)\s+([A-Za-z][A-Za-z\s]*)`),
	// "find me a good doctor for my area: <place>" style trailing phrases
	regexp.MustCompile(`(?i)\b(?:any|some)\s+(?:doctors?|therapists?|psychiatrists?|hospitals?|clinics?)\s+(?:close\s*to|nearby|around|near|in|at)\s+([A-Za-z][A-Za-z\s]*)`),
}

// Ordered condition matchers. The leading-phrase form ("skin doctors in ...")
// is tried before the "specialist for ..." form.
var conditionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:top|best|good)?\s*([A-Za-z][A-Za-z\s]*?)\s+(?:doctors?|therapists?|psychiatrists?|specialists?|clinics?)\s+(?:close\s*to|nearby|around|within|near|in|at)\b`),
	regexp.MustCompile(`(?i)\b(?:doctor|specialist|therapist)\s+(?:for|treating|who\s*treats)\s+([A-Za-z][A-Za-z\s]*)`),
}

// Filler words that the leading-phrase matcher can sweep up in front of the
// provider word ("find me a good psychiatrist near Pune" captures
// "find me a good"). A condition made only of these is no condition.
var conditionFiller = map[string]bool{
	"a": true, "an": true, "the": true, "any": true, "some": true,
	"find": true, "me": true, "i": true, "need": true, "want": true,
	"looking": true, "for": true, "good": true, "best": true, "top": true,
	"nearby": true, "please": true, "show": true, "get": true,
}

// ExtractReferral pulls a location phrase and an optional condition phrase
// out of free text. Without a location the condition is not actionable, so
// both come back empty in that case.
func ExtractReferral(text string) (location, condition string) {
	location = firstCapture(locationPatterns, text)
	if location == "" {
		return "", ""
	}
	condition = cleanCondition(firstCapture(conditionPatterns, text))
	return location, condition
}

func firstCapture(patterns []*regexp.Regexp, text string) string {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		for _, g := range m[1:] {
			if s := strings.TrimSpace(g); s != "" {
				return s
			}
		}
	}
	return ""
}

func cleanCondition(raw string) string {
	if raw == "" {
		return ""
	}
	var kept []string
	for _, w := range strings.Fields(raw) {
		if !conditionFiller[strings.ToLower(w)] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
