package docpipe

import (
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Fixed vocabulary of medical terms worth flagging in an extracted report.
var medicalKeywords = []string{
	"paracetamol", "amoxicillin", "metformin", "insulin", "bp", "sugar",
	"hypertension", "prescription", "tablet", "capsule", "mg", "ml", "ecg",
	"cholesterol", "ultrasound", "ct", "mri", "dose", "diabetes", "report",
}

const fuzzyThreshold = 80

var tokenPattern = regexp.MustCompile(`[A-Za-z0-9/\-]+`)

// EnrichKeywords returns the vocabulary terms present in text, by exact
// substring match plus fuzzy partial-ratio matching of individual tokens.
// The result is sorted for determinism. Side-effect-free.
func EnrichKeywords(text string) []string {
	found := make(map[string]bool)
	lower := strings.ToLower(text)

	for _, kw := range medicalKeywords {
		if strings.Contains(lower, kw) {
			found[kw] = true
		}
	}

	for _, token := range tokenPattern.FindAllString(lower, -1) {
		if kw, score := bestPartialMatch(token, medicalKeywords); score >= fuzzyThreshold {
			found[kw] = true
		}
	}

	keywords := make([]string, 0, len(found))
	for kw := range found {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return keywords
}

func bestPartialMatch(token string, vocabulary []string) (string, int) {
	best, bestScore := "", -1
	for _, kw := range vocabulary {
		if score := partialRatio(token, kw); score > bestScore {
			best, bestScore = kw, score
		}
	}
	return best, bestScore
}

// partialRatio scores the best alignment of the shorter string against every
// equal-length window of the longer one, as a percentage. Mirrors the
// fuzzywuzzy partial_ratio semantics on top of plain Levenshtein distance.
func partialRatio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	best := 0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		window := longer[i : i+len(shorter)]
		dist := levenshtein.ComputeDistance(shorter, window)
		score := 100 * (len(shorter) - dist) / len(shorter)
		if score > best {
			best = score
		}
	}
	return best
}
