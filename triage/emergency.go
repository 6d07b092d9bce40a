package triage

import "regexp"

// EmergencyCategory tags the theme of a matched crisis phrase. The tag is
// not exposed to end users; it exists so each group can be tested on its own
// and extended without touching the others.
type EmergencyCategory string

const (
	CategorySuicidalIntent    EmergencyCategory = "suicidal_intent"
	CategorySelfHarm          EmergencyCategory = "self_harm"
	CategoryHopelessness      EmergencyCategory = "hopelessness"
	CategoryEmotionalCollapse EmergencyCategory = "emotional_collapse"
	CategoryGivingUp          EmergencyCategory = "giving_up"
	CategoryDangerousSadness  EmergencyCategory = "dangerous_sadness"
	CategorySelfHate          EmergencyCategory = "self_hate"
	CategoryDisappearance     EmergencyCategory = "disappearance"
)

// Patterns are matched case-insensitively with word boundaries on both ends,
// so "cutting" does not trip the "cut myself" phrase. The list is curated to
// over-match rather than under-match: a false positive costs an unnecessary
// reassurance message, a false negative costs a missed escalation.
var emergencyPatterns = []struct {
	Category EmergencyCategory
	Pattern  *regexp.Regexp
}{
	{CategorySuicidalIntent, regexp.MustCompile(`(?i)\b(?:suicide|suicidal|kill\s*myself|end\s*my\s*life|want\s*to\s*die|taking\s*my\s*life|ending\s*it\s*all|ready\s*to\s*die|die\s*by\s*suicide|hang\s*myself|jump\s*off|overdose|poison\s*myself|shoot\s*myself|bleed\s*out)\b`)},
	{CategorySelfHarm, regexp.MustCompile(`(?i)\b(?:self[- ]?harm|hurt\s*myself|cut\s*myself|thinking\s*about\s*ending\s*it|i'?m\s*scared\s*of\s*what\s*i'?ll\s*do|i\s*might\s*do\s*something\s*stupid|i\s*don'?t\s*trust\s*myself)\b`)},
	{CategoryHopelessness, regexp.MustCompile(`(?i)\b(?:no\s*reason\s*to\s*live|life\s*isn'?t\s*worth\s*living|nothing\s*matters\s*anymore|i\s*wish\s*it\s*would\s*all\s*end|why\s*am\s*i\s*alive|life\s*has\s*no\s*purpose|everything\s*is\s*pointless|i'?m\s*done\s*with\s*this\s*life|i\s*want\s*out\s*of\s*this\s*life|no\s*hope\s*left)\b`)},
	{CategoryEmotionalCollapse, regexp.MustCompile(`(?i)\b(?:i'?m\s*breaking\s*down|i'?m\s*falling\s*apart|i'?m\s*at\s*my\s*limit|i\s*can'?t\s*handle\s*this\s*anymore|i\s*can'?t\s*go\s*on|i'?m\s*done\s*fighting|i'?m\s*exhausted\s*with\s*life)\b`)},
	{CategoryGivingUp, regexp.MustCompile(`(?i)\b(?:i'?m\s*giving\s*up|i\s*give\s*up\s*on\s*everything|what'?s\s*the\s*point\s*anymore|why\s*should\s*i\s*try|i'?ve\s*lost\s*all\s*will\s*to\s*live)\b`)},
	{CategoryDangerousSadness, regexp.MustCompile(`(?i)\b(?:i'?m\s*in\s*so\s*much\s*pain|i'?m\s*drowning|i\s*feel\s*empty\s*inside|i\s*feel\s*numb|i'?m\s*completely\s*alone|i'?m\s*beyond\s*tired|i'?m\s*so\s*tired\s*of\s*everything)\b`)},
	{CategorySelfHate, regexp.MustCompile(`(?i)\b(?:i\s*hate\s*myself\s*so\s*much|i'?m\s*better\s*off\s*gone|nobody\s*would\s*miss\s*me|nobody\s*cares\s*if\s*i\s*die|i'?m\s*worthless|i'?m\s*a\s*burden)\b`)},
	{CategoryDisappearance, regexp.MustCompile(`(?i)\b(?:i\s*don'?t\s*want\s*to\s*exist|wish\s*i\s*could\s*disappear|i'?d\s*be\s*happier\s*gone|i\s*should\s*vanish)\b`)},
}

// DetectEmergency reports whether text contains a crisis phrase from any
// category. Pure and deterministic; no I/O.
func DetectEmergency(text string) bool {
	_, ok := MatchEmergencyCategory(text)
	return ok
}

// MatchEmergencyCategory returns the category of the first matching pattern
// group, in declaration order.
func MatchEmergencyCategory(text string) (EmergencyCategory, bool) {
	for _, p := range emergencyPatterns {
		if p.Pattern.MatchString(text) {
			return p.Category, true
		}
	}
	return "", false
}
