package triage

import "strings"

// specialtyRules maps condition keywords to the specialist to search for.
// Iteration order is the declaration order and the first substring match
// wins, so broader keywords must stay below narrower ones that share text.
var specialtyRules = []struct {
	Keyword   string
	Specialty string
}{
	{"depression", "psychiatrist"},
	{"anxiety", "psychiatrist"},
	{"stress", "therapist"},
	{"mental", "psychologist"},
	{"suicide", "psychiatrist"},
	{"diabetes", "endocrinologist"},
	{"skin", "dermatologist"},
	{"rash", "dermatologist"},
	{"acne", "dermatologist"},
	{"heart", "cardiologist"},
	{"chest", "cardiologist"},
	{"blood", "hematologist"},
	{"eye", "ophthalmologist"},
	{"vision", "ophthalmologist"},
	{"stomach", "gastroenterologist"},
	{"cough", "general physician"},
	{"cold", "general physician"},
	{"fever", "general physician"},
	{"infection", "general physician"},
	{"thyroid", "endocrinologist"},
	{"bone", "orthopedic"},
	{"joint", "orthopedic"},
	{"teeth", "dentist"},
	{"dental", "dentist"},
	{"cancer", "oncologist"},
	{"allergy", "immunologist"},
}

// DefaultSpecialty is used when no condition was given or nothing matched.
const DefaultSpecialty = "doctor"

// ResolveSpecialty maps a condition phrase to a specialty. Deterministic:
// the same input always resolves to the same specialty.
func ResolveSpecialty(condition string) string {
	if condition == "" {
		return DefaultSpecialty
	}
	lower := strings.ToLower(condition)
	for _, rule := range specialtyRules {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Specialty
		}
	}
	return DefaultSpecialty
}
