package triage

import "testing"

func TestResolveSpecialty(t *testing.T) {
	cases := []struct {
		condition string
		want      string
	}{
		{"", "doctor"},
		{"a strange new symptom", "doctor"},
		{"skin", "dermatologist"},
		{"acne problem", "dermatologist"},
		{"depression", "psychiatrist"},
		{"heart trouble", "cardiologist"},
		{"THYROID", "endocrinologist"},
		{"dental pain", "dentist"},
	}
	for _, tc := range cases {
		if got := ResolveSpecialty(tc.condition); got != tc.want {
			t.Errorf("ResolveSpecialty(%q) = %q, want %q", tc.condition, got, tc.want)
		}
	}
}

// First declared keyword wins when several match.
func TestResolveSpecialtyFirstMatchWins(t *testing.T) {
	// "mental stress" contains both "stress" (therapist) and "mental"
	// (psychologist); "stress" is declared first.
	if got := ResolveSpecialty("mental stress"); got != "therapist" {
		t.Errorf("ResolveSpecialty(\"mental stress\") = %q, want %q", got, "therapist")
	}
}

func TestResolveSpecialtyDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		if got := ResolveSpecialty("blood sugar and diabetes"); got != ResolveSpecialty("blood sugar and diabetes") {
			t.Fatalf("resolution is not deterministic, got %q", got)
		}
	}
}
