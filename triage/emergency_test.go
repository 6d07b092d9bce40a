package triage

import "testing"

func TestDetectEmergencyMatchesCrisisPhrases(t *testing.T) {
	cases := []struct {
		text     string
		category EmergencyCategory
	}{
		{"I want to kill myself", CategorySuicidalIntent},
		{"i've been thinking about SUICIDE lately", CategorySuicidalIntent},
		{"sometimes I want to hurt myself", CategorySelfHarm},
		{"there is no reason to live", CategoryHopelessness},
		{"I can't go on", CategoryEmotionalCollapse},
		{"i'm giving up", CategoryGivingUp},
		{"I feel empty inside", CategoryDangerousSadness},
		{"nobody would miss me", CategorySelfHate},
		{"I wish I could disappear", CategoryDisappearance},
	}
	for _, tc := range cases {
		if !DetectEmergency(tc.text) {
			t.Errorf("DetectEmergency(%q) = false, want true", tc.text)
			continue
		}
		got, _ := MatchEmergencyCategory(tc.text)
		if got != tc.category {
			t.Errorf("MatchEmergencyCategory(%q) = %s, want %s", tc.text, got, tc.category)
		}
	}
}

func TestDetectEmergencyIgnoresBenignText(t *testing.T) {
	benign := []string{
		"I cut my finger while cutting vegetables",
		"my knee hurts after running",
		"find me a good doctor near Pune",
		"what is a normal hemoglobin level?",
		"",
	}
	for _, text := range benign {
		if DetectEmergency(text) {
			t.Errorf("DetectEmergency(%q) = true, want false", text)
		}
	}
}

// "cutting" must not trip the "cut myself" phrase: the patterns are bound to
// whole words.
func TestDetectEmergencyWordBoundaries(t *testing.T) {
	if DetectEmergency("I have been cutting back on sugar") {
		t.Error("partial word matched a self-harm phrase")
	}
	if !DetectEmergency("I might cut myself again") {
		t.Error("full self-harm phrase did not match")
	}
}
