package docpipe

import (
	"strings"
	"testing"
)

func TestNativePDFTextExtractsTextLayer(t *testing.T) {
	data := minimalTextPDF(t, "CBC report dated 2024-03-01 with Hemoglobin 13.5 g/dL")

	text, err := nativePDFText(data)
	if err != nil {
		t.Fatalf("nativePDFText: %v", err)
	}
	if !strings.Contains(text, "Hemoglobin") {
		t.Errorf("text = %q, want the embedded text layer", text)
	}
}

// Malformed input must come back as an error, never a panic.
func TestNativePDFTextMalformedInput(t *testing.T) {
	for _, data := range [][]byte{
		[]byte("%PDF-1.4 but nothing else"),
		[]byte("not a pdf at all"),
		{},
	} {
		if _, err := nativePDFText(data); err == nil {
			t.Errorf("nativePDFText(%q) returned no error", data)
		}
	}
}
