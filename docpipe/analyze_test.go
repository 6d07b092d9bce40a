package docpipe

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

// AnalyzeFile classifies once and hands the classification back with the
// result, so callers never have to detect the format a second time.
func TestAnalyzeFileReturnsClassification(t *testing.T) {
	vision := visionFunc(func(_ context.Context, _ string, _ []byte) (string, error) {
		return "📋 Findings: normal study.", nil
	})
	p := NewPipeline(vision, nil, nil, nil, nil, zerolog.Nop())

	out, cls := p.AnalyzeFile(context.Background(), "scan.jpg", []byte{0xFF, 0xD8, 0xFF, 0xE0})
	if cls != RasterImage {
		t.Errorf("classification = %v, want RasterImage", cls)
	}
	if out != "📋 Findings: normal study." {
		t.Errorf("out = %q", out)
	}

	out, cls = p.AnalyzeFile(context.Background(), "notes.txt", []byte("plain text"))
	if cls != Unsupported {
		t.Errorf("classification = %v, want Unsupported", cls)
	}
	if out != msgUnsupported {
		t.Errorf("out = %q, want %q", out, msgUnsupported)
	}
}
