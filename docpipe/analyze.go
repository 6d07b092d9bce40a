package docpipe

import (
	"context"
	"errors"
	"strings"
)

const (
	msgUnsupported = "Unsupported file type."
	msgUnreadable  = "Could not extract readable text."
)

// AnalyzeFile is the single-document entry point. Diagnostic imaging formats
// go to the vision analyzer; PDFs go through extraction, keyword enrichment
// and LLM interpretation. Every failure mode maps to a user-facing message.
// The file is classified exactly once; the classification is returned so
// callers can record it without re-detecting.
func (p *Pipeline) AnalyzeFile(ctx context.Context, filename string, data []byte) (string, Classification) {
	cls := Detect(filename, data)
	switch cls {
	case Dicom, RasterImage:
		return p.AnalyzeDiagnosticImage(ctx, cls, data), cls
	case PDF:
		text, err := p.ExtractText(ctx, cls, data)
		if err != nil {
			if errors.Is(err, ErrUnsupportedFormat) {
				return msgUnsupported, cls
			}
			return msgUnreadable, cls
		}
		if keywords := EnrichKeywords(text); len(keywords) > 0 {
			text += "\n\n[Detected Keywords]: " + strings.Join(keywords, ", ")
		}
		return p.InterpretReport(ctx, text), cls
	default:
		return msgUnsupported, cls
	}
}
