package docpipe

import (
	"context"
	"strings"
)

const (
	// Anything shorter than this after extraction is unusable downstream.
	minReadableTextLen = 10

	// OCR tokens at or below this confidence are dropped.
	ocrConfidenceThreshold = 0.55
)

// Markers an extraction engine can leave in otherwise non-empty output; text
// carrying one is an extraction failure, not a document.
var extractionErrorMarkers = []string{
	"no text found",
	"extraction error",
}

// ExtractText produces plain text for a classified document using the
// per-kind strategy: native PDF text layer with a rasterize+OCR fallback,
// or vision transcription for images (DICOM files are rendered first).
// A result below the readable threshold is reported as ErrExtraction.
func (p *Pipeline) ExtractText(ctx context.Context, cls Classification, data []byte) (string, error) {
	var text string
	switch cls {
	case PDF:
		text = p.extractPDF(ctx, data)
	case RasterImage:
		text = p.transcribeImage(ctx, data)
	case Dicom:
		jpeg, err := renderDICOM(data)
		if err != nil {
			p.log.Warn().Err(err).Msg("dicom render for transcription failed")
			return "", ErrExtraction
		}
		text = p.transcribeImage(ctx, jpeg)
	default:
		return "", ErrUnsupportedFormat
	}

	if !looksReadable(text) {
		return "", ErrExtraction
	}
	return text, nil
}

func (p *Pipeline) extractPDF(ctx context.Context, data []byte) string {
	native, err := nativePDFText(data)
	if err == nil && len(strings.TrimSpace(native)) > minNativeTextLen {
		return native
	}
	if err != nil {
		p.log.Debug().Err(err).Msg("native pdf text extraction failed, trying ocr")
	}
	return p.ocrPDF(ctx, data)
}

// ocrPDF rasterizes each page and keeps OCR tokens above the confidence
// threshold, concatenated in page order.
func (p *Pipeline) ocrPDF(ctx context.Context, data []byte) string {
	pages, cleanup, err := p.ocr.RasterizePDF(ctx, data)
	defer cleanup()
	if err != nil {
		p.log.Warn().Err(err).Msg("pdf rasterization failed")
		return ""
	}

	var blocks []string
	for _, page := range pages {
		tokens, err := p.ocr.OCRPage(ctx, page)
		if err != nil {
			p.log.Warn().Err(err).Str("page", page).Msg("page ocr failed")
			continue
		}
		for _, tok := range tokens {
			if tok.Confidence > ocrConfidenceThreshold {
				blocks = append(blocks, tok.Text)
			}
		}
	}
	return strings.Join(blocks, " ")
}

func (p *Pipeline) transcribeImage(ctx context.Context, jpeg []byte) string {
	text, err := p.transcriber.TranscribeImage(ctx, jpeg)
	if err != nil {
		p.log.Warn().Err(err).Msg("image transcription failed")
		return ""
	}
	return text
}

func looksReadable(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minReadableTextLen {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, marker := range extractionErrorMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}
