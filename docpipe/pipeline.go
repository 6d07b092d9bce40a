// Package docpipe turns uploaded medical documents into patient-facing
// analysis: format detection, text extraction with an OCR fallback chain,
// keyword enrichment, LLM interpretation, diagnostic image analysis and
// multi-file biomarker trend aggregation.
package docpipe

import (
	"context"

	"github.com/rs/zerolog"
)

// Narrow collaborator interfaces, declared on the consumer side so tests can
// plug in fakes without touching the real SDK client.

// Vision analyzes a medical image against a prompt.
type Vision interface {
	AnalyzeImage(ctx context.Context, prompt string, jpeg []byte) (string, error)
}

// Transcriber returns the verbatim text of a document image.
type Transcriber interface {
	TranscribeImage(ctx context.Context, jpeg []byte) (string, error)
}

// Completer produces a patient-facing summary from extracted text.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// JSONExtractor returns structured JSON for an extraction instruction.
type JSONExtractor interface {
	ExtractJSON(ctx context.Context, instructions, text string) (string, error)
}

const defaultTrendWorkers = 4

type Pipeline struct {
	vision      Vision
	transcriber Transcriber
	completer   Completer
	extractor   JSONExtractor
	ocr         *OCREngine
	log         zerolog.Logger
	workers     int
}

func NewPipeline(vision Vision, transcriber Transcriber, completer Completer, extractor JSONExtractor, ocr *OCREngine, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		vision:      vision,
		transcriber: transcriber,
		completer:   completer,
		extractor:   extractor,
		ocr:         ocr,
		log:         log,
		workers:     defaultTrendWorkers,
	}
}
