package docpipe

import "context"

const interpretationFallback = "Sorry, the report could not be interpreted right now. Please try again shortly."

// InterpretReport sends extracted text to the summarizer and returns a
// patient-facing summary. Service failure is converted to a fixed fallback
// here, at the boundary, so callers never see an error from this path.
func (p *Pipeline) InterpretReport(ctx context.Context, extractedText string) string {
	summary, err := p.completer.Complete(ctx, summarizerPrompt, extractedText)
	if err != nil {
		p.log.Error().Err(err).Msg("report interpretation failed")
		return interpretationFallback
	}
	return summary
}
