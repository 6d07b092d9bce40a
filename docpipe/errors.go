package docpipe

import "errors"

var (
	// ErrUnsupportedFormat means the upload matched no known signature or
	// extension. Surfaced as a user message, never retried.
	ErrUnsupportedFormat = errors.New("unsupported file type")

	// ErrExtraction means every extraction strategy produced too little
	// readable text. Downstream enrichment must not run on such a result.
	ErrExtraction = errors.New("could not extract readable text")
)
