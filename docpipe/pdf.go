package docpipe

import (
	"bytes"
	"fmt"
	"strings"

	pdf "rsc.io/pdf"
)

// Scanned PDFs often decode to a handful of stray characters; anything at or
// below this length is treated as "no usable text layer" and sent to OCR.
const minNativeTextLen = 20

// nativePDFText pulls the embedded text layer out of a PDF. It returns the
// concatenated page text; an empty or near-empty result is not an error
// here, the caller decides whether to fall back to OCR. The parser panics on
// malformed files, so the panic is converted to an error.
func nativePDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var buf strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}
		for _, t := range p.Content().Text {
			buf.WriteString(t.S)
			buf.WriteString(" ")
		}
		buf.WriteString("\n")
	}
	return buf.String(), nil
}
