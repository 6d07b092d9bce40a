package docpipe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// A PDF without a usable text layer must go through the rasterize+OCR chain,
// and only tokens above the confidence threshold survive.
func TestExtractTextPDFFallsBackToOCR(t *testing.T) {
	runner := &stubRunner{
		pages: 1,
		tsv: strings.Join([]string{
			"level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext",
			"5\t1\t1\t1\t1\t1\t0\t0\t1\t1\t96.5\tHemoglobin",
			"5\t1\t1\t1\t1\t2\t0\t0\t1\t1\t91\t13.5",
			"5\t1\t1\t1\t1\t3\t0\t0\t1\t1\t42\tsmudge",
		}, "\n"),
	}
	engine := newStubEngine(t, runner, OCRConfig{})
	p := NewPipeline(nil, nil, nil, nil, engine, zerolog.Nop())

	text, err := p.ExtractText(context.Background(), PDF, []byte("%PDF-1.4 scanned garbage, no text layer"))
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if runner.pdftoppms != 1 {
		t.Errorf("pdftoppm ran %d times, want 1", runner.pdftoppms)
	}
	if !strings.Contains(text, "Hemoglobin") || !strings.Contains(text, "13.5") {
		t.Errorf("text = %q, missing high-confidence tokens", text)
	}
	if strings.Contains(text, "smudge") {
		t.Errorf("text = %q, low-confidence token kept", text)
	}
}

// minimalTextPDF assembles a one-page PDF with a real text layer, tracking
// byte offsets so the xref table is valid. text must not contain parentheses
// or backslashes.
func minimalTextPDF(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	offsets := make([]int, 6)
	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	buf.WriteString("%PDF-1.4\n")
	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	writeObj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
		"/Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>")
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	writeObj(4, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	writeObj(5, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xref := buf.Len()
	buf.WriteString("xref\n0 6\n")
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)
	return buf.Bytes()
}

// A PDF with a real text layer must be served natively, without touching the
// OCR binaries.
func TestExtractTextPDFNativeTextSkipsOCR(t *testing.T) {
	data := minimalTextPDF(t, "Hemoglobin 13.5 g/dL and Total Cholesterol 180 mg/dL measured on 2024-03-01")
	runner := &stubRunner{pages: 1}
	engine := newStubEngine(t, runner, OCRConfig{})
	p := NewPipeline(nil, nil, nil, nil, engine, zerolog.Nop())

	text, err := p.ExtractText(context.Background(), PDF, data)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if !strings.Contains(text, "Hemoglobin") || !strings.Contains(text, "Cholesterol") {
		t.Errorf("native text layer lost: %q", text)
	}
	if len(strings.TrimSpace(text)) <= minNativeTextLen {
		t.Errorf("native text too short: %q", text)
	}
	if runner.pdftoppms != 0 {
		t.Errorf("pdftoppm ran %d times for a native-text pdf, want 0", runner.pdftoppms)
	}
}

func TestExtractTextUnsupported(t *testing.T) {
	p := NewPipeline(nil, nil, nil, nil, nil, zerolog.Nop())
	if _, err := p.ExtractText(context.Background(), Unsupported, []byte("x")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExtractTextRejectsUnreadableResults(t *testing.T) {
	cases := []struct {
		name  string
		reply string
	}{
		{"too short", "hi"},
		{"error marker", "No text found in the document image."},
		{"whitespace only", "        \n\t  "},
	}
	for _, tc := range cases {
		transcriber := transcriberFunc(func(_ context.Context, _ []byte) (string, error) {
			return tc.reply, nil
		})
		p := NewPipeline(nil, transcriber, nil, nil, nil, zerolog.Nop())
		if _, err := p.ExtractText(context.Background(), RasterImage, []byte{0xFF, 0xD8}); !errors.Is(err, ErrExtraction) {
			t.Errorf("%s: err = %v, want ErrExtraction", tc.name, err)
		}
	}
}

func TestExtractTextDicomRenderFailure(t *testing.T) {
	p := NewPipeline(nil, nil, nil, nil, nil, zerolog.Nop())
	if _, err := p.ExtractText(context.Background(), Dicom, []byte("not a dicom file")); !errors.Is(err, ErrExtraction) {
		t.Errorf("err = %v, want ErrExtraction", err)
	}
}
