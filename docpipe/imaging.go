package docpipe

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

const reportMarker = "📋"

const imagingAnalysisError = "⚠️ Imaging analysis error: the diagnostic service is unavailable right now. Please try again shortly."

// AnalyzeDiagnosticImage renders the upload to a JPEG (decoding DICOM pixel
// data when needed) and asks the vision service for a structured findings
// report. Service failures come back as a user-facing message; this path
// never propagates an error to the HTTP handler.
func (p *Pipeline) AnalyzeDiagnosticImage(ctx context.Context, cls Classification, data []byte) string {
	var (
		img []byte
		err error
	)
	switch cls {
	case Dicom:
		img, err = renderDICOM(data)
	case RasterImage:
		img = data
	default:
		return imagingAnalysisError
	}
	if err != nil {
		p.log.Warn().Err(err).Msg("dicom render failed")
		return imagingAnalysisError
	}

	report, err := p.vision.AnalyzeImage(ctx, imagingPrompt, img)
	if err != nil {
		p.log.Error().Err(err).Msg("vision analysis failed")
		return imagingAnalysisError
	}
	if !strings.HasPrefix(report, reportMarker) {
		report = reportMarker + " Analysis Report\n\n" + report
	}
	return report
}

// renderDICOM decodes the first frame of pixel data, normalizes intensity to
// an 8-bit range and encodes the result as JPEG. Everything stays in memory;
// there is no temp artifact to clean up on this path.
func renderDICOM(data []byte) ([]byte, error) {
	ds, err := dicom.Parse(bytes.NewReader(data), int64(len(data)), nil)
	if err != nil {
		return nil, fmt.Errorf("parse dicom: %w", err)
	}
	el, err := ds.FindElementByTag(tag.PixelData)
	if err != nil {
		return nil, fmt.Errorf("dicom has no pixel data: %w", err)
	}
	info := dicom.MustGetPixelDataInfo(el.Value)
	if len(info.Frames) == 0 {
		return nil, fmt.Errorf("dicom has no frames")
	}
	frame, err := info.Frames[0].GetNativeFrame()
	if err != nil {
		return nil, fmt.Errorf("decode pixel frame: %w", err)
	}
	if frame.Rows == 0 || frame.Cols == 0 || len(frame.Data) == 0 {
		return nil, fmt.Errorf("dicom frame is empty")
	}

	// Window the raw intensities into 0..255.
	minV, maxV := frame.Data[0][0], frame.Data[0][0]
	for _, px := range frame.Data {
		if px[0] < minV {
			minV = px[0]
		}
		if px[0] > maxV {
			maxV = px[0]
		}
	}
	span := maxV - minV
	if span == 0 {
		span = 1
	}

	gray := image.NewGray(image.Rect(0, 0, frame.Cols, frame.Rows))
	for i, px := range frame.Data {
		gray.Pix[i] = uint8(255 * (px[0] - minV) / span)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, gray, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
