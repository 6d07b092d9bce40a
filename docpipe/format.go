package docpipe

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Classification is the detected document kind. Produced once per upload and
// never mutated afterwards.
type Classification int

const (
	Unsupported Classification = iota
	Dicom
	RasterImage
	PDF
)

func (c Classification) String() string {
	switch c {
	case Dicom:
		return "dicom"
	case RasterImage:
		return "image"
	case PDF:
		return "pdf"
	}
	return "unsupported"
}

var (
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
	pdfMagic  = []byte("%PDF")
	dicmMagic = []byte("DICM")
)

// Detect classifies a file from its byte signature first and its filename
// extension second, so mislabeled files still land in the right bucket when
// their content is recognizable.
func Detect(filename string, data []byte) Classification {
	// Signatures first: a mislabeled file with a recognizable signature is
	// still classified by its content.
	if isDicomBytes(data) {
		return Dicom
	}
	if bytes.HasPrefix(data, jpegMagic) || bytes.HasPrefix(data, pngMagic) {
		return RasterImage
	}
	if bytes.HasPrefix(data, pdfMagic) {
		return PDF
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".dcm", ".dicom":
		return Dicom
	case ".jpg", ".jpeg", ".png":
		return RasterImage
	case ".pdf":
		return PDF
	}
	return Unsupported
}

// DICOM files carry a 128-byte preamble followed by "DICM".
func isDicomBytes(data []byte) bool {
	return len(data) > 132 && bytes.Equal(data[128:132], dicmMagic)
}
