package docpipe

import (
	"bytes"
	"testing"
)

func dicomBytes() []byte {
	data := make([]byte, 140)
	copy(data[128:], "DICM")
	return data
}

func TestDetectBySignature(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		data     []byte
		want     Classification
	}{
		{"pdf magic", "report.pdf", []byte("%PDF-1.4 ..."), PDF},
		{"jpeg magic", "scan.jpg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 1, 2}, RasterImage},
		{"png magic", "scan.png", append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}, 1, 2), RasterImage},
		{"dicom preamble", "study.dcm", dicomBytes(), Dicom},
		{"unknown", "notes.txt", []byte("just some text"), Unsupported},
	}
	for _, tc := range cases {
		if got := Detect(tc.filename, tc.data); got != tc.want {
			t.Errorf("%s: Detect = %v, want %v", tc.name, got, tc.want)
		}
	}
}

// A recognizable signature beats a misleading extension.
func TestDetectSignatureBeatsExtension(t *testing.T) {
	if got := Detect("mislabeled.jpg", []byte("%PDF-1.7 content")); got != PDF {
		t.Errorf("Detect(pdf bytes named .jpg) = %v, want PDF", got)
	}
	if got := Detect("mislabeled.pdf", dicomBytes()); got != Dicom {
		t.Errorf("Detect(dicom bytes named .pdf) = %v, want Dicom", got)
	}
}

// Without a signature the extension decides.
func TestDetectByExtension(t *testing.T) {
	plain := []byte("no magic here")
	cases := []struct {
		filename string
		want     Classification
	}{
		{"study.DCM", Dicom},
		{"study.dicom", Dicom},
		{"photo.JPeG", RasterImage},
		{"report.pdf", PDF},
		{"report", Unsupported},
	}
	for _, tc := range cases {
		if got := Detect(tc.filename, plain); got != tc.want {
			t.Errorf("Detect(%q) = %v, want %v", tc.filename, got, tc.want)
		}
	}
}

func TestIsDicomBytesTooShort(t *testing.T) {
	if isDicomBytes(bytes.Repeat([]byte{0}, 100)) {
		t.Error("short buffer misdetected as dicom")
	}
}
