package docpipe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Runner lets tests stub the external OCR commands.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.Bytes(), errb.Bytes(), err
}

// Token is a single recognized word with its confidence in [0,1].
type Token struct {
	Text       string
	Confidence float64
}

type OCRConfig struct {
	Pdftoppm       string        // binary name or absolute path, default "pdftoppm"
	Tesseract      string        // default "tesseract"
	Language       string        // default "eng"
	DPI            int           // rasterization DPI, default 300
	MaxPages       int           // 0 = no limit
	CommandTimeout time.Duration // per-command limit, default 2m
}

// OCREngine rasterizes PDF pages and runs tesseract over page images. All
// intermediate artifacts live in a per-call temp dir that is removed on
// every exit path.
type OCREngine struct {
	cfg    OCRConfig
	runner Runner
	log    zerolog.Logger
}

func NewOCREngine(cfg OCRConfig, log zerolog.Logger) *OCREngine {
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = 2 * time.Minute
	}
	return &OCREngine{cfg: cfg, runner: execRunner{}, log: log}
}

// run executes one external command under the per-command deadline, so a
// hung binary can never stall an upload request.
func (e *OCREngine) run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.CommandTimeout)
	defer cancel()
	return e.runner.Run(ctx, name, args...)
}

// RasterizePDF renders each page of the PDF to a PNG under a fresh temp dir.
// The returned cleanup must be called (it is safe to call once, always).
func (e *OCREngine) RasterizePDF(ctx context.Context, data []byte) (pages []string, cleanup func(), err error) {
	tmpDir, err := os.MkdirTemp("", "medassist-ocr-*")
	if err != nil {
		return nil, func() {}, err
	}
	cleanup = func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			e.log.Warn().Err(rmErr).Str("dir", tmpDir).Msg("failed to remove ocr temp dir")
		}
	}

	src := filepath.Join(tmpDir, "doc.pdf")
	if err := os.WriteFile(src, data, 0o600); err != nil {
		return nil, cleanup, err
	}

	prefix := filepath.Join(tmpDir, "page")
	_, errb, err := e.run(ctx, e.cfg.Pdftoppm, "-r", strconv.Itoa(e.cfg.DPI), "-png", src, prefix)
	if err != nil {
		return nil, cleanup, fmt.Errorf("pdftoppm: %w: %s", err, truncate(string(errb), 512))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return nil, cleanup, fmt.Errorf("pdftoppm produced no page images")
	}
	return matches, cleanup, nil
}

// OCRPage runs tesseract in TSV mode over one page image and returns every
// recognized word with its confidence.
func (e *OCREngine) OCRPage(ctx context.Context, imagePath string) ([]Token, error) {
	out, errb, err := e.run(ctx, e.cfg.Tesseract, imagePath, "stdout", "-l", e.cfg.Language, "tsv")
	if err != nil {
		return nil, fmt.Errorf("tesseract: %w: %s", err, truncate(string(errb), 512))
	}
	return parseTesseractTSV(string(out)), nil
}

// Tesseract TSV columns:
// level page_num block_num par_num line_num word_num left top width height conf text
func parseTesseractTSV(tsv string) []Token {
	var tokens []Token
	for _, line := range strings.Split(tsv, "\n") {
		fields := strings.Split(line, "\t")
		if len(fields) < 12 {
			continue
		}
		conf, err := strconv.ParseFloat(fields[10], 64)
		if err != nil || conf < 0 {
			// header row, or a non-word structural row (conf -1)
			continue
		}
		text := strings.TrimSpace(fields[11])
		if text == "" {
			continue
		}
		tokens = append(tokens, Token{Text: text, Confidence: conf / 100})
	}
	return tokens
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
