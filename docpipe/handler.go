package docpipe

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// usageRecorder is satisfied by *stats.Recorder; nil-safe on its side.
type usageRecorder interface {
	Record(kind, outcome string, took time.Duration)
}

type Handler struct {
	pipeline *Pipeline
	stats    usageRecorder
}

func NewHandler(pipeline *Pipeline, stats usageRecorder) *Handler {
	return &Handler{pipeline: pipeline, stats: stats}
}

// Upload limits, configurable by env. Zero means unlimited.
func maxUploadFiles() int { return envInt("MAX_UPLOAD_FILES") }
func maxUploadMB() int    { return envInt("MAX_UPLOAD_MB") }

func envInt(key string) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

// AnalyzeReport handles POST /analyze_report: one uploaded document in, one
// plain-text analysis out.
func (h *Handler) AnalyzeReport(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if max := maxUploadMB(); max > 0 && fileHeader.Size > int64(max)<<20 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the size limit"})
		return
	}
	data, err := readUpload(fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return
	}

	start := time.Now()
	result, cls := h.pipeline.AnalyzeFile(c.Request.Context(), fileHeader.Filename, data)
	if h.stats != nil {
		h.stats.Record("report", cls.String(), time.Since(start))
	}
	c.String(http.StatusOK, result)
}

// AnalyzeTrends handles POST /analyze_trends: several uploaded documents in,
// a JSON trend report out.
func (h *Handler) AnalyzeTrends(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form is required"})
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one file is required"})
		return
	}
	if max := maxUploadFiles(); max > 0 && len(headers) > max {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many files"})
		return
	}
	maxBytes := int64(maxUploadMB()) << 20

	uploads := make([]Upload, 0, len(headers))
	for _, fh := range headers {
		if maxBytes > 0 && fh.Size > maxBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the size limit"})
			return
		}
		data, err := readUpload(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
			return
		}
		uploads = append(uploads, Upload{Filename: fh.Filename, Data: data})
	}

	start := time.Now()
	report := h.pipeline.AggregateTrends(c.Request.Context(), uploads)
	if h.stats != nil {
		h.stats.Record("trends", strconv.Itoa(len(report)), time.Since(start))
	}
	c.JSON(http.StatusOK, report)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
