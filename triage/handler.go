package triage

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// usageRecorder is satisfied by *stats.Recorder; nil-safe on its side.
type usageRecorder interface {
	Record(kind, outcome string, took time.Duration)
}

type Handler struct {
	router *Router
	stats  usageRecorder
}

func NewHandler(router *Router, stats usageRecorder) *Handler {
	return &Handler{router: router, stats: stats}
}

// Ask handles POST /ask: one free-text message in, one plain-text answer
// out. All routing lives in the state machine.
func (h *Handler) Ask(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	start := time.Now()
	out, outcome := h.router.Respond(c.Request.Context(), req.Message)
	if h.stats != nil {
		h.stats.Record("ask", string(outcome), time.Since(start))
	}
	c.String(http.StatusOK, out)
}
