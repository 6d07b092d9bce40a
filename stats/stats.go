// Package stats keeps aggregate usage counters per request kind and
// outcome. Core request data never persists; only these counters do. When no
// database is configured the recorder is nil and every method is a no-op, so
// handlers do not need to care.
package stats

import (
	"database/sql"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Recorder struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewRecorder(db *sql.DB, log zerolog.Logger) *Recorder {
	if db == nil {
		return nil
	}
	return &Recorder{db: db, log: log}
}

// Record stores one handled request. Best-effort: a storage failure is
// logged and never affects the request that triggered it.
func (r *Recorder) Record(kind, outcome string, took time.Duration) {
	if r == nil || r.db == nil {
		return
	}
	_, err := r.db.Exec(
		"INSERT INTO request_log (kind, outcome, duration_ms) VALUES (?, ?, ?)",
		kind, outcome, took.Milliseconds(),
	)
	if err != nil {
		r.log.Warn().Err(err).Str("kind", kind).Msg("failed to record request stats")
	}
}

type kindCount struct {
	Kind    string `json:"kind"`
	Outcome string `json:"outcome"`
	Count   int    `json:"count"`
}

// RegisterRoutes mounts GET /admin/stats, guarded by ADMIN_STATS_TOKEN.
func (r *Recorder) RegisterRoutes(rt *gin.Engine) {
	if r == nil {
		return
	}
	rt.GET("/admin/stats", requireAdminToken(), r.getStats)
}

func requireAdminToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := os.Getenv("ADMIN_STATS_TOKEN")
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if expected == "" || token != expected {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "admin token required"})
			c.Abort()
		}
	}
}

func (r *Recorder) getStats(c *gin.Context) {
	rows, err := r.db.Query(
		"SELECT kind, outcome, COUNT(*) FROM request_log GROUP BY kind, outcome ORDER BY kind, outcome")
	if err != nil {
		r.log.Error().Err(err).Msg("stats query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}
	defer rows.Close()

	var counts []kindCount
	total := 0
	for rows.Next() {
		var kc kindCount
		if err := rows.Scan(&kc.Kind, &kc.Outcome, &kc.Count); err != nil {
			continue
		}
		counts = append(counts, kc)
		total += kc.Count
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "by_kind": counts})
}
