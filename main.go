package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"medassist-backend/ai"
	"medassist-backend/conn"
	"medassist-backend/docpipe"
	"medassist-backend/migrations"
	"medassist-backend/places"
	"medassist-backend/stats"
	"medassist-backend/telephony"
	"medassist-backend/triage"
)

// requestID tags every request so log lines from concurrent uploads can be
// correlated. An incoming X-Request-ID is honored, otherwise one is minted.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func main() {
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("LOG_LEVEL") == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Stats are optional: without a DB the recorder stays nil and every
	// Record call is a no-op.
	var recorder *stats.Recorder
	if os.Getenv("DB_HOST") != "" {
		db, err := conn.NewMySQL()
		if err != nil {
			log.Warn().Err(err).Msg("mysql unavailable, stats disabled")
		} else if err := migrations.Migrate(db); err != nil {
			log.Warn().Err(err).Msg("migrations failed, stats disabled")
		} else {
			recorder = stats.NewRecorder(db, log)
		}
	}

	aiClient := ai.NewClient()
	mapsClient := places.NewClient()

	// A nil *TwilioCaller must stay a nil interface inside the router.
	var routerCaller triage.Caller
	if caller := telephony.NewCallerFromEnv(log); caller != nil {
		routerCaller = caller
	}
	router := triage.NewRouter(aiClient, mapsClient, routerCaller, log)
	askHandler := triage.NewHandler(router, recorder)

	ocr := docpipe.NewOCREngine(docpipe.OCRConfig{
		Pdftoppm:  os.Getenv("PDFTOPPM_BIN"),
		Tesseract: os.Getenv("TESSERACT_BIN"),
	}, log)
	pipeline := docpipe.NewPipeline(aiClient, aiClient, aiClient, aiClient, ocr, log)
	docsHandler := docpipe.NewHandler(pipeline, recorder)

	r := gin.Default()
	r.Use(requestID())
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.POST("/ask", askHandler.Ask)
	r.POST("/analyze_report", docsHandler.AnalyzeReport)
	r.POST("/analyze_trends", docsHandler.AnalyzeTrends)
	recorder.RegisterRoutes(r)

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	log.Info().Str("addr", addr).Msg("starting medassist backend")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
