package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/healthsnap/summarizer/logger"
)

// RouterOptions carries everything NewRouter mounts.
type RouterOptions struct {
	Notes       *NoteController
	Voice       *VoiceController
	Logger      logger.Logger
	CORSOrigins []string
	Provider    string
	Version     string
}

// NewRouter builds the Gin engine with middleware and all routes.
func NewRouter(opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CORS(opts.CORSOrigins))
	router.Use(RequestID(opts.Logger))
	router.Use(RequestLogger(opts.Logger))

	router.GET("/health", Health(opts.Provider, opts.Version))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/summarize-text", opts.Notes.SummarizeText)
		api.POST("/summarize-file", opts.Notes.SummarizeFile)
		api.POST("/ask", opts.Notes.Ask)
		api.POST("/transcribe-voice", opts.Voice.Transcribe)
		// Same handler, kept for older clients.
		api.POST("/transcribe-audio", opts.Voice.Transcribe)
	}

	return router
}
