package controller

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthsnap/summarizer/logger"
	"github.com/healthsnap/summarizer/models"
	"github.com/healthsnap/summarizer/services"
)

// VoiceController handles audio transcription for spoken notes.
type VoiceController struct {
	transcriber    services.Transcriber
	logger         logger.Logger
	maxUploadBytes int64
}

func NewVoiceController(transcriber services.Transcriber, log logger.Logger, maxUploadBytes int64) *VoiceController {
	return &VoiceController{
		transcriber:    transcriber,
		logger:         log,
		maxUploadBytes: maxUploadBytes,
	}
}

// Transcribe is the Gin handler for POST /api/transcribe-voice. The optional
// "language" query parameter is passed through to the provider.
func (c *VoiceController) Transcribe(ctx *gin.Context) {
	defer observe("transcribe", time.Now())
	log := requestLogger(ctx, c.logger)

	file, err := ctx.FormFile("audio")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No audio provided"})
		return
	}
	if c.maxUploadBytes > 0 && file.Size > c.maxUploadBytes {
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Audio too large"})
		return
	}

	f, err := file.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Could not read audio"})
		return
	}
	defer f.Close()

	audio, err := io.ReadAll(f)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Could not read audio"})
		return
	}

	transcript, err := c.transcriber.Transcribe(ctx.Request.Context(), audio, file.Header.Get("Content-Type"), ctx.Query("language"))
	if err != nil {
		log.Error("transcription failed", map[string]interface{}{"error": err})
		if errors.Is(err, services.ErrMissingAPIKey) {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Deepgram API key not set."})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Transcription failed."})
		return
	}

	ctx.JSON(http.StatusOK, models.TranscriptResponse{Transcript: transcript})
}
