package controller

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthsnap/summarizer/logger"
	"github.com/healthsnap/summarizer/metrics"
	"github.com/healthsnap/summarizer/models"
	"github.com/healthsnap/summarizer/services"
)

// NoteController handles the summarization and question-answering endpoints.
// Input validation happens here; the services assume non-empty text.
type NoteController struct {
	summarizer     services.SummarizationService
	qa             services.QAService
	logger         logger.Logger
	maxUploadBytes int64
}

// NewNoteController injects the orchestrators.
func NewNoteController(summarizer services.SummarizationService, qa services.QAService, log logger.Logger, maxUploadBytes int64) *NoteController {
	return &NoteController{
		summarizer:     summarizer,
		qa:             qa,
		logger:         log,
		maxUploadBytes: maxUploadBytes,
	}
}

// SummarizeText is the Gin handler for POST /api/summarize-text.
func (c *NoteController) SummarizeText(ctx *gin.Context) {
	defer observe("summarize", time.Now())

	var req models.SummarizeTextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Note) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No text provided"})
		return
	}

	response := c.summarizer.SummarizeWithFollowUps(ctx.Request.Context(), req.Note, req.Language)
	ctx.JSON(http.StatusOK, response)
}

// SummarizeFile is the Gin handler for POST /api/summarize-file. The upload
// is written to a temporary file, its text extracted, and the file removed.
func (c *NoteController) SummarizeFile(ctx *gin.Context) {
	defer observe("summarize_file", time.Now())
	log := requestLogger(ctx, c.logger)

	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	if c.maxUploadBytes > 0 && file.Size > c.maxUploadBytes {
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}
	if !services.IsSupportedFile(file.Filename) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type: " + filepath.Ext(file.Filename)})
		return
	}

	tmp, err := os.CreateTemp("", "note-*"+strings.ToLower(filepath.Ext(file.Filename)))
	if err != nil {
		log.Error("could not create temp file", map[string]interface{}{"error": err})
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warn("could not remove temp file", map[string]interface{}{"path": tmpPath, "error": err})
		}
	}()

	if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
		log.Error("could not save upload", map[string]interface{}{"error": err})
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}

	text, err := services.ExtractTextFromFile(tmpPath)
	if err != nil {
		log.Error("text extraction failed", map[string]interface{}{
			"filename": file.Filename,
			"error":    err,
		})
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if text == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No text found in file"})
		return
	}

	lang := models.Language(ctx.PostForm("language"))
	response := c.summarizer.SummarizeWithFollowUps(ctx.Request.Context(), text, lang)
	ctx.JSON(http.StatusOK, response)
}

// Ask is the Gin handler for POST /api/ask.
func (c *NoteController) Ask(ctx *gin.Context) {
	defer observe("answer", time.Now())

	var req models.AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Note) == "" || strings.TrimSpace(req.Question) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No text provided"})
		return
	}

	answer := c.qa.Answer(ctx.Request.Context(), req.Note, req.Question)
	ctx.JSON(http.StatusOK, models.AnswerResponse{Answer: answer})
}

func observe(operation string, start time.Time) {
	metrics.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
