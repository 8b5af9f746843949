package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/healthsnap/summarizer/logger"
	"github.com/healthsnap/summarizer/models"
)

const (
	// NoSummaryMessage is returned when the provider produced no text.
	NoSummaryMessage = "No summary generated."
	// SummaryErrorMessage is returned when the provider call failed.
	SummaryErrorMessage = "An error occurred while summarizing the document."
)

var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// SummarizationService turns a clinical note into a patient-friendly summary.
// Summarize always returns a displayable string; the sentinel messages above
// are not distinguishable from model output by the caller.
type SummarizationService interface {
	Summarize(ctx context.Context, note string, lang models.Language) string
	SummarizeWithFollowUps(ctx context.Context, note string, lang models.Language) *models.SummaryResponse
}

type summarizationServiceImpl struct {
	generator TextGenerator
	logger    logger.Logger
	now       func() time.Time
}

// NewSummarizationService creates the summarization orchestrator.
func NewSummarizationService(generator TextGenerator, log logger.Logger) SummarizationService {
	return &summarizationServiceImpl{
		generator: generator,
		logger:    log.With(map[string]interface{}{"component": "summarizer"}),
		now:       time.Now,
	}
}

func (s *summarizationServiceImpl) Summarize(ctx context.Context, note string, lang models.Language) string {
	lang = lang.Normalize()
	prompt := BuildSummaryPrompt(note, lang)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("summarization failed", map[string]interface{}{
			"provider": s.generator.Name(),
			"language": string(lang),
			"error":    err,
		})
	}
	summary := summaryOrFallback(raw, err)
	s.logger.Info("summary generated", map[string]interface{}{
		"provider":   s.generator.Name(),
		"language":   string(lang),
		"noteLength": len(note),
		"length":     len(summary),
	})
	return summary
}

func (s *summarizationServiceImpl) SummarizeWithFollowUps(ctx context.Context, note string, lang models.Language) *models.SummaryResponse {
	summary := s.Summarize(ctx, note, lang)
	return &models.SummaryResponse{
		Summary:   summary,
		FollowUps: BuildFollowUps(summary, s.now()),
	}
}

// summaryOrFallback maps one provider outcome to the string the caller sees.
func summaryOrFallback(raw string, err error) string {
	if err != nil {
		return SummaryErrorMessage
	}
	if strings.TrimSpace(raw) == "" {
		return NoSummaryMessage
	}
	return CleanSummary(raw)
}

// CleanSummary unwraps **bold** spans and trims surrounding whitespace.
func CleanSummary(text string) string {
	return strings.TrimSpace(boldPattern.ReplaceAllString(text, "$1"))
}
