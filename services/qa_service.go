package services

import (
	"context"
	"strings"

	"github.com/healthsnap/summarizer/logger"
	"github.com/healthsnap/summarizer/metrics"
)

// QAService answers a patient's question about a note. The model answers
// first; a rejected or failed answer is replaced by a web search result and
// the caller is not told which source was used.
type QAService interface {
	Answer(ctx context.Context, note, question string) string
}

type qaServiceImpl struct {
	generator TextGenerator
	gate      AnswerGate
	search    FallbackSearch
	logger    logger.Logger
}

// NewQAService creates the question-answering orchestrator.
func NewQAService(generator TextGenerator, gate AnswerGate, search FallbackSearch, log logger.Logger) QAService {
	return &qaServiceImpl{
		generator: generator,
		gate:      gate,
		search:    search,
		logger:    log.With(map[string]interface{}{"component": "qa"}),
	}
}

func (s *qaServiceImpl) Answer(ctx context.Context, note, question string) string {
	raw, err := s.generator.Generate(ctx, BuildQAPrompt(note, question))
	answer := strings.TrimSpace(raw)

	verdict := s.answerOrFallback(answer, err)
	if verdict.Passed {
		metrics.AnswersServed.WithLabelValues(metrics.SourceModel).Inc()
		return answer
	}

	s.logger.Info("falling back to web search", map[string]interface{}{
		"provider":   s.generator.Name(),
		"violations": verdict.Violations,
	})
	metrics.AnswersServed.WithLabelValues(metrics.SourceSearch).Inc()
	return s.search.Search(ctx, question)
}

// answerOrFallback folds a provider failure into the gate verdict so both
// lead to the same search path.
func (s *qaServiceImpl) answerOrFallback(answer string, err error) GateResult {
	if err != nil {
		s.logger.Error("question answering failed", map[string]interface{}{
			"provider": s.generator.Name(),
			"error":    err,
		})
		return GateResult{Passed: false, Violations: []string{"provider_error"}}
	}
	return s.gate.Evaluate(answer)
}
