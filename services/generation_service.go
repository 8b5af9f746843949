package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/healthsnap/summarizer/config"
	"github.com/healthsnap/summarizer/metrics"
)

// TextGenerator turns one fully formed prompt into text. Implementations keep
// no conversation state between calls. A provider that answers with nothing
// returns "", nil; failures are returned as *ProviderError.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// NewTextGenerator builds the generator selected by cfg.GenerationProvider.
func NewTextGenerator(ctx context.Context, cfg *config.Config) (TextGenerator, error) {
	var (
		gen TextGenerator
		err error
	)
	switch cfg.GenerationProvider {
	case config.ProviderGemini:
		gen, err = NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GenerationModel)
	case config.ProviderOpenAI:
		gen, err = NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.GenerationModel)
	case config.ProviderAnthropic:
		gen, err = NewAnthropicGenerator(cfg.AnthropicAPIKey, cfg.GenerationModel)
	case config.ProviderOllama:
		gen, err = NewOllamaGenerator(cfg.OllamaURL, cfg.GenerationModel)
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.GenerationProvider)
	}
	if err != nil {
		return nil, fmt.Errorf("could not create %s generator: %w", cfg.GenerationProvider, err)
	}
	return instrument(gen), nil
}

// instrumentedGenerator records one metric sample per call.
type instrumentedGenerator struct {
	next TextGenerator
}

func instrument(gen TextGenerator) TextGenerator {
	return &instrumentedGenerator{next: gen}
}

func (g *instrumentedGenerator) Name() string {
	return g.next.Name()
}

func (g *instrumentedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := g.next.Generate(ctx, prompt)
	outcome := metrics.OutcomeSuccess
	switch {
	case err != nil:
		outcome = metrics.OutcomeFailure
	case strings.TrimSpace(text) == "":
		outcome = metrics.OutcomeEmpty
	}
	metrics.GenerationRequests.WithLabelValues(g.next.Name(), outcome).Inc()
	return text, err
}
