package services

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaGenerator runs prompts against a local Ollama server through
// LangChainGo. The default model is the llama3.1 8B the summaries were
// originally tuned on.
type OllamaGenerator struct {
	llm   llms.Model
	model string
}

// NewOllamaGenerator creates a generator talking to the Ollama server at serverURL.
func NewOllamaGenerator(serverURL, model string) (*OllamaGenerator, error) {
	llm, err := ollama.New(ollama.WithServerURL(serverURL), ollama.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return &OllamaGenerator{llm: llm, model: model}, nil
}

func (g *OllamaGenerator) Name() string {
	return "ollama"
}

func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(0.2))
	if err != nil {
		return "", newProviderError(g.Name(), "generate", 0, err)
	}
	return text, nil
}
