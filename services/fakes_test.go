package services

import (
	"context"
	"sync"

	"github.com/healthsnap/summarizer/models"
)

type fakeGenerator struct {
	mu      sync.Mutex
	text    string
	err     error
	prompts []string
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func (f *fakeGenerator) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

type fakeSearch struct {
	result  string
	queries []string
}

func (f *fakeSearch) Search(ctx context.Context, query string) string {
	f.queries = append(f.queries, query)
	return f.result
}

type fakeSearchProvider struct {
	resp *models.SearchResponse
	err  error
}

func (f *fakeSearchProvider) Query(ctx context.Context, q string) (*models.SearchResponse, error) {
	return f.resp, f.err
}

func strPtr(s string) *string { return &s }
