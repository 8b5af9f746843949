package services

import (
	"context"
	"html"
	"strings"

	"github.com/healthsnap/summarizer/logger"
	"github.com/healthsnap/summarizer/metrics"
	"github.com/healthsnap/summarizer/models"
)

const (
	// SearchFailedMessage is returned when the search provider fails.
	SearchFailedMessage = "Google search failed."
	// NoSnippetMessage replaces an empty snippet.
	NoSnippetMessage = "Here are some helpful links:"

	maxSearchLinks = 3
)

// FallbackSearch answers a question from the web when the model's answer is
// rejected. It never fails: provider errors become SearchFailedMessage.
type FallbackSearch interface {
	Search(ctx context.Context, query string) string
}

type fallbackSearchImpl struct {
	provider SearchProvider
	logger   logger.Logger
}

// NewFallbackSearch wraps a search provider.
func NewFallbackSearch(provider SearchProvider, log logger.Logger) FallbackSearch {
	return &fallbackSearchImpl{
		provider: provider,
		logger:   log.With(map[string]interface{}{"component": "fallback_search"}),
	}
}

func (s *fallbackSearchImpl) Search(ctx context.Context, query string) string {
	resp, err := s.provider.Query(ctx, query)
	if err != nil {
		metrics.SearchRequests.WithLabelValues(metrics.OutcomeFailure).Inc()
		s.logger.Error("web search failed", map[string]interface{}{
			"error": err,
		})
		return SearchFailedMessage
	}
	metrics.SearchRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()
	if resp.Error != "" {
		s.logger.Warn("web search returned a notice", map[string]interface{}{
			"notice": resp.Error,
		})
	}

	result := ExtractSearchResult(resp)
	s.logger.Info("web search completed", map[string]interface{}{
		"linkCount":  len(result.Links),
		"hasSnippet": result.Snippet != NoSnippetMessage,
	})
	return FormatSearchResult(result)
}

// ExtractSearchResult applies the snippet priority (answer box, then first
// organic result) and keeps the renderable links among the first three
// organic results.
func ExtractSearchResult(resp *models.SearchResponse) models.SearchResult {
	var snippet string
	switch {
	case resp.AnswerBox != nil && resp.AnswerBox.Snippet != nil:
		snippet = *resp.AnswerBox.Snippet
	case len(resp.OrganicResults) > 0:
		snippet = resp.OrganicResults[0].Snippet
	}
	snippet = strings.TrimSpace(snippet)
	if snippet == "" {
		snippet = NoSnippetMessage
	}

	organic := resp.OrganicResults
	if len(organic) > maxSearchLinks {
		organic = organic[:maxSearchLinks]
	}
	links := make([]models.Link, 0, len(organic))
	for _, r := range organic {
		title := strings.TrimSpace(r.Title)
		link := strings.TrimSpace(r.Link)
		if title == "" || link == "" {
			continue
		}
		links = append(links, models.Link{Title: title, URL: link})
	}

	return models.SearchResult{Snippet: snippet, Links: links}
}

// FormatSearchResult renders the snippet followed by a "Top Links:" block of
// anchors separated by <br>. The block is omitted when there are no links.
func FormatSearchResult(result models.SearchResult) string {
	var b strings.Builder
	b.WriteString(result.Snippet)
	if len(result.Links) == 0 {
		return b.String()
	}

	b.WriteString("<br><br><strong>Top Links:</strong><br>")
	for i, l := range result.Links {
		if i > 0 {
			b.WriteString("<br>")
		}
		b.WriteString(`<a href="`)
		b.WriteString(html.EscapeString(l.URL))
		b.WriteString(`" target="_blank" rel="noopener noreferrer">`)
		b.WriteString(html.EscapeString(l.Title))
		b.WriteString("</a>")
	}
	return b.String()
}
