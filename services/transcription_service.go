package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/healthsnap/summarizer/models"
)

// Transcriber converts recorded audio into text. There is no fallback: a
// failure fails the whole request.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, contentType, language string) (string, error)
}

// DeepgramTranscriber calls Deepgram's pre-recorded audio API.
type DeepgramTranscriber struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewDeepgramTranscriber creates a Deepgram transcriber. baseURL is usually
// https://api.deepgram.com.
func NewDeepgramTranscriber(client *http.Client, apiKey, baseURL string) *DeepgramTranscriber {
	return &DeepgramTranscriber{
		httpClient: client,
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Transcribe posts the raw audio bytes to /v1/listen. An empty language lets
// Deepgram use its default.
func (d *DeepgramTranscriber) Transcribe(ctx context.Context, audio []byte, contentType, language string) (string, error) {
	if d.apiKey == "" {
		return "", newProviderError("deepgram", "transcribe", 0, ErrMissingAPIKey)
	}

	listenURL := d.baseURL + "/v1/listen"
	if language = strings.TrimSpace(language); language != "" {
		listenURL += "?" + url.Values{"language": []string{language}}.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, listenURL, bytes.NewReader(audio))
	if err != nil {
		return "", newProviderError("deepgram", "transcribe", 0, fmt.Errorf("failed to create request: %w", err))
	}
	httpReq.Header.Set("Authorization", "Token "+d.apiKey)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		return "", newProviderError("deepgram", "transcribe", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", newProviderError("deepgram", "transcribe", resp.StatusCode, fmt.Errorf("body: %s", string(bodyBytes)))
	}

	var listenResp models.DeepgramListenResponse
	if err := json.NewDecoder(resp.Body).Decode(&listenResp); err != nil {
		return "", newProviderError("deepgram", "transcribe", resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}

	channels := listenResp.Results.Channels
	if len(channels) == 0 || len(channels[0].Alternatives) == 0 {
		return "", nil
	}
	return channels[0].Alternatives[0].Transcript, nil
}
