package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthsnap/summarizer/logger"
	"github.com/healthsnap/summarizer/models"
	"github.com/healthsnap/summarizer/services"
)

type fakeSummarizer struct {
	notes []string
	langs []models.Language
}

func (f *fakeSummarizer) Summarize(ctx context.Context, note string, lang models.Language) string {
	f.notes = append(f.notes, note)
	f.langs = append(f.langs, lang)
	return "summary of note"
}

func (f *fakeSummarizer) SummarizeWithFollowUps(ctx context.Context, note string, lang models.Language) *models.SummaryResponse {
	return &models.SummaryResponse{
		Summary:   f.Summarize(ctx, note, lang),
		FollowUps: []models.FollowUp{{Text: "follow up in 2 weeks", CalendarLink: "https://www.google.com/calendar/render?action=TEMPLATE"}},
	}
}

type fakeQA struct {
	answer    string
	questions []string
}

func (f *fakeQA) Answer(ctx context.Context, note, question string) string {
	f.questions = append(f.questions, question)
	return f.answer
}

type fakeTranscriber struct {
	text     string
	err      error
	audio    []byte
	language string
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, contentType, language string) (string, error) {
	f.audio = audio
	f.language = language
	return f.text, f.err
}

type testDeps struct {
	summarizer  *fakeSummarizer
	qa          *fakeQA
	transcriber *fakeTranscriber
	router      *gin.Engine
}

func newTestRouter(t *testing.T, maxUpload int64) *testDeps {
	t.Helper()
	gin.SetMode(gin.TestMode)

	d := &testDeps{
		summarizer:  &fakeSummarizer{},
		qa:          &fakeQA{answer: "Take it with food."},
		transcriber: &fakeTranscriber{text: "patient reports headache"},
	}
	log := logger.NewTest(t)
	d.router = NewRouter(RouterOptions{
		Notes:       NewNoteController(d.summarizer, d.qa, log, maxUpload),
		Voice:       NewVoiceController(d.transcriber, log, maxUpload),
		Logger:      log,
		CORSOrigins: []string{"*"},
		Provider:    "fake",
		Version:     "test",
	})
	return d
}

func doJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func multipartRequest(t *testing.T, path, field, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestSummarizeText(t *testing.T) {
	d := newTestRouter(t, 1<<20)

	w := doJSON(t, d.router, "/api/summarize-text", map[string]string{"note": "Fever for 3 days.", "language": "Hindi"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.SummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "summary of note", resp.Summary)
	require.Len(t, resp.FollowUps, 1)
	assert.Equal(t, []models.Language{"Hindi"}, d.summarizer.langs)
}

func TestSummarizeText_EmptyNote(t *testing.T) {
	d := newTestRouter(t, 1<<20)

	for _, body := range []interface{}{
		map[string]string{"note": ""},
		map[string]string{"note": "   "},
		map[string]string{},
	} {
		w := doJSON(t, d.router, "/api/summarize-text", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"No text provided"}`, w.Body.String())
	}
	assert.Empty(t, d.summarizer.notes)
}

func TestSummarizeText_InvalidJSON(t *testing.T) {
	d := newTestRouter(t, 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/api/summarize-text", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSummarizeFile(t *testing.T) {
	d := newTestRouter(t, 1<<20)

	req := multipartRequest(t, "/api/summarize-file", "file", "note.txt", []byte("  BP 140/90. Return in 1 month. "), map[string]string{"language": "Spanish"})
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"BP 140/90. Return in 1 month."}, d.summarizer.notes)
	assert.Equal(t, []models.Language{"Spanish"}, d.summarizer.langs)
}

func TestSummarizeFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		filename string
		content  string
		status   int
	}{
		{"missing file", "", "", "", http.StatusBadRequest},
		{"unsupported type", "file", "scan.png", "png", http.StatusBadRequest},
		{"empty text", "file", "note.txt", "   ", http.StatusBadRequest},
		{"too large", "file", "note.txt", string(make([]byte, 2048)), http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestRouter(t, 1024)
			req := multipartRequest(t, "/api/summarize-file", tt.field, tt.filename, []byte(tt.content), nil)
			w := httptest.NewRecorder()
			d.router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Empty(t, d.summarizer.notes)
		})
	}
}

func TestAsk(t *testing.T) {
	d := newTestRouter(t, 1<<20)

	w := doJSON(t, d.router, "/api/ask", models.AskRequest{Note: "Amoxicillin 500mg.", Question: "Take with food?"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"answer":"Take it with food."}`, w.Body.String())
	assert.Equal(t, []string{"Take with food?"}, d.qa.questions)
}

func TestAsk_MissingFields(t *testing.T) {
	d := newTestRouter(t, 1<<20)

	for _, body := range []models.AskRequest{
		{Note: "", Question: "q"},
		{Note: "n", Question: " "},
	} {
		w := doJSON(t, d.router, "/api/ask", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	assert.Empty(t, d.qa.questions)
}

func TestTranscribe(t *testing.T) {
	for _, path := range []string{"/api/transcribe-voice", "/api/transcribe-audio"} {
		t.Run(path, func(t *testing.T) {
			d := newTestRouter(t, 1<<20)

			req := multipartRequest(t, path+"?language=hi", "audio", "note.webm", []byte("audio-bytes"), nil)
			w := httptest.NewRecorder()
			d.router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"transcript":"patient reports headache"}`, w.Body.String())
			assert.Equal(t, []byte("audio-bytes"), d.transcriber.audio)
			assert.Equal(t, "hi", d.transcriber.language)
		})
	}
}

func TestTranscribe_Failures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing key", fmt.Errorf("deepgram: %w", services.ErrMissingAPIKey), "Deepgram API key not set."},
		{"provider failure", &services.ProviderError{Provider: "deepgram", Op: "transcribe", StatusCode: 502}, "Transcription failed."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestRouter(t, 1<<20)
			d.transcriber.err = tt.err

			req := multipartRequest(t, "/api/transcribe-voice", "audio", "a.wav", []byte("x"), nil)
			w := httptest.NewRecorder()
			d.router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.want), w.Body.String())
		})
	}
}

func TestTranscribe_NoAudio(t *testing.T) {
	d := newTestRouter(t, 1<<20)

	req := multipartRequest(t, "/api/transcribe-voice", "", "", nil, map[string]string{"x": "y"})
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
