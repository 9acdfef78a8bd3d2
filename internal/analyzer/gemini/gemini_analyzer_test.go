package gemini_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"takeoffs/internal/analyzer"
	"takeoffs/internal/analyzer/gemini"
	"takeoffs/internal/config"
	"takeoffs/internal/domain"
	"takeoffs/internal/port"
)

func testConfig() *config.AnalyzerProviderConfig {
	return &config.AnalyzerProviderConfig{
		Provider: "gemini",
		APIKey:   "test-key",
	}
}

func testInput() port.AnalyzeInput {
	return port.AnalyzeInput{
		FileBytes:   []byte("%PDF-1.4 test"),
		ContentType: "application/pdf",
		Trade:       domain.TradeFraming,
	}
}

func TestGeminiAnalyzer_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		_, _ = w.Write([]byte(`{
			"candidates": [{
				"content": {"parts": [{"text": "| Wall A | S4 | 40 | 10 | 2 |"}]},
				"finishReason": "STOP"
			}]
		}`))
	}))
	defer srv.Close()

	a := gemini.NewAnalyzerWithEndpoint(testConfig(), srv.URL)
	out, err := a.Analyze(context.Background(), testInput())

	require.NoError(t, err)
	assert.Contains(t, out.RawText, "Wall A")
	assert.Equal(t, "gemini-2.0-flash", out.ModelUsed)
}

func TestGeminiAnalyzer_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"code": 429}}`))
	}))
	defer srv.Close()

	a := gemini.NewAnalyzerWithEndpoint(testConfig(), srv.URL)
	_, err := a.Analyze(context.Background(), testInput())

	var rlErr *analyzer.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "gemini", rlErr.Provider)
	// missing Retry-After falls back to the 60s default
	assert.Equal(t, float64(60), rlErr.RetryAfter.Seconds())
}

func TestGeminiAnalyzer_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	a := gemini.NewAnalyzerWithEndpoint(testConfig(), srv.URL)
	_, err := a.Analyze(context.Background(), testInput())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestGeminiAnalyzer_UnsupportedContentType(t *testing.T) {
	a := gemini.NewAnalyzerWithEndpoint(testConfig(), "http://unused")

	input := testInput()
	input.ContentType = "application/zip"
	_, err := a.Analyze(context.Background(), input)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}
