package claude_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"takeoffs/internal/analyzer"
	"takeoffs/internal/analyzer/claude"
	"takeoffs/internal/config"
	"takeoffs/internal/domain"
	"takeoffs/internal/port"
)

func testConfig() *config.AnalyzerProviderConfig {
	return &config.AnalyzerProviderConfig{
		Provider: "claude",
		APIKey:   "test-key",
	}
}

func testInput() port.AnalyzeInput {
	return port.AnalyzeInput{
		FileBytes:   []byte("%PDF-1.4 test"),
		ContentType: "application/pdf",
		Trade:       domain.TradePlumbing,
	}
}

func TestClaudeAnalyzer_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-sonnet-4-20250514", req["model"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"content": [{"type": "text", "text": "- Domestic cold water: 100 feet of 3/4\" copper"}],
			"stop_reason": "end_turn"
		}`))
	}))
	defer srv.Close()

	a := claude.NewAnalyzerWithEndpoint(testConfig(), srv.URL)
	out, err := a.Analyze(context.Background(), testInput())

	require.NoError(t, err)
	assert.Contains(t, out.RawText, "Domestic cold water")
	assert.Equal(t, "claude-sonnet-4-20250514", out.ModelUsed)
	assert.NotEmpty(t, out.PromptUsed)
}

func TestClaudeAnalyzer_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"type": "rate_limit_error"}}`))
	}))
	defer srv.Close()

	a := claude.NewAnalyzerWithEndpoint(testConfig(), srv.URL)
	out, err := a.Analyze(context.Background(), testInput())

	assert.Nil(t, out)
	var rlErr *analyzer.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "claude", rlErr.Provider)
	assert.Equal(t, float64(30), rlErr.RetryAfter.Seconds())
}

func TestClaudeAnalyzer_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"type": "overloaded"}}`))
	}))
	defer srv.Close()

	a := claude.NewAnalyzerWithEndpoint(testConfig(), srv.URL)
	_, err := a.Analyze(context.Background(), testInput())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")

	var rlErr *analyzer.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
}

func TestClaudeAnalyzer_TruncatedOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"content": [{"type": "text", "text": "partial"}],
			"stop_reason": "max_tokens"
		}`))
	}))
	defer srv.Close()

	a := claude.NewAnalyzerWithEndpoint(testConfig(), srv.URL)
	_, err := a.Analyze(context.Background(), testInput())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_tokens")
}

func TestClaudeAnalyzer_UnsupportedContentType(t *testing.T) {
	a := claude.NewAnalyzerWithEndpoint(testConfig(), "http://unused")

	input := testInput()
	input.ContentType = "text/html"
	_, err := a.Analyze(context.Background(), input)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}
