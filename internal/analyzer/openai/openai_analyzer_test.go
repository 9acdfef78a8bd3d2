package openai_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"takeoffs/internal/analyzer"
	"takeoffs/internal/analyzer/openai"
	"takeoffs/internal/config"
	"takeoffs/internal/domain"
	"takeoffs/internal/port"
)

func testConfig() *config.AnalyzerProviderConfig {
	return &config.AnalyzerProviderConfig{
		Provider: "openai",
		APIKey:   "test-key",
	}
}

func testInput() port.AnalyzeInput {
	return port.AnalyzeInput{
		FileBytes:   []byte("fake image bytes"),
		ContentType: "image/png",
		Trade:       domain.TradeMechanical,
	}
}

func TestOpenAIAnalyzer_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{
			"choices": [{
				"message": {"content": "- Supply trunk: 50 feet of 12x8 rectangular"},
				"finish_reason": "stop"
			}]
		}`))
	}))
	defer srv.Close()

	a := openai.NewAnalyzerWithEndpoint(testConfig(), srv.URL)
	out, err := a.Analyze(context.Background(), testInput())

	require.NoError(t, err)
	assert.Contains(t, out.RawText, "Supply trunk")
	assert.Equal(t, "gpt-4o", out.ModelUsed)
}

func TestOpenAIAnalyzer_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "15")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"code": "rate_limit_exceeded"}}`))
	}))
	defer srv.Close()

	a := openai.NewAnalyzerWithEndpoint(testConfig(), srv.URL)
	_, err := a.Analyze(context.Background(), testInput())

	var rlErr *analyzer.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "openai", rlErr.Provider)
	assert.Equal(t, float64(15), rlErr.RetryAfter.Seconds())
}

func TestOpenAIAnalyzer_TruncatedOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"choices": [{
				"message": {"content": "partial"},
				"finish_reason": "length"
			}]
		}`))
	}))
	defer srv.Close()

	a := openai.NewAnalyzerWithEndpoint(testConfig(), srv.URL)
	_, err := a.Analyze(context.Background(), testInput())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "finish_reason: length")
}

func TestOpenAIAnalyzer_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	a := openai.NewAnalyzerWithEndpoint(testConfig(), srv.URL)
	_, err := a.Analyze(context.Background(), testInput())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
