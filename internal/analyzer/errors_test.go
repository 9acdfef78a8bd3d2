package analyzer_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"takeoffs/internal/analyzer"
)

func TestRateLimitError(t *testing.T) {
	base := errors.New("status 429")
	err := analyzer.NewRateLimitError("claude", base, 30)

	assert.Equal(t, 30*time.Second, err.RetryAfter)
	assert.Equal(t, "claude", err.Provider)
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "claude rate limited")
}

func TestRateLimitError_DefaultRetryAfter(t *testing.T) {
	err := analyzer.NewRateLimitError("gemini", errors.New("429"), 0)
	assert.Equal(t, 60*time.Second, err.RetryAfter)
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 30, analyzer.ParseRetryAfterHeader("30"))
	assert.Equal(t, 0, analyzer.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, analyzer.ParseRetryAfterHeader("Wed, 21 Oct 2025 07:28:00 GMT"))
}
