package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"takeoffs/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TAKEOFFS_SERVER_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "development", cfg.Server.Environment)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "takeoffs_db", cfg.DB.Name)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, 25, cfg.DB.MaxOpen)

	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenExpiry)
	assert.Equal(t, "takeoffs", cfg.JWT.Issuer)

	assert.Equal(t, "takeoffs-blueprints", cfg.S3.Bucket)
	assert.Equal(t, int64(50), cfg.S3.MaxFileSizeMB)

	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)

	assert.Equal(t, 10, cfg.Queue.PollIntervalSecs)
	assert.Equal(t, 5, cfg.Queue.MaxRetries)
	assert.Equal(t, 5, cfg.Queue.Concurrency)

	assert.Equal(t, "noop", cfg.Email.Provider)

	assert.Equal(t, "fallback", cfg.Analyzer.Mode)
	assert.Equal(t, "claude", cfg.Analyzer.Primary.Provider)
	assert.Equal(t, 120, cfg.Analyzer.Primary.TimeoutSecs)
	assert.Nil(t, cfg.Analyzer.SecondaryConfig())
	assert.Nil(t, cfg.Analyzer.TertiaryConfig())

	assert.Equal(t, 16.0, cfg.Takeoff.StudSpacingIn)
	assert.Equal(t, 85.0, cfg.Takeoff.LaborRatePerHour)
	assert.Equal(t, 0.10, cfg.Takeoff.ContingencyRate)
	assert.Equal(t, 0.0, cfg.Takeoff.WasteFactors["plumbing"])
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TAKEOFFS_DB_HOST", "db.internal")
	t.Setenv("TAKEOFFS_DB_PORT", "5433")
	t.Setenv("TAKEOFFS_JWT_SECRET", "super-secret")
	t.Setenv("TAKEOFFS_ANALYZER_MODE", "merge")
	t.Setenv("TAKEOFFS_ANALYZER_SECONDARY_PROVIDER", "gemini")
	t.Setenv("TAKEOFFS_ANALYZER_SECONDARY_API_KEY", "gk")
	t.Setenv("TAKEOFFS_TAKEOFF_WASTE_PLUMBING", "12.5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 5433, cfg.DB.Port)
	assert.Equal(t, "super-secret", cfg.JWT.Secret)
	assert.Equal(t, "merge", cfg.Analyzer.Mode)

	sec := cfg.Analyzer.SecondaryConfig()
	require.NotNil(t, sec)
	assert.Equal(t, "gemini", sec.Provider)
	assert.Equal(t, "gk", sec.APIKey)

	assert.Equal(t, 12.5, cfg.Takeoff.WasteFactors["plumbing"])
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	t.Setenv("TAKEOFFS_SERVER_PORT", "")
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestLoad_ExplicitPortWinsOverPlatformPort(t *testing.T) {
	t.Setenv("TAKEOFFS_SERVER_PORT", ":7070")
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Port)
}

func TestLoad_CORSOriginsTrimmed(t *testing.T) {
	t.Setenv("TAKEOFFS_CORS_ALLOWED_ORIGINS", "https://app.example.com , https://staging.example.com,")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "takeoffs",
		Password: "pw",
		Name:     "takeoffs_db",
		SSLMode:  "disable",
	}
	assert.Equal(t, "postgres://takeoffs:pw@localhost:5432/takeoffs_db?sslmode=disable", db.DSN())
}
