package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	JWT      JWTConfig
	S3       S3Config
	Log      LogConfig
	Analyzer AnalyzerConfig
	CORS     CORSConfig
	Queue    QueueConfig
	Email    EmailConfig
	Takeoff  TakeoffConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// QueueConfig holds analysis queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AnalyzerProviderConfig holds settings for a single LLM analyzer provider.
type AnalyzerProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// AnalyzerConfig holds LLM blueprint analyzer settings with multi-provider
// support.
type AnalyzerConfig struct {
	// Mode selects the composition: "fallback" fails over between providers
	// on rate limits, "merge" runs primary and secondary in parallel and
	// keeps the richer reply.
	Mode      string                 `mapstructure:"mode"`
	Primary   AnalyzerProviderConfig `mapstructure:"primary"`
	Secondary AnalyzerProviderConfig `mapstructure:"secondary"`
	Tertiary  AnalyzerProviderConfig `mapstructure:"tertiary"`
}

// SecondaryConfig returns the secondary analyzer provider config, or nil if
// not configured.
func (a *AnalyzerConfig) SecondaryConfig() *AnalyzerProviderConfig {
	if a.Secondary.Provider != "" {
		return &a.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary analyzer provider config, or nil if not
// configured.
func (a *AnalyzerConfig) TertiaryConfig() *AnalyzerProviderConfig {
	if a.Tertiary.Provider != "" {
		return &a.Tertiary
	}
	return nil
}

// TakeoffConfig holds estimation pipeline defaults. Per-trade waste factors
// override the built-in ones when set.
type TakeoffConfig struct {
	StudSpacingIn         float64            `mapstructure:"stud_spacing_in"`
	LaborRatePerHour      float64            `mapstructure:"labor_rate_per_hour"`
	ContingencyRate       float64            `mapstructure:"contingency_rate"`
	GeneralConditionsRate float64            `mapstructure:"general_conditions_rate"`
	OverheadProfitRate    float64            `mapstructure:"overhead_profit_rate"`
	WasteFactors          map[string]float64 `mapstructure:"waste_factors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for blueprint storage.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the TAKEOFFS_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TAKEOFFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "takeoffs")
	v.SetDefault("db.password", "takeoffs_secret")
	v.SetDefault("db.name", "takeoffs_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "takeoffs")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "takeoffs-blueprints")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.max_retries", 5)
	v.SetDefault("queue.concurrency", 5)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@takeoffs.dev")
	v.SetDefault("email.from_name", "Takeoffs")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Analyzer defaults
	v.SetDefault("analyzer.mode", "fallback")
	v.SetDefault("analyzer.primary.provider", "claude")
	v.SetDefault("analyzer.primary.api_key", "")
	v.SetDefault("analyzer.primary.default_model", "")
	v.SetDefault("analyzer.primary.max_retries", 2)
	v.SetDefault("analyzer.primary.timeout_secs", 120)
	v.SetDefault("analyzer.secondary.provider", "")
	v.SetDefault("analyzer.secondary.api_key", "")
	v.SetDefault("analyzer.secondary.default_model", "")
	v.SetDefault("analyzer.secondary.max_retries", 2)
	v.SetDefault("analyzer.secondary.timeout_secs", 120)
	v.SetDefault("analyzer.tertiary.provider", "")
	v.SetDefault("analyzer.tertiary.api_key", "")
	v.SetDefault("analyzer.tertiary.default_model", "")
	v.SetDefault("analyzer.tertiary.max_retries", 2)
	v.SetDefault("analyzer.tertiary.timeout_secs", 120)

	// Takeoff defaults (zero values defer to the built-in trade defaults)
	v.SetDefault("takeoff.stud_spacing_in", 16)
	v.SetDefault("takeoff.labor_rate_per_hour", 85)
	v.SetDefault("takeoff.contingency_rate", 0.10)
	v.SetDefault("takeoff.general_conditions_rate", 0)
	v.SetDefault("takeoff.overhead_profit_rate", 0)
	v.SetDefault("takeoff.waste.plumbing", 0)
	v.SetDefault("takeoff.waste.sheathing", 0)
	v.SetDefault("takeoff.waste.acoustical", 0)
	v.SetDefault("takeoff.waste.framing", 0)
	v.SetDefault("takeoff.waste.mechanical", 0)
	v.SetDefault("takeoff.waste.carpentry", 0)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "TAKEOFFS_SERVER_PORT",
		"server.read_timeout":  "TAKEOFFS_SERVER_READ_TIMEOUT",
		"server.write_timeout": "TAKEOFFS_SERVER_WRITE_TIMEOUT",
		"server.environment":   "TAKEOFFS_SERVER_ENVIRONMENT",
		"db.host":              "TAKEOFFS_DB_HOST",
		"db.port":              "TAKEOFFS_DB_PORT",
		"db.user":              "TAKEOFFS_DB_USER",
		"db.password":          "TAKEOFFS_DB_PASSWORD",
		"db.name":              "TAKEOFFS_DB_NAME",
		"db.sslmode":           "TAKEOFFS_DB_SSLMODE",
		"db.max_open":          "TAKEOFFS_DB_MAX_OPEN",
		"db.max_idle":          "TAKEOFFS_DB_MAX_IDLE",
		"jwt.secret":           "TAKEOFFS_JWT_SECRET",
		"jwt.access_expiry":    "TAKEOFFS_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":   "TAKEOFFS_JWT_REFRESH_EXPIRY",
		"jwt.issuer":           "TAKEOFFS_JWT_ISSUER",
		"s3.region":            "TAKEOFFS_S3_REGION",
		"s3.bucket":            "TAKEOFFS_S3_BUCKET",
		"s3.endpoint":          "TAKEOFFS_S3_ENDPOINT",
		"s3.access_key":        "TAKEOFFS_S3_ACCESS_KEY",
		"s3.secret_key":        "TAKEOFFS_S3_SECRET_KEY",
		"s3.max_file_size_mb":  "TAKEOFFS_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":    "TAKEOFFS_S3_PRESIGN_EXPIRY",
		"log.level":            "TAKEOFFS_LOG_LEVEL",
		"log.format":           "TAKEOFFS_LOG_FORMAT",
		"cors.allowed_origins":             "TAKEOFFS_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs":         "TAKEOFFS_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":                "TAKEOFFS_QUEUE_MAX_RETRIES",
		"queue.concurrency":                "TAKEOFFS_QUEUE_CONCURRENCY",
		"analyzer.mode":                    "TAKEOFFS_ANALYZER_MODE",
		"analyzer.primary.provider":        "TAKEOFFS_ANALYZER_PRIMARY_PROVIDER",
		"analyzer.primary.api_key":         "TAKEOFFS_ANALYZER_PRIMARY_API_KEY",
		"analyzer.primary.default_model":   "TAKEOFFS_ANALYZER_PRIMARY_DEFAULT_MODEL",
		"analyzer.primary.max_retries":     "TAKEOFFS_ANALYZER_PRIMARY_MAX_RETRIES",
		"analyzer.primary.timeout_secs":    "TAKEOFFS_ANALYZER_PRIMARY_TIMEOUT_SECS",
		"analyzer.secondary.provider":      "TAKEOFFS_ANALYZER_SECONDARY_PROVIDER",
		"analyzer.secondary.api_key":       "TAKEOFFS_ANALYZER_SECONDARY_API_KEY",
		"analyzer.secondary.default_model": "TAKEOFFS_ANALYZER_SECONDARY_DEFAULT_MODEL",
		"analyzer.secondary.max_retries":   "TAKEOFFS_ANALYZER_SECONDARY_MAX_RETRIES",
		"analyzer.secondary.timeout_secs":  "TAKEOFFS_ANALYZER_SECONDARY_TIMEOUT_SECS",
		"analyzer.tertiary.provider":       "TAKEOFFS_ANALYZER_TERTIARY_PROVIDER",
		"analyzer.tertiary.api_key":        "TAKEOFFS_ANALYZER_TERTIARY_API_KEY",
		"analyzer.tertiary.default_model":  "TAKEOFFS_ANALYZER_TERTIARY_DEFAULT_MODEL",
		"analyzer.tertiary.max_retries":    "TAKEOFFS_ANALYZER_TERTIARY_MAX_RETRIES",
		"analyzer.tertiary.timeout_secs":   "TAKEOFFS_ANALYZER_TERTIARY_TIMEOUT_SECS",
		"email.provider":                   "TAKEOFFS_EMAIL_PROVIDER",
		"email.region":                     "TAKEOFFS_EMAIL_REGION",
		"email.from_address":               "TAKEOFFS_EMAIL_FROM_ADDRESS",
		"email.from_name":                  "TAKEOFFS_EMAIL_FROM_NAME",
		"email.frontend_url":               "TAKEOFFS_EMAIL_FRONTEND_URL",
		"takeoff.stud_spacing_in":          "TAKEOFFS_TAKEOFF_STUD_SPACING_IN",
		"takeoff.labor_rate_per_hour":      "TAKEOFFS_TAKEOFF_LABOR_RATE_PER_HOUR",
		"takeoff.contingency_rate":         "TAKEOFFS_TAKEOFF_CONTINGENCY_RATE",
		"takeoff.general_conditions_rate":  "TAKEOFFS_TAKEOFF_GENERAL_CONDITIONS_RATE",
		"takeoff.overhead_profit_rate":     "TAKEOFFS_TAKEOFF_OVERHEAD_PROFIT_RATE",
		"takeoff.waste.plumbing":           "TAKEOFFS_TAKEOFF_WASTE_PLUMBING",
		"takeoff.waste.sheathing":          "TAKEOFFS_TAKEOFF_WASTE_SHEATHING",
		"takeoff.waste.acoustical":         "TAKEOFFS_TAKEOFF_WASTE_ACOUSTICAL",
		"takeoff.waste.framing":            "TAKEOFFS_TAKEOFF_WASTE_FRAMING",
		"takeoff.waste.mechanical":         "TAKEOFFS_TAKEOFF_WASTE_MECHANICAL",
		"takeoff.waste.carpentry":          "TAKEOFFS_TAKEOFF_WASTE_CARPENTRY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if TAKEOFFS_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TAKEOFFS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Analyzer = AnalyzerConfig{
		Mode: v.GetString("analyzer.mode"),
		Primary: AnalyzerProviderConfig{
			Provider:     v.GetString("analyzer.primary.provider"),
			APIKey:       v.GetString("analyzer.primary.api_key"),
			DefaultModel: v.GetString("analyzer.primary.default_model"),
			MaxRetries:   v.GetInt("analyzer.primary.max_retries"),
			TimeoutSecs:  v.GetInt("analyzer.primary.timeout_secs"),
		},
		Secondary: AnalyzerProviderConfig{
			Provider:     v.GetString("analyzer.secondary.provider"),
			APIKey:       v.GetString("analyzer.secondary.api_key"),
			DefaultModel: v.GetString("analyzer.secondary.default_model"),
			MaxRetries:   v.GetInt("analyzer.secondary.max_retries"),
			TimeoutSecs:  v.GetInt("analyzer.secondary.timeout_secs"),
		},
		Tertiary: AnalyzerProviderConfig{
			Provider:     v.GetString("analyzer.tertiary.provider"),
			APIKey:       v.GetString("analyzer.tertiary.api_key"),
			DefaultModel: v.GetString("analyzer.tertiary.default_model"),
			MaxRetries:   v.GetInt("analyzer.tertiary.max_retries"),
			TimeoutSecs:  v.GetInt("analyzer.tertiary.timeout_secs"),
		},
	}

	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxRetries:       v.GetInt("queue.max_retries"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}

	cfg.Takeoff = TakeoffConfig{
		StudSpacingIn:         v.GetFloat64("takeoff.stud_spacing_in"),
		LaborRatePerHour:      v.GetFloat64("takeoff.labor_rate_per_hour"),
		ContingencyRate:       v.GetFloat64("takeoff.contingency_rate"),
		GeneralConditionsRate: v.GetFloat64("takeoff.general_conditions_rate"),
		OverheadProfitRate:    v.GetFloat64("takeoff.overhead_profit_rate"),
		WasteFactors: map[string]float64{
			"plumbing":   v.GetFloat64("takeoff.waste.plumbing"),
			"sheathing":  v.GetFloat64("takeoff.waste.sheathing"),
			"acoustical": v.GetFloat64("takeoff.waste.acoustical"),
			"framing":    v.GetFloat64("takeoff.waste.framing"),
			"mechanical": v.GetFloat64("takeoff.waste.mechanical"),
			"carpentry":  v.GetFloat64("takeoff.waste.carpentry"),
		},
	}

	return cfg, nil
}
