package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds application configuration.
type Config struct {
	Port            string   `env:"PORT" envDefault:"8080"`
	Env             string   `env:"ENV" envDefault:"dev"`
	CORSAllowOrigin []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	ObjectStoreType string `env:"OBJECT_STORE" envDefault:"local"`
	LocalStoreDir   string `env:"LOCAL_STORE_DIR" envDefault:"./data"`
	AWSRegion       string `env:"AWS_REGION"`
	S3Bucket        string `env:"S3_BUCKET"`
	S3Prefix        string `env:"S3_PREFIX"`
	SSEKMSKeyID     string `env:"SSE_KMS_KEY_ID"`

	DatabaseURL    string `env:"DATABASE_URL"`
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"pgx"`

	ScoringPreset        string `env:"SCORING_PRESET" envDefault:"standard"`
	ScoringConfigFile    string `env:"SCORING_CONFIG_FILE"`
	MinDescriptionLength int    `env:"MIN_DESCRIPTION_LENGTH" envDefault:"0"`

	MaxUploadMB    int64   `env:"MAX_UPLOAD_MB" envDefault:"10"`
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`

	HTTPReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.ObjectStoreType = normalizeStoreType(cfg.ObjectStoreType)
	cfg.DatabaseDriver = normalizeDriver(cfg.DatabaseDriver)
	cfg.CORSAllowOrigin = trimAll(cfg.CORSAllowOrigin)

	if cfg.IsProduction() && cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}
	if cfg.ObjectStoreType == "s3" && cfg.S3Bucket == "" {
		return Config{}, fmt.Errorf("config.Load: S3_BUCKET is required when OBJECT_STORE=s3")
	}
	if cfg.MaxUploadMB <= 0 {
		return Config{}, fmt.Errorf("config.Load: MAX_UPLOAD_MB must be positive")
	}
	return cfg, nil
}

// IsProduction reports whether the app is running in production mode.
func (c Config) IsProduction() bool { return c.Env == "production" }

// MaxUploadBytes is the upload limit in bytes.
func (c Config) MaxUploadBytes() int64 { return c.MaxUploadMB << 20 }

func trimAll(in []string) []string {
	var out []string
	for _, p := range in {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeDriver(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sqlite", "sqlite3":
		return "sqlite"
	default:
		return "pgx"
	}
}
