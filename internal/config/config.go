package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config captures runtime configuration sourced from environment variables.
type Config struct {
	Environment  string
	HTTPPort     string
	DatabasePath string
	FrontendDir  string
	JWTSecret    string

	// Shield mitigation service API.
	ShieldURL    string
	ShieldAPIKey string

	// Snapshot refresh behaviour.
	RefreshSpec     string // cron spec for the background refresh
	DetectionLimit  int    // max detection log rows fetched per refresh
	DefaultPageSize int
}

// Load reads env vars and falls back to defaults so the server can boot
// with zero configuration against a local Shield instance.
func Load() (Config, error) {
	cfg := Config{
		Environment:     getEnv("ARGUS_ENV", "development"),
		HTTPPort:        getEnv("ARGUS_HTTP_PORT", "8080"),
		DatabasePath:    getEnv("ARGUS_DB_PATH", filepath.Join("data", "argus.db")),
		FrontendDir:     getEnv("ARGUS_FRONTEND_DIR", filepath.Clean(filepath.Join("..", "frontend", "dist"))),
		JWTSecret:       getEnv("ARGUS_JWT_SECRET", ""),
		ShieldURL:       getEnv("ARGUS_SHIELD_URL", "http://localhost:9090"),
		ShieldAPIKey:    getEnv("ARGUS_SHIELD_API_KEY", ""),
		RefreshSpec:     getEnv("ARGUS_REFRESH_SPEC", "@every 30s"),
		DetectionLimit:  getEnvInt("ARGUS_DETECTION_LIMIT", 200),
		DefaultPageSize: getEnvInt("ARGUS_PAGE_SIZE", 15),
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		return Config{}, fmt.Errorf("ensure data directory: %w", err)
	}

	return cfg, nil
}

// RefreshFallbackInterval is used when the cron spec fails to parse.
const RefreshFallbackInterval = 30 * time.Second

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}

	return fallback
}
