package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the env file named by CLOUDTAIL_ENV (default .env) and then its
// .secret sidecar. Missing files are ignored and variables already set in the
// process environment win.
func Load() error {
	envFile := os.Getenv("CLOUDTAIL_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	for _, f := range []string{envFile, envFile + ".secret"} {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func ServerPort() int {
	return intVar("SERVER_PORT", 8080)
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

func MigrationsPath() string {
	return stringVar("MIGRATIONS_PATH", "migrations")
}

// LogLevel returns the log level (debug, info, warn, error).
func LogLevel() string {
	return strings.ToLower(stringVar("LOG_LEVEL", "info"))
}

func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

func RateLimitBurst() int {
	burst := intVar("RATE_LIMIT_BURST", 20)
	if burst <= 0 {
		return 20
	}
	return burst
}

// ClassifierProvider returns the emotion classifier backend.
// Valid values: keyword, openai, anthropic, huggingface, mock
func ClassifierProvider() string {
	return strings.ToLower(stringVar("CLASSIFIER_PROVIDER", "keyword"))
}

// ClassifierAPIKey returns the API key for the configured classifier provider.
func ClassifierAPIKey() string {
	switch ClassifierProvider() {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "huggingface":
		return os.Getenv("HUGGINGFACE_API_KEY")
	default:
		return ""
	}
}

// ClassifierModel is empty unless overridden; each provider has its own default.
func ClassifierModel() string {
	return os.Getenv("CLASSIFIER_MODEL")
}

// CatalogPath is empty when the embedded ritual catalog should be used.
func CatalogPath() string {
	return os.Getenv("CATALOG_PATH")
}

// AliasesPath is empty when the embedded alias table should be used.
func AliasesPath() string {
	return os.Getenv("ALIASES_PATH")
}

// PlanetWindow is the aggregation window for planet status. Zero means unbounded.
func PlanetWindow() int {
	return windowVar("PLANET_WINDOW", 12)
}

// RitualWindow is the aggregation window for ritual selection.
func RitualWindow() int {
	return windowVar("RITUAL_WINDOW", 5)
}

func HistoryLookback() time.Duration {
	hours := intVar("HISTORY_LOOKBACK_HOURS", 24)
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// AuditBackend returns where audit events go: postgres, sqlite or log.
func AuditBackend() string {
	return strings.ToLower(stringVar("AUDIT_BACKEND", "postgres"))
}

func AuditSQLitePath() string {
	return stringVar("AUDIT_SQLITE_PATH", "cloudtail_audit.db")
}

func stringVar(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func intVar(name string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(name)))
	if err != nil {
		return def
	}
	return v
}

func windowVar(name string, def int) int {
	w := intVar(name, def)
	if w < 0 {
		return def
	}
	return w
}
