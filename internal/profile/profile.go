package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the parser service.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where lingotime stores its parse audit
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string

	// Timezone is the IANA zone used when a request names none.
	Timezone string // LINGOTIME_TIMEZONE (default: Local)
	// AuditEnabled records every parse in the store.
	AuditEnabled bool // LINGOTIME_AUDIT_ENABLED (default: true)

	// Fallback chain configuration
	FallbackDateparse   bool // LINGOTIME_FALLBACK_DATEPARSE (default: true)
	FallbackWhen        bool // LINGOTIME_FALLBACK_WHEN (default: true)
	FallbackNaturalDate bool // LINGOTIME_FALLBACK_NATURALDATE (default: true)

	// LLM fallback configuration
	LLMEnabled           bool          // LINGOTIME_LLM_ENABLED (default: false)
	LLMProvider          string        // LINGOTIME_LLM_PROVIDER (default: openai)
	LLMAPIKey            string        // LINGOTIME_LLM_API_KEY
	LLMBaseURL           string        // LINGOTIME_LLM_BASE_URL (default: https://api.openai.com/v1)
	LLMModel             string        // LINGOTIME_LLM_MODEL (default: gpt-4o-mini)
	LLMMaxRetries        int           // LINGOTIME_LLM_MAX_RETRIES (default: 3)
	LLMRequestsPerSecond float64       // LINGOTIME_LLM_RPS (default: 2)
	LLMCacheSize         int           // LINGOTIME_LLM_CACHE_SIZE (default: 1000)
	LLMCacheTTL          time.Duration // LINGOTIME_LLM_CACHE_TTL (default: 10m)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsLLMEnabled returns true if the LLM fallback is enabled and reachable.
func (p *Profile) IsLLMEnabled() bool {
	return p.LLMEnabled && (p.LLMAPIKey != "" || p.LLMProvider == "ollama")
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getIntEnv(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getFloatEnv(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// FromEnv loads the parser configuration from LINGOTIME_* environment variables.
// Unset or malformed values keep their defaults.
func (p *Profile) FromEnv() {
	p.Timezone = getEnvOrDefault("LINGOTIME_TIMEZONE", "Local")
	p.AuditEnabled = getBoolEnv("LINGOTIME_AUDIT_ENABLED", true)

	p.FallbackDateparse = getBoolEnv("LINGOTIME_FALLBACK_DATEPARSE", true)
	p.FallbackWhen = getBoolEnv("LINGOTIME_FALLBACK_WHEN", true)
	p.FallbackNaturalDate = getBoolEnv("LINGOTIME_FALLBACK_NATURALDATE", true)

	p.LLMEnabled = getBoolEnv("LINGOTIME_LLM_ENABLED", false)
	p.LLMProvider = getEnvOrDefault("LINGOTIME_LLM_PROVIDER", "openai")
	p.LLMAPIKey = os.Getenv("LINGOTIME_LLM_API_KEY")
	p.LLMBaseURL = getEnvOrDefault("LINGOTIME_LLM_BASE_URL", "https://api.openai.com/v1")
	p.LLMModel = getEnvOrDefault("LINGOTIME_LLM_MODEL", "gpt-4o-mini")
	p.LLMMaxRetries = getIntEnv("LINGOTIME_LLM_MAX_RETRIES", 3)
	p.LLMRequestsPerSecond = getFloatEnv("LINGOTIME_LLM_RPS", 2)
	p.LLMCacheSize = getIntEnv("LINGOTIME_LLM_CACHE_SIZE", 1000)
	p.LLMCacheTTL = getDurationEnv("LINGOTIME_LLM_CACHE_TTL", 10*time.Minute)
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}
	if p.Driver == "" {
		p.Driver = "sqlite"
	}
	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unsupported driver %q", p.Driver)
	}
	if p.Timezone == "" {
		p.Timezone = "Local"
	}
	if _, err := time.LoadLocation(p.Timezone); err != nil {
		return errors.Wrapf(err, "invalid timezone %s", p.Timezone)
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "lingotime")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/lingotime"
		}
	}
	if p.Data == "" {
		p.Data = "."
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check dsn", slog.String("data", dataDir), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("lingotime_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("dsn is required for the postgres driver")
	}

	return nil
}
