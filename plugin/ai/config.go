package ai

import (
	"errors"
	"time"

	"github.com/hrygo/lingotime/internal/profile"
)

// Config represents the LLM fallback configuration.
type Config struct {
	Enabled bool

	LLM LLMConfig

	RequestsPerSecond float64       // LLM calls per second across the process
	CacheSize         int           // resolved sentences kept in memory
	CacheTTL          time.Duration // lifetime of a cached resolution
}

// LLMConfig represents LLM configuration.
type LLMConfig struct {
	Provider     string // openai, deepseek, ollama
	Model        string // gpt-4o-mini
	APIKey       string
	BaseURL      string
	MaxTokens    int           // default: 256
	Temperature  float32       // default: 0
	MaxRetries   int           // default: 3
	RetryBackoff time.Duration // default: 1s, doubled per attempt
}

// NewConfigFromProfile creates the LLM fallback config from profile.
func NewConfigFromProfile(p *profile.Profile) *Config {
	cfg := &Config{
		Enabled: p.IsLLMEnabled(),
	}

	if !cfg.Enabled {
		return cfg
	}

	cfg.LLM = LLMConfig{
		Provider:   p.LLMProvider,
		Model:      p.LLMModel,
		APIKey:     p.LLMAPIKey,
		BaseURL:    p.LLMBaseURL,
		MaxTokens:  256,
		MaxRetries: p.LLMMaxRetries,
	}
	cfg.RequestsPerSecond = p.LLMRequestsPerSecond
	cfg.CacheSize = p.LLMCacheSize
	cfg.CacheTTL = p.LLMCacheTTL

	return cfg
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.LLM.Provider == "" {
		return errors.New("LLM provider is required")
	}

	if c.LLM.Provider != "ollama" && c.LLM.APIKey == "" {
		return errors.New("LLM API key is required")
	}

	if c.LLM.Model == "" {
		return errors.New("LLM model is required")
	}

	if c.RequestsPerSecond < 0 {
		return errors.New("LLM requests per second must not be negative")
	}

	return nil
}
