// Package profile holds runtime configuration: environment-driven settings
// and the optional TOML file of per-bank profiles.
package profile

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the environment-driven configuration. Flags may override
// individual fields after loading.
type Config struct {
	Provider    string        `env:"PARSEGEN_PROVIDER" envDefault:"groq"`
	Model       string        `env:"PARSEGEN_MODEL"`
	APIKey      string        `env:"PARSEGEN_API_KEY"`
	GroqAPIKey  string        `env:"GROQ_API_KEY"`
	DataDir     string        `env:"PARSEGEN_DATA_DIR" envDefault:"data"`
	ParserDir   string        `env:"PARSEGEN_PARSER_DIR" envDefault:"parsers"`
	MaxAttempts int           `env:"PARSEGEN_MAX_ATTEMPTS" envDefault:"3"`
	ExecTimeout time.Duration `env:"PARSEGEN_EXEC_TIMEOUT" envDefault:"10s"`
	LLMTimeout  time.Duration `env:"PARSEGEN_LLM_TIMEOUT" envDefault:"2m"`
	HistoryPath string        `env:"PARSEGEN_HISTORY_DB" envDefault:"parsegen.db"`
	BanksFile   string        `env:"PARSEGEN_BANKS_FILE" envDefault:"banks.toml"`
	Verbose     bool          `env:"PARSEGEN_VERBOSE"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolveAPIKey returns the key to use for the configured provider.
// PARSEGEN_API_KEY wins; the provider-specific variable is the fallback
// (gollm also reads provider env vars itself when the key is empty).
func (c *Config) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if c.Provider == "groq" {
		return c.GroqAPIKey
	}
	return ""
}
