package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file, applies .env / environment
// overrides, fills defaults and validates. A missing config file is not an
// error: the built-in defaults (including the default term table) are used so
// the tool works out of the box.
func Load(path string) (*Config, error) {
	// Optional .env next to the working directory.
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		cfg.Sanitize.Terms = DefaultTerms()
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		cfg.Ollama.Host = host
	}
	if model := os.Getenv("OLLAMA_MODEL"); model != "" {
		cfg.Ollama.Model = model
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}

// DefaultTerms is the term table used when no config file is present.
func DefaultTerms() []TermConfig {
	return []TermConfig{
		{Term: "Anh chị", Code: "AC"},
		{Term: "Kiến thức", Code: "KT"},
	}
}
