package config

import "fmt"

type Config struct {
	Ollama      OllamaConfig      `yaml:"ollama"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	Sanitize    SanitizeConfig    `yaml:"sanitize"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type OllamaConfig struct {
	Host           string `yaml:"host"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

// SanitizeConfig carries the confidential term rules. Enabled defaults to
// true; when disabled the pipeline refuses to send anything to Ollama.
type SanitizeConfig struct {
	Enabled          *bool           `yaml:"enabled"`
	Terms            []TermConfig    `yaml:"terms"`
	AdvancedPatterns []PatternConfig `yaml:"advanced_patterns"`
}

// TermConfig declares one reversible rule. Synonyms are additional patterns
// that collapse to the same code; restoration always emits Term.
type TermConfig struct {
	Term     string   `yaml:"term"`
	Code     string   `yaml:"code"`
	Synonyms []string `yaml:"synonyms"`
}

// PatternConfig declares one sanitize-only structural redaction.
type PatternConfig struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// IsEnabled reports whether sanitization is active (default true).
func (s SanitizeConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

func (c *Config) Validate() error {
	if c.Ollama.Host == "" {
		c.Ollama.Host = "http://localhost:11434"
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = "llama3.2"
	}
	if c.Ollama.TimeoutSeconds <= 0 {
		c.Ollama.TimeoutSeconds = 120
	}
	if c.Ollama.MaxRetries < 0 {
		return fmt.Errorf("ollama.max_retries must not be negative")
	}
	if c.Ollama.MaxRetries == 0 {
		c.Ollama.MaxRetries = 2
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Whisper.Threads <= 0 {
		c.Whisper.Threads = 4
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent <= 0 {
		c.Performance.MaxConcurrent = 2
	}

	for i, term := range c.Sanitize.Terms {
		if term.Term == "" {
			return fmt.Errorf("sanitize.terms[%d]: term is required", i)
		}
		if term.Code == "" {
			return fmt.Errorf("sanitize.terms[%d]: code is required", i)
		}
	}
	for i, p := range c.Sanitize.AdvancedPatterns {
		if p.Pattern == "" {
			return fmt.Errorf("sanitize.advanced_patterns[%d]: pattern is required", i)
		}
		if p.Replacement == "" {
			return fmt.Errorf("sanitize.advanced_patterns[%d]: replacement is required", i)
		}
	}

	return nil
}
