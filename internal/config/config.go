// Package config loads yournote settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL     = "https://api.groq.com/openai/v1"
	DefaultModel       = "llama3-70b-8192"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1024
	DefaultTimeout     = 60 * time.Second
	DefaultTesseract   = "tesseract"
	DefaultOCRLanguage = "eng"
)

// ErrMissingAPIKey is returned by RequireAPIKey when no key is configured.
var ErrMissingAPIKey = errors.New("GROQ_API_KEY not found in environment variables or config file")

type Config struct {
	DBPath string `yaml:"db_path"`
	LLM    struct {
		BaseURL     string        `yaml:"base_url"`
		APIKey      string        `yaml:"api_key"`
		Model       string        `yaml:"model"`
		Temperature float64       `yaml:"temperature"`
		MaxTokens   int           `yaml:"max_tokens"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"llm"`
	OCR struct {
		TesseractPath string `yaml:"tesseract_path"`
		Language      string `yaml:"language"`
	} `yaml:"ocr"`
}

// Load reads path (a missing file is not an error), applies environment
// overrides and fills defaults.
func Load(path string) (*Config, error) {
	// Zero is a valid temperature, so its default is set before decoding
	// rather than filled in afterwards.
	var cfg Config
	cfg.LLM.Temperature = DefaultTemperature

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("GROQ_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("GROQ_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("AI_TEMPERATURE"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid AI_TEMPERATURE %q: %w", v, err)
		}
		c.LLM.Temperature = t
	}
	if v := os.Getenv("TESSERACT_PATH"); v != "" {
		c.OCR.TesseractPath = v
	}
	if v := os.Getenv("YOURNOTE_DB"); v != "" {
		c.DBPath = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = DefaultBaseURL
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultModel
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = DefaultMaxTokens
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = DefaultTimeout
	}
	if c.OCR.TesseractPath == "" {
		c.OCR.TesseractPath = DefaultTesseract
	}
	if c.OCR.Language == "" {
		c.OCR.Language = DefaultOCRLanguage
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(HomeDir(), "yournote.db")
	}
}

// RequireAPIKey fails when no completion API key is configured. Commands
// that talk to the model call it before doing anything else.
func (c *Config) RequireAPIKey() error {
	if c.LLM.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// HomeDir is the directory holding the default database and config file.
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".yournote")
}

// DefaultPath returns $YOURNOTE_CONFIG or ~/.yournote/config.yaml.
func DefaultPath() string {
	if env := os.Getenv("YOURNOTE_CONFIG"); env != "" {
		return env
	}
	return filepath.Join(HomeDir(), "config.yaml")
}
