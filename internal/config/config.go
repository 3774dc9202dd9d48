// Package config provides configuration loading and validation for the service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultVocabularyPath is where the company vocabulary lives relative to the
// repository root.
const DefaultVocabularyPath = "res/clean_companies.txt"

// Config represents the service configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or come from the
// environment.
type Config struct {
	Port           int    `json:"port,omitempty"`            // HTTP listen port
	DatabaseURL    string `json:"database_url,omitempty"`    // PostgreSQL connection URL
	VocabularyPath string `json:"vocabulary_path,omitempty"` // Company vocabulary file
	APIKey         string `json:"api_key,omitempty"`         // Gemini API key (optional; enables match enhancement)
	Verbose        bool   `json:"verbose,omitempty"`         // Enable debug logging
	JSONLog        bool   `json:"json_log,omitempty"`        // Log as JSON instead of console
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv fills unset fields from environment variables: DATABASE_URL,
// GEMINI_API_KEY, VOCABULARY_PATH, PORT, VERBOSE.
func (c *Config) ApplyEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.VocabularyPath == "" {
		c.VocabularyPath = os.Getenv("VOCABULARY_PATH")
	}
	if c.Port == 0 {
		if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
			c.Port = port
		}
	}
	if !c.Verbose {
		if verbose, err := strconv.ParseBool(os.Getenv("VERBOSE")); err == nil {
			c.Verbose = verbose
		}
	}
}

// Validate checks that the configuration has valid values and applies
// defaults for optional fields.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required (or set DATABASE_URL)")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.VocabularyPath == "" {
		c.VocabularyPath = DefaultVocabularyPath
	}
	if _, err := os.Stat(c.VocabularyPath); os.IsNotExist(err) {
		return fmt.Errorf("config error: vocabulary file not found: %s", c.VocabularyPath)
	}
	return nil
}
