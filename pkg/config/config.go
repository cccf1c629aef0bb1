/*
Package config manages TOML config for the spellserve service.
*/
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/spellserve/internal/utils"
	"github.com/bastiangx/spellserve/pkg/dictionary"
)

// Config holds the entire config structure
type Config struct {
	Spell  SpellConfig  `toml:"spell"`
	Server ServerConfig `toml:"server"`
}

// SpellConfig holds dictionary and checking options.
type SpellConfig struct {
	DefaultLanguage  string   `toml:"default_language"`
	PreloadLanguages []string `toml:"preload_languages"`
	CacheSize        int      `toml:"cache_size"`
	MaxRetries       int      `toml:"max_retries"`
	RetryDelayMs     int      `toml:"retry_delay_ms"`
	Backoff          string   `toml:"backoff"` // "fixed" or "exponential"
	DictionaryPath   string   `toml:"dictionary_path"`
	FallbackOnError  bool     `toml:"fallback_on_error"`
	MaxSuggestions   int      `toml:"max_suggestions"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	MaxWordLength int `toml:"max_word_length"`
	MaxLimit      int `toml:"max_limit"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Spell: SpellConfig{
			DefaultLanguage:  "en-US",
			PreloadLanguages: nil,
			CacheSize:        1000,
			MaxRetries:       3,
			RetryDelayMs:     1000,
			Backoff:          "fixed",
			DictionaryPath:   "data/{language}/{language}",
			FallbackOnError:  true,
			MaxSuggestions:   10,
		},
		Server: ServerConfig{
			MaxWordLength: 60,
			MaxLimit:      24,
		},
	}
}

// Validate reports config values the service cannot run with.
func (c *Config) Validate() error {
	if c.Spell.DefaultLanguage == "" {
		return fmt.Errorf("config: default_language must not be empty")
	}
	if !strings.Contains(c.Spell.DictionaryPath, "{language}") {
		return fmt.Errorf("config: dictionary_path must contain a {language} placeholder")
	}
	if c.Spell.CacheSize < 1 {
		return fmt.Errorf("config: cache_size must be positive, got %d", c.Spell.CacheSize)
	}
	if c.Spell.MaxRetries < 1 {
		return fmt.Errorf("config: max_retries must be positive, got %d", c.Spell.MaxRetries)
	}
	switch c.Spell.Backoff {
	case "fixed", "exponential":
	default:
		return fmt.Errorf("config: backoff must be \"fixed\" or \"exponential\", got %q", c.Spell.Backoff)
	}
	return nil
}

// RetryDelay converts the configured delay to a duration.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Spell.RetryDelayMs) * time.Millisecond
}

// BackoffPolicy maps the configured backoff name to a loader policy.
func (c *Config) BackoffPolicy() dictionary.Backoff {
	if c.Spell.Backoff == "exponential" {
		return dictionary.BackoffExponential
	}
	return dictionary.BackoffFixed
}

// LoadConfig loads from a TOML file, layered over the defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// InitConfig loads config from file or creates a default file if missing.
// Failures fall back to built-in defaults so a broken config never blocks
// startup.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
