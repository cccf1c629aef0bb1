package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/spellserve/pkg/dictionary"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "en-US", cfg.Spell.DefaultLanguage)
	assert.Equal(t, 1000, cfg.Spell.CacheSize)
	assert.Equal(t, 3, cfg.Spell.MaxRetries)
	assert.True(t, cfg.Spell.FallbackOnError)
	assert.Equal(t, time.Second, cfg.RetryDelay())
	assert.Equal(t, dictionary.BackoffFixed, cfg.BackoffPolicy())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty default language", func(c *Config) { c.Spell.DefaultLanguage = "" }},
		{"path without placeholder", func(c *Config) { c.Spell.DictionaryPath = "data/en-US" }},
		{"zero cache size", func(c *Config) { c.Spell.CacheSize = 0 }},
		{"zero retries", func(c *Config) { c.Spell.MaxRetries = 0 }},
		{"unknown backoff", func(c *Config) { c.Spell.Backoff = "jitter" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestBackoffPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Spell.Backoff = "exponential"
	assert.Equal(t, dictionary.BackoffExponential, cfg.BackoffPolicy())
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spellserve.toml")

	cfg := DefaultConfig()
	cfg.Spell.DefaultLanguage = "de-DE"
	cfg.Spell.PreloadLanguages = []string{"en-US", "fr-FR"}
	cfg.Spell.CacheSize = 42
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "de-DE", loaded.Spell.DefaultLanguage)
	assert.Equal(t, []string{"en-US", "fr-FR"}, loaded.Spell.PreloadLanguages)
	assert.Equal(t, 42, loaded.Spell.CacheSize)
	// Unset fields keep their defaults.
	assert.Equal(t, 3, loaded.Spell.MaxRetries)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spellserve.toml")
	require.NoError(t, os.WriteFile(path, []byte("[spell]\ncache_size = -1\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestInitConfigCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "spellserve.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "en-US", cfg.Spell.DefaultLanguage)
	assert.FileExists(t, path)

	// A second call reads the file it just wrote.
	again, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Spell, again.Spell)
}

func TestInitConfigBrokenFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spellserve.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml {{{"), 0o644))

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Spell, cfg.Spell)
}
