// Package config loads the hh settings.
//
// Settings are read, each source overriding the previous one, from:
//   - built-in defaults,
//   - a TOML file (hh.toml in the user config directory, or HH_CONFIG),
//   - a .env file in the working directory (or the file named by HH_ENV_FILE),
//   - HH_* environment variables.
//
// Command line flags are applied last, by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Config holds the hh settings.
type Config struct {
	// DBFile is the household database, JSONL unless it ends with .db or .sqlite.
	DBFile string `toml:"db_file" env:"HH_DB_FILE"`
	// Currency is used for new records and empty totals.
	Currency string `toml:"currency" env:"HH_CURRENCY"`
	// Language selects number and currency formatting, e.g. "en" or "fr-FR".
	Language string `toml:"language" env:"HH_LANGUAGE"`
	// Addr is the HTTP listen address of "hh serve".
	Addr string `toml:"addr" env:"HH_ADDR"`
	// GeminiModel is the model used by "hh assist".
	GeminiModel string `toml:"gemini_model" env:"HH_GEMINI_MODEL"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DBFile:      "household.jsonl",
		Currency:    "EUR",
		Language:    "en",
		Addr:        "localhost:8080",
		GeminiModel: "gemini-2.5-flash",
	}
}

// Load reads the settings from every source. Missing files are ignored.
func Load() (Config, error) {
	path := os.Getenv("HH_CONFIG")
	if path == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(dir, "hh", "hh.toml")
		}
	}
	cfg := Default()
	if path != "" {
		if err := cfg.ReadFile(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}
	if err := loadEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.ParseEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ReadFile overrides the settings present in a TOML file.
func (c *Config) ReadFile(path string) error {
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// ParseEnv overrides the settings set in HH_* environment variables.
func (c *Config) ParseEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the settings.
func (c Config) Validate() error {
	if c.DBFile == "" {
		return fmt.Errorf("db_file is required")
	}
	if _, err := c.Tag(); err != nil {
		return err
	}
	return nil
}

// Tag returns the configured language.
func (c Config) Tag() (language.Tag, error) {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language %q: %w", c.Language, err)
	}
	return tag, nil
}

func loadEnv() error {
	if envFile := os.Getenv("HH_ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
