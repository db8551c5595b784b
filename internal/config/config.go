// Package config loads the Supabase project configuration.
//
// Sources, in priority order:
//  1. Environment variables SUPABASE_URL and SUPABASE_ANON_KEY (a .env file
//     in the working directory is folded into the environment first).
//  2. A YAML config file: $STACK_CONFIG if set, else stack.yaml in the
//     working directory.
//
// Load returns ErrNotConfigured when no source yields a complete
// configuration; callers fall back to the in-memory repository in that case.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrNotConfigured indicates no configuration source was found. It is not a
// failure: the app runs against the seeded in-memory repository instead.
var ErrNotConfigured = errors.New("config: no supabase configuration found")

const defaultConfigFile = "stack.yaml"

// Config holds the remote project coordinates.
type Config struct {
	SupabaseURL *url.URL
	AnonKey     string
}

type fileConfig struct {
	SupabaseURL string `yaml:"supabase_url"`
	AnonKey     string `yaml:"supabase_anon_key"`
}

// Load resolves the configuration from the environment, then from the YAML
// config file.
func Load() (Config, error) {
	// Missing .env is the common case, not an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to read .env file", "error", err)
	}

	if rawURL, anonKey := os.Getenv("SUPABASE_URL"), os.Getenv("SUPABASE_ANON_KEY"); rawURL != "" && anonKey != "" {
		cfg, err := build(rawURL, anonKey)
		if err != nil {
			return Config{}, err
		}
		slog.Info("loaded supabase config from environment")
		return cfg, nil
	}

	path := os.Getenv("STACK_CONFIG")
	if path == "" {
		path = defaultConfigFile
	}
	return loadFile(path)
}

// loadFile reads a YAML config file.
func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, ErrNotConfigured
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if fc.SupabaseURL == "" || fc.AnonKey == "" {
		return Config{}, fmt.Errorf("config: %s: missing supabase_url or supabase_anon_key", path)
	}

	cfg, err := build(fc.SupabaseURL, fc.AnonKey)
	if err != nil {
		return Config{}, err
	}
	slog.Info("loaded supabase config", "path", path)
	return cfg, nil
}

func build(rawURL, anonKey string) (Config, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, fmt.Errorf("config: invalid supabase url %q", rawURL)
	}
	return Config{SupabaseURL: u, AnonKey: anonKey}, nil
}
