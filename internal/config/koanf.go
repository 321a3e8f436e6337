// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/briefwire/config.yaml",
	"/etc/briefwire/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "BRIEFWIRE_CONFIG"

// envPrefix namespaces environment variable overrides:
// BRIEFWIRE_SERVER_PORT -> server.port.
const envPrefix = "BRIEFWIRE_"

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			HandlerTimeout: 10 * time.Second,
			RateLimit:      300,
			CORSOrigins:    nil,
		},
		Database: DatabaseConfig{
			Path: "briefwire.db",
		},
		Cache: CacheConfig{
			Type:     "lru",
			TTL:      5 * time.Minute,
			Capacity: 10000,
		},
		Personalization: PersonalizationConfig{
			Weights:            DefaultWeights(),
			MinRelevanceScore:  0.1,
			DefaultMaxAgeHours: 168,
			CandidateLimit:     200,
			HistoryLimit:       50,
			FetchTimeout:       3 * time.Second,
			BreakerEnabled:     true,
		},
		Auth: AuthConfig{
			JWTSecret: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// and BRIEFWIRE_-prefixed environment variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransform converts environment variable names to koanf paths.
// BRIEFWIRE_SERVER_PORT -> server.port
// BRIEFWIRE_PERSONALIZATION_WEIGHTS_KEYWORD_MATCH ->
// personalization.weights.keyword_match (section names are matched
// against known prefixes since underscores appear inside key names too).
func envTransform(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)

	// Two-level sections first.
	if rest, ok := strings.CutPrefix(s, "personalization_weights_"); ok {
		return "personalization.weights." + rest
	}

	for _, section := range []string{"server", "database", "cache", "personalization", "auth", "logging"} {
		if rest, ok := strings.CutPrefix(s, section+"_"); ok {
			return section + "." + rest
		}
	}
	return s
}
