// Mapfence - Geofence Drawing and Live Tracking State Core
// Copyright 2026 T. Krauss (tkrauss)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tkrauss/mapfence

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

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/mapfence/config.yaml",
	"/etc/mapfence/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:        "http://localhost:8082",
			Token:      "",
			SocketPath: "/api/socket",
			Timeout:    30 * time.Second,
		},
		Socket: SocketConfig{
			ReconnectDelay:   5 * time.Second,
			HandshakeTimeout: 10 * time.Second,
			ReadLimit:        512 * 1024, // 512 KB
			PingInterval:     30 * time.Second,
		},
		Draw: DrawConfig{
			CircleVertices: 64,
		},
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8127,
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//
//  1. Defaults: built-in defaults from defaultConfig
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: highest priority
//
// The loaded configuration is validated before being returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	// BACKEND_URL -> backend.url, SOCKET_RECONNECT_DELAY -> socket.reconnect_delay
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the first file found, or empty string if none exists.
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

// envPrefixes maps the leading environment variable segment to a config
// section. Variables outside these prefixes are ignored so unrelated
// process environment does not leak into the config.
var envPrefixes = map[string]string{
	"BACKEND": "backend",
	"SOCKET":  "socket",
	"DRAW":    "draw",
	"SERVER":  "server",
	"LOG":     "logging",
}

// envTransformFunc maps environment variable names to koanf paths.
//
// Examples:
//   - BACKEND_URL         -> backend.url
//   - BACKEND_SOCKET_PATH -> backend.socket_path
//   - SOCKET_RECONNECT_DELAY -> socket.reconnect_delay
//   - LOG_LEVEL           -> logging.level
func envTransformFunc(key string) string {
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return ""
	}
	section, ok := envPrefixes[parts[0]]
	if !ok {
		return ""
	}
	return section + "." + strings.ToLower(parts[1])
}
