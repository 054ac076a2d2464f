// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. For local development
an optional .env file is preloaded via 'joho/godotenv' before parsing.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (HTTP client, token store) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the toolkit is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the Bidaro client toolkit.
type Config struct {

	// APIBaseURL is the single configured endpoint of the storefront API.
	APIBaseURL string `env:"BIDARO_API_BASE_URL" envDefault:"http://localhost:3000/api"`

	// RequestTimeout bounds each API request. Zero falls back to the
	// client default; a hung request is never allowed to block forever.
	RequestTimeout time.Duration `env:"BIDARO_REQUEST_TIMEOUT" envDefault:"30s"`

	// CredentialsPath is the file path of the durable token store.
	// Empty selects a per-user default under the OS config directory.
	CredentialsPath string `env:"BIDARO_CREDENTIALS_PATH"`

	// RedisURL, when set, selects the Redis-backed token store instead of the
	// file-backed one. Intended for shared headless deployments (CI bots).
	RedisURL string `env:"BIDARO_REDIS_URL"`

	// ClearCartOnCheckout removes purchased lines from the cart after a
	// payment URL is obtained. Off by default: the backend owns cart
	// clearing through its payment webhook.
	ClearCartOnCheckout bool `env:"BIDARO_CLEAR_CART_ON_CHECKOUT" envDefault:"false"`

	Debug bool `env:"BIDARO_DEBUG" envDefault:"false"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
//
// A .env file in the working directory is merged first when present; real
// environment variables always win over file entries.
func Load() (*Config, error) {

	// Best-effort preload. A missing .env is the normal production case.
	_ = godotenv.Load()

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// ResolveCredentialsPath returns the effective path of the file-backed token
// store, creating the parent directory if needed.
func (c *Config) ResolveCredentialsPath() (string, error) {
	if c.CredentialsPath != "" {
		return c.CredentialsPath, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot resolve user config dir: %w", err)
	}

	dir := filepath.Join(configDir, "bidaro")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("config: cannot create credential dir: %w", err)
	}

	return filepath.Join(dir, "credentials.json"), nil
}

// UseRedisStore reports whether the Redis-backed token store is selected.
func (c *Config) UseRedisStore() bool {
	return c.RedisURL != ""
}
