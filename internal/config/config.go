// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container of formdesk.
// The server reads App, Storage and Server; the TUI client reads Adapter
// and Client.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	App     App     `envPrefix:"APP_"`
	Storage Storage `envPrefix:"STORAGE_"`
	Server  Server  `envPrefix:"SERVER_"`
	Adapter Adapter `envPrefix:"ADAPTER_"`
	Client  Client  `envPrefix:"CLIENT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds token and public-facing settings of the server.
type App struct {
	// TokenSignKey signs and verifies operator JWTs.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of an operator session.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// PublicURL is the externally reachable base URL used in embed codes,
	// e.g. "https://forms.example.com".
	// Env: APP_PUBLIC_URL
	PublicURL string `env:"PUBLIC_URL"`

	// Version is exposed via /api/version/.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the database connection settings. Postgres and SQLite DSNs are
// both accepted; the store picks the driver from the DSN shape.
type DB struct {
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds listener and timeout settings of the API server.
type Server struct {
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Adapter configures how the client reaches the API server.
type Adapter struct {
	// HTTPAddress is the base URL of the API, e.g. "http://localhost:8080".
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RetryCount is how many times a failed read is retried.
	// Env: ADAPTER_RETRY_COUNT
	RetryCount int `env:"RETRY_COUNT"`

	// RetryWait is the pause between retries.
	// Env: ADAPTER_RETRY_WAIT
	RetryWait time.Duration `env:"RETRY_WAIT"`
}

// Client holds TUI-only settings.
type Client struct {
	// ExportDir is where CSV exports are written.
	// Env: CLIENT_EXPORT_DIR
	ExportDir string `env:"EXPORT_DIR"`
	// RefreshInterval is how often the dashboard counters are reloaded.
	// Env: CLIENT_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
	// LogDir holds the client log file. Empty means next to the executable.
	// Env: CLIENT_LOG_DIR
	LogDir string `env:"LOG_DIR"`
}

// GetStructuredConfig loads the server configuration from environment
// variables, command-line flags and an optional JSON file, fills defaults
// and validates the result.
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}

func load() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
