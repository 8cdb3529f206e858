// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the API.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// RetryCount is how many times a failed read is retried.
	RetryCount int
	// RetryWait is the pause between retries.
	RetryWait time.Duration
}

// ClientConfig is the configuration view of the TUI client.
type ClientConfig struct {
	Adapter   ClientAdapter
	ExportDir       string
	RefreshInterval time.Duration
	LogDir          string
	Version         string
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration. Server-only settings are not required.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := load()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			RetryCount:     cfg.Adapter.RetryCount,
			RetryWait:      cfg.Adapter.RetryWait,
		},
		ExportDir:       cfg.Client.ExportDir,
		RefreshInterval: cfg.Client.RefreshInterval,
		LogDir:          cfg.Client.LogDir,
		Version:         cfg.App.Version,
	}

	return clientCfg, clientCfg.validate()
}
