// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

package config

import (
	"fmt"
	"net/http"
	"time"
)

// ClientConfig is the configuration view consumed by the sync engine's
// client-side components (adapter, orchestrator, attachment syncer, save
// job). Constructed from the merged [StructuredConfig]; no process-global
// configuration state exists.
type ClientConfig struct {
	// Remote holds the remote blob store endpoint settings.
	Remote Remote
	// Workers holds the background save and batch fan-out settings.
	Workers Workers
}

// GetClientConfig builds and validates the client configuration view.
// Missing optional values are defaulted; a missing base URL is a typed
// validation error, never a silently-empty value.
func GetClientConfig() (*ClientConfig, error) {
	structured, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error getting structured config: %w", err)
	}

	cfg := &ClientConfig{
		Remote:  structured.Remote,
		Workers: structured.Workers,
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Remote.RequestTimeout <= 0 {
		cfg.Remote.RequestTimeout = 15 * time.Second
	}
	if cfg.Remote.NotFoundThreshold <= 0 {
		cfg.Remote.NotFoundThreshold = http.StatusBadRequest
	}
	if cfg.Workers.SaveInterval <= 0 {
		cfg.Workers.SaveInterval = 30 * time.Second
	}
	if cfg.Workers.BatchConcurrency <= 0 {
		cfg.Workers.BatchConcurrency = 8
	}
}

func (cfg *ClientConfig) validate() error {
	if cfg.Remote.BaseURL == "" {
		return ErrInvalidRemoteConfigs
	}
	if cfg.Workers.BatchConcurrency < 1 {
		return ErrInvalidWorkerConfigs
	}
	return nil
}
