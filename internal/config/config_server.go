// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

package config

import (
	"fmt"
	"time"
)

// ServerConfig is the configuration view consumed by the storage server
// binary.
type ServerConfig struct {
	// Server holds the listen address and request timeout.
	Server Server
	// Storage holds the blob directory and write-back cache settings.
	Storage Storage
}

// GetServerConfig builds and validates the server configuration view.
func GetServerConfig() (*ServerConfig, error) {
	structured, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error getting structured config: %w", err)
	}

	cfg := &ServerConfig{
		Server:  structured.Server,
		Storage: structured.Storage,
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *ServerConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = "0.0.0.0:8080"
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Storage.CacheMaxBytes <= 0 {
		cfg.Storage.CacheMaxBytes = 15 * 1000 * 1000 // 15 MB
	}
	if cfg.Storage.FlushInterval <= 0 {
		cfg.Storage.FlushInterval = 10 * time.Second
	}
}

func (cfg *ServerConfig) validate() error {
	if cfg.Storage.BlobDir == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}
	return nil
}
