// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

package config

import "time"

// StructuredConfig is the top-level configuration container for sketchsync.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Remote holds the client-side settings for the remote blob store
	// endpoint.
	Remote Remote `envPrefix:"REMOTE_"`

	// Server holds network and timeout settings for the storage server.
	Server Server `envPrefix:"SERVER_"`

	// Storage holds the storage server's blob directory and write-back
	// cache settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds background job settings (periodic save, batch fan-out).
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Remote holds client settings for the remote scene/attachment endpoint.
type Remote struct {
	// BaseURL is the base URL of the remote blob store
	// (e.g. "https://storage.example.com").
	// Env: REMOTE_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds every outbound network call. Timeouts surface
	// as transport errors to the caller.
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// NotFoundThreshold is the HTTP status from which an attachment
	// download counts as failed for that id. Defaults to 400.
	// Env: REMOTE_NOT_FOUND_THRESHOLD
	NotFoundThreshold int `env:"NOT_FOUND_THRESHOLD"`
}

// Server holds network settings for the storage server binary.
type Server struct {
	// HTTPAddress is the TCP address the storage server listens on, in
	// "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage holds blob persistence settings for the storage server.
type Storage struct {
	// BlobDir is the directory under which scene documents and attachment
	// blobs are persisted.
	// Env: STORAGE_BLOB_DIR
	BlobDir string `env:"BLOB_DIR"`

	// CacheMaxBytes caps the in-memory write-back cache size. Least
	// accessed clean entries are evicted beyond it.
	// Env: STORAGE_CACHE_MAX_BYTES
	CacheMaxBytes int64 `env:"CACHE_MAX_BYTES"`

	// FlushInterval is how often dirty cache entries are written to disk.
	// Env: STORAGE_FLUSH_INTERVAL
	FlushInterval time.Duration `env:"FLUSH_INTERVAL"`
}

// Workers holds background job settings.
type Workers struct {
	// SaveInterval is the period of the background scene save job.
	// Env: WORKERS_SAVE_INTERVAL
	SaveInterval time.Duration `env:"SAVE_INTERVAL"`

	// BatchConcurrency bounds the attachment batch fan-out. Defaults to 8.
	// Env: WORKERS_BATCH_CONCURRENCY
	BatchConcurrency int `env:"BATCH_CONCURRENCY"`
}
