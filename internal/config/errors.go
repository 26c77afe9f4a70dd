package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidRemoteConfigs indicates invalid remote store settings
	// (for example, a missing or unparseable base URL).
	ErrInvalidRemoteConfigs = errors.New("invalid remote store configuration")
	// ErrInvalidServerConfigs indicates invalid storage server settings
	// (for example, a missing listen address).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates invalid blob storage settings
	// (for example, an empty blob directory).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, a negative batch concurrency).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
