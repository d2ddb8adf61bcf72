package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid store settings
	// (for example, empty DSN or an in-memory DSN outside tests).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAdapterConfigs indicates invalid transport settings
	// (for example, missing base URL).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidSyncConfigs indicates invalid sync job settings
	// (for example, a collection name outside the known set).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
)
