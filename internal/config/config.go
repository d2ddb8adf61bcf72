// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-local-sync engine. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the device identifier
	// reported to the remote service.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the embedded SQLite store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds network settings for the remote storage transport.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Sync holds background sync job settings.
	Sync Sync `envPrefix:"SYNC_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// DeviceID identifies this device to the remote service. Sent as the
	// X-Client-ID header on every request so the server can distinguish
	// devices sharing one account. Generated on first run when empty.
	DeviceID string `env:"DEVICE_ID"`

	// AuthToken is the bearer token for the remote storage endpoint. The
	// engine never inspects it; it is handed verbatim to the transport.
	AuthToken string `env:"AUTH_TOKEN"`
}

// Storage groups the configuration of the embedded store.
type Storage struct {
	// DB holds the SQLite connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB contains the embedded database connection settings.
type DB struct {
	// DSN is the SQLite database file path.
	DSN string `env:"DSN"`

	// BusyTimeout bounds how long a statement waits on the writer lock
	// before failing with a busy error. Defaults to 5s.
	BusyTimeout time.Duration `env:"BUSY_TIMEOUT"`
}

// Adapter holds network address and timeout settings for the remote
// storage transport.
type Adapter struct {
	// BaseURL is the remote storage endpoint, scheme included.
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the default timeout for outbound requests.
	// Defaults to 15s.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Sync holds the background sync job settings.
type Sync struct {
	// Interval defines how often the periodic sync job runs a full round.
	// Defaults to 5m.
	Interval time.Duration `env:"INTERVAL"`

	// Collections optionally restricts which collections are synced.
	// Empty means all known collections.
	Collections []string `env:"COLLECTIONS" envSeparator:","`
}

// GetSyncerConfig loads, merges, and validates the engine configuration.
//
// Sources are merged in priority order: environment variables, command-line
// flags, then the optional JSON file either of them referenced. The merged
// result is validated before being returned.
func GetSyncerConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
