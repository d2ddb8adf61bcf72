// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"
	"time"

	"github.com/MKhiriev/go-local-sync/models"
)

// validate checks that the final merged [StructuredConfig] satisfies the
// engine's invariants, filling documented defaults for unset durations.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.DB.BusyTimeout == 0 {
		cfg.Storage.DB.BusyTimeout = 5 * time.Second
	}

	if cfg.Adapter.BaseURL == "" {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = 15 * time.Second
	}

	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = 5 * time.Minute
	}
	for _, name := range cfg.Sync.Collections {
		if _, err := models.ParseCollection(name); err != nil {
			return ErrInvalidSyncConfigs
		}
	}

	return nil
}
