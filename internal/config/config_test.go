// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_FillsDefaults(t *testing.T) {
	cfg := &StructuredConfig{
		Storage: Storage{DB: DB{DSN: "/tmp/sync.db"}},
		Adapter: Adapter{BaseURL: "https://storage.example.com"},
	}

	require.NoError(t, cfg.validate())
	assert.Equal(t, 5*time.Second, cfg.Storage.DB.BusyTimeout)
	assert.Equal(t, 15*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Sync.Interval)
}

func TestValidate_RejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StructuredConfig
		wantErr error
	}{
		{
			name:    "EmptyDSN",
			cfg:     StructuredConfig{Adapter: Adapter{BaseURL: "https://x"}},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "InMemoryDSN",
			cfg: StructuredConfig{
				Storage: Storage{DB: DB{DSN: ":memory:"}},
				Adapter: Adapter{BaseURL: "https://x"},
			},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "MissingBaseURL",
			cfg:     StructuredConfig{Storage: Storage{DB: DB{DSN: "/tmp/sync.db"}}},
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name: "UnknownCollection",
			cfg: StructuredConfig{
				Storage: Storage{DB: DB{DSN: "/tmp/sync.db"}},
				Adapter: Adapter{BaseURL: "https://x"},
				Sync:    Sync{Collections: []string{"passwords"}},
			},
			wantErr: ErrInvalidSyncConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	doc := map[string]any{
		"app": map[string]any{"device_id": "device-1"},
		"storage": map[string]any{
			"db": map[string]any{"dsn": "/data/sync.db", "busy_timeout": "3s"},
		},
		"adapter": map[string]any{
			"base_url":        "https://storage.example.com",
			"request_timeout": "20s",
		},
		"sync": map[string]any{
			"interval":    "10m",
			"collections": []string{"history", "bookmarks"},
		},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "device-1", cfg.App.DeviceID)
	assert.Equal(t, "/data/sync.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 3*time.Second, cfg.Storage.DB.BusyTimeout)
	assert.Equal(t, "https://storage.example.com", cfg.Adapter.BaseURL)
	assert.Equal(t, 20*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 10*time.Minute, cfg.Sync.Interval)
	assert.Equal(t, []string{"history", "bookmarks"}, cfg.Sync.Collections)
}

func TestParseJSON_FileMissing(t *testing.T) {
	_, err := parseJSON("/nonexistent/config.json")
	require.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Duration
	}{
		{"String", `"1h"`, time.Hour},
		{"Float", `1000000000`, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			require.NoError(t, json.Unmarshal([]byte(tt.in), &d))
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}

	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`"not-a-duration"`), &d))
}

func TestParseEnv(t *testing.T) {
	t.Setenv("STORAGE_DB_DSN", "/env/sync.db")
	t.Setenv("ADAPTER_BASE_URL", "https://env.example.com")
	t.Setenv("SYNC_COLLECTIONS", "history,meta")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "/env/sync.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "https://env.example.com", cfg.Adapter.BaseURL)
	assert.Equal(t, []string{"history", "meta"}, cfg.Sync.Collections)
}
