package config

import (
	"flag"
	"strings"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d database file path (SQLite DSN)
//	-base-url remote storage endpoint, scheme included
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-busy-timeout writer-lock wait bound (e.g., "5s")
//	-sync-interval periodic sync interval (e.g., "5m")
//	-collections comma-separated collection subset (default: all)
//	-device-id device identifier reported to the remote service
//	-token bearer token for the remote storage endpoint
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var databaseDSN string
	var baseURL string
	var requestTimeout time.Duration
	var busyTimeout time.Duration
	var syncInterval time.Duration
	var collections string
	var deviceID string
	var authToken string
	var jsonConfigPath string

	flag.StringVar(&databaseDSN, "d", "", "Database file path")
	flag.StringVar(&baseURL, "base-url", "", "Remote storage endpoint")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&busyTimeout, "busy-timeout", 0, "Writer-lock wait bound (e.g., 5s)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Periodic sync interval (e.g., 5m)")
	flag.StringVar(&collections, "collections", "", "Comma-separated collection subset")
	flag.StringVar(&deviceID, "device-id", "", "Device identifier")
	flag.StringVar(&authToken, "token", "", "Bearer token for the remote storage endpoint")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	var collectionList []string
	if collections != "" {
		collectionList = strings.Split(collections, ",")
	}

	return &StructuredConfig{
		App: App{
			DeviceID:  deviceID,
			AuthToken: authToken,
		},
		Storage: Storage{
			DB: DB{
				DSN:         databaseDSN,
				BusyTimeout: busyTimeout,
			},
		},
		Adapter: Adapter{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
		},
		Sync: Sync{
			Interval:    syncInterval,
			Collections: collectionList,
		},
		JSONFilePath: jsonConfigPath,
	}
}
