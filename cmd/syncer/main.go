package main

import (
	"fmt"

	"github.com/MKhiriev/go-local-sync/internal/adapter"
	"github.com/MKhiriev/go-local-sync/internal/client"
	"github.com/MKhiriev/go-local-sync/internal/config"
	"github.com/MKhiriev/go-local-sync/internal/logger"
	"github.com/MKhiriev/go-local-sync/internal/service"
	"github.com/MKhiriev/go-local-sync/internal/store"
	"github.com/MKhiriev/go-local-sync/internal/utils"
	"github.com/MKhiriev/go-local-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-local-sync")
	cfg, err := config.GetSyncerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	deviceID := cfg.App.DeviceID
	if deviceID == "" {
		deviceID = utils.NewGUIDGenerator().Generate()
		log.Info().Str("device_id", deviceID).Msg("generated device id")
	}

	transport, err := adapter.NewHTTPTransport(cfg.Adapter, deviceID, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote transport")
	}

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer storages.Close()

	collections, err := resolveCollections(cfg.Sync.Collections)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid collection subset")
	}

	services, err := service.NewServices(storages, transport, collections, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create services")
	}

	auth := models.AuthInfo{Token: cfg.App.AuthToken}
	app := client.NewApp(services, auth, cfg.Sync.Interval, log)

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("syncer run error")
	}
}

func resolveCollections(names []string) ([]models.Collection, error) {
	if len(names) == 0 {
		return models.AllCollections(), nil
	}

	collections := make([]models.Collection, 0, len(names))
	for _, name := range names {
		collection, err := models.ParseCollection(name)
		if err != nil {
			return nil, err
		}
		collections = append(collections, collection)
	}
	return collections, nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
