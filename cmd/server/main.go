package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-qr-keeper/internal/config"
	"github.com/MKhiriev/go-qr-keeper/internal/handler"
	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/MKhiriev/go-qr-keeper/internal/server"
	"github.com/MKhiriev/go-qr-keeper/internal/service"
	"github.com/MKhiriev/go-qr-keeper/internal/store"
	"github.com/MKhiriev/go-qr-keeper/internal/workers"
	"github.com/MKhiriev/go-qr-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("qr-keeper-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if buildVersion != "" && cfg.App.Version == config.DefaultVersion {
		cfg.App.Version = buildVersion
	}

	if err = logger.SetGlobalLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}

	log.Debug().
		Str("version", cfg.App.Version).
		Str("public_base_url", cfg.App.PublicBaseURL).
		Str("http_address", cfg.Server.HTTPAddress).
		Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()
	log.Info().Str("backend", storages.Backend()).Msg("storages ready")

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	bgWorkers := workers.NewWorkers(storages, cfg.Workers, log)
	bgWorkers.Run()
	defer bgWorkers.Stop()

	srv.RunServer()
}
