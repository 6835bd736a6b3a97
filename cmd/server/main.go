package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-expense-ledger/internal/config"
	"github.com/MKhiriev/go-expense-ledger/internal/handler"
	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/internal/server"
	"github.com/MKhiriev/go-expense-ledger/internal/service"
	"github.com/MKhiriev/go-expense-ledger/internal/store"
	"github.com/MKhiriev/go-expense-ledger/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("expense-ledger")
	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("expense ledger stopped")
	}
}

// run wires the application and blocks until the server stops. Storage is
// closed on every return path.
func run(log *logger.Logger) error {
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	if !logger.SetLevel(cfg.App.LogLevel) && cfg.App.LogLevel != "" {
		log.Warn().Str("level", cfg.App.LogLevel).Msg("unknown log level, keeping debug")
	}
	cfg.App.Version = buildVersion

	log.Debug().Str("http_address", cfg.Server.HTTPAddress).Str("db_driver", cfg.Storage.DB.Driver).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer func() {
		if closeErr := storages.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, *cfg, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(services, cfg.App, log), cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	return srv.RunServer()
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
