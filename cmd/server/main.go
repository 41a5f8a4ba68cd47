package main

import (
	"context"
	"fmt"

	"github.com/PedroVerardo/skinone-Upload-Classification/internal/config"
	handler "github.com/PedroVerardo/skinone-Upload-Classification/internal/handler/http"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/server"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/service"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/store"
	"github.com/PedroVerardo/skinone-Upload-Classification/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("skinone-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	stages, err := models.ParseStageSet(cfg.App.Stages)
	if err != nil {
		log.Fatal().Err(err).Msg("error parsing stage vocabulary")
	}

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services := service.NewServices(storages, *cfg, stages, log)
	handlers := handler.NewHandler(services, cfg.App, log)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
