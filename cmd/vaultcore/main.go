package main

import (
	"fmt"
	"os"

	"github.com/pswdapp/vaultcore/internal/adapter"
	"github.com/pswdapp/vaultcore/internal/client"
	"github.com/pswdapp/vaultcore/internal/config"
	"github.com/pswdapp/vaultcore/internal/logger"
	"github.com/pswdapp/vaultcore/internal/service"
	"github.com/pswdapp/vaultcore/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.New("vaultcore")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	registry, err := adapter.NewRegistryClient(cfg.Registry, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create registry client")
	}

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services := service.NewServices(storages, registry, cfg, log)

	app, err := client.NewApp(services, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Error().Err(err).Msg("client run error")
		os.Exit(1)
	}
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
