package main

import (
	"context"
	"fmt"
	"os"

	"github.com/amekhanov/taskvault/internal/cli"
	"github.com/amekhanov/taskvault/internal/config"
	"github.com/amekhanov/taskvault/internal/crypto"
	"github.com/amekhanov/taskvault/internal/logger"
	"github.com/amekhanov/taskvault/internal/service"
	"github.com/amekhanov/taskvault/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("taskvault")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	masterKey, err := crypto.LoadMasterKey(cfg.App.MasterKeyEnv)
	if err != nil {
		log.Fatal().Err(err).Str("env_var", cfg.App.MasterKeyEnv).Msg("master key unavailable")
	}

	deriver, err := crypto.NewKeyDeriver(masterKey.Secret())
	if err != nil {
		log.Fatal().Err(err).Msg("key deriver construction failed")
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create storage")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("closing storage")
		}
	}()

	services := service.NewServices(storages, crypto.NewPasswordHasher(), deriver, log)

	app := cli.NewApp(services, os.Stdin, os.Stdout, log)
	if err := app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("shell run error")
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
