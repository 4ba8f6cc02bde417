package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skybi/assocarray/internal/api"
	"github.com/skybi/assocarray/internal/config"
	"github.com/skybi/assocarray/internal/registry"
	"github.com/skybi/assocarray/internal/storage"
	"github.com/skybi/assocarray/internal/storage/cache"
	"github.com/skybi/assocarray/internal/storage/inmem"
	"github.com/skybi/assocarray/internal/storage/postgres"
	"github.com/skybi/assocarray/internal/task"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration
	log.Info().Msg("loading configuration...")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if cfg.IsEnvProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("config", fmt.Sprintf("%+v", cfg)).Msg("")

	// Initialize the configured snapshot storage driver
	log.Info().Str("driver", cfg.StorageDriver).Msg("initializing snapshot storage...")
	var driver storage.Driver
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		driver = postgres.New(cfg.PostgresDSN)
	default:
		driver = inmem.New()
	}
	if cfg.CacheLifetime > 0 {
		driver = cache.New(driver, cfg.CacheLifetime, cfg.CacheCleanupInterval)
	}
	if err := driver.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("could not initialize the snapshot storage")
	}
	defer driver.Close()

	// Create the array registry
	reg := registry.New(driver.Snapshots(), cfg.DefaultCapacity)

	// Schedule a task that snapshots every array if requested
	if cfg.SnapshotInterval > 0 {
		snapshotTask := task.NewRepeating(func() {
			n, err := reg.SnapshotAll(context.Background())
			if err != nil {
				log.Error().Err(err).Msg("could not snapshot all arrays")
			} else if n > 0 {
				log.Info().Int("amount", n).Msg("snapshotted arrays")
			}
		}, cfg.SnapshotInterval)
		snapshotTask.Start()
		defer snapshotTask.Stop(true)
	}

	// Start up the array API
	log.Info().Str("address", cfg.ListenAddress).Msg("starting up the array API...")
	apis := &api.Service{
		Config:   cfg,
		Registry: reg,
	}
	apiErrs := make(chan error, 1)
	apis.Startup(apiErrs)
	go func() {
		err := <-apiErrs
		log.Fatal().Err(err).Msg("the API service raised an unexpected error")
	}()
	defer func() {
		log.Info().Msg("shutting down the array API...")
		apis.Shutdown()
	}()

	log.Info().Msg("done!")
	defer log.Info().Msg("shutting down...")

	// Wait for the application to be terminated
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)
	<-shutdown
}
