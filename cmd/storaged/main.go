package main

import (
	"context"
	"fmt"

	"github.com/ewolkov/sketchsync/internal/config"
	httphandler "github.com/ewolkov/sketchsync/internal/handler/http"
	"github.com/ewolkov/sketchsync/internal/logger"
	"github.com/ewolkov/sketchsync/internal/server"
	"github.com/ewolkov/sketchsync/internal/store"
	"github.com/ewolkov/sketchsync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.New("storaged")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	blobStore, err := store.NewCachedFS(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating blob store")
	}
	sceneStorage := store.NewSceneStorage(blobStore)

	handler := httphandler.NewHandler(sceneStorage, blobStore, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	ctx, cancel := context.WithCancel(context.Background())
	background := workers.NewWorkers(blobStore)
	done := make(chan struct{})
	go func() {
		background.Run(ctx)
		close(done)
	}()

	srv.RunServer()

	// Stop the flush loop; its shutdown path writes dirty entries out.
	cancel()
	<-done
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
