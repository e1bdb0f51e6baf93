package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"monitor-swiezosci/internal/api"
	"monitor-swiezosci/internal/cli"
	"monitor-swiezosci/internal/config"
	"monitor-swiezosci/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Nie można wczytać konfiguracji: %v", err)
	}

	store := session.NewStore(cfg.Session.Path)
	if err := store.Load(); err != nil {
		log.Fatalf("Nie można wczytać sesji: %v", err)
	}

	client := api.NewClient(cfg.API.BaseURL, store)

	app := &cli.App{
		Config:  cfg,
		Session: store,
		Client:  client,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(app)
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
