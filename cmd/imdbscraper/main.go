package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/koenekelschot/imdbscraper/internal/api"
	"github.com/koenekelschot/imdbscraper/internal/config"
	"github.com/koenekelschot/imdbscraper/internal/imdb"
	"github.com/koenekelschot/imdbscraper/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Best-effort: a missing .env is the normal case outside development.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Logging)
	defer log.Close()

	log.Info().
		Str("logLevel", cfg.Logging.Level).
		Str("address", cfg.Server.Address()).
		Msg("Starting imdbscraper")

	client := imdb.NewClient(cfg.Imdb, log.Logger)
	server := api.NewServer(client, cfg, log.Logger)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("Server failed")
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
