package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"pinforge/internal/compose"
	"pinforge/internal/http/handlers"
	"pinforge/internal/http/httpapi"
	"pinforge/internal/infra"
	imageprov "pinforge/internal/providers/image"
	"pinforge/internal/providers/runware"
	"pinforge/internal/storage"
)

func main() {
	// .env is optional.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	fonts, err := compose.NewFontResolver(cfg.FontDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize font resolver")
	}
	engine := compose.NewEngine(fonts)

	store, err := storage.NewFileStore(cfg.StaticDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize file store")
	}

	var generator imageprov.Generator
	if cfg.RunwareAPIKey != "" {
		client := runware.NewClient(runware.Options{
			APIKey:  cfg.RunwareAPIKey,
			BaseURL: cfg.RunwareBaseURL,
			Model:   cfg.RunwareModel,
			Logger:  &logger,
		})
		generator = imageprov.NewRunwareGenerator(client)
		logger.Info().Str("model", client.Model()).Msg("runware generator configured")
	} else {
		logger.Warn().Msg("RUNWARE_API_KEY not set; prompt-based generation disabled")
	}
	fetcher := imageprov.NewHTTPFetcher(nil)

	app := handlers.NewApp(logger, engine, store, generator, fetcher, cfg.StorageBaseURL)
	router := httpapi.NewRouter(app, logger, cfg)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
