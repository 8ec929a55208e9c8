package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"pinforge/internal/compose"
	imageprov "pinforge/internal/providers/image"
	"pinforge/internal/storage"
)

// App bundles the dependencies the HTTP handlers need.
type App struct {
	Logger    zerolog.Logger
	Engine    *compose.Engine
	Store     *storage.FileStore
	Generator imageprov.Generator
	Fetcher   imageprov.Fetcher
	BaseURL   string
}

// NewApp builds the handler container. Generator may be nil when no API key
// is configured; the generate endpoint then reports 503 for prompt sources.
func NewApp(logger zerolog.Logger, engine *compose.Engine, store *storage.FileStore, generator imageprov.Generator, fetcher imageprov.Fetcher, baseURL string) *App {
	return &App{
		Logger:    logger,
		Engine:    engine,
		Store:     store,
		Generator: generator,
		Fetcher:   fetcher,
		BaseURL:   baseURL,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, msg string) {
	a.json(w, status, map[string]string{"code": code, "error": msg})
}
