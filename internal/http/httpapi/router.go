package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"pinforge/internal/http/handlers"
	"pinforge/internal/infra"
	"pinforge/internal/middleware"
)

// NewRouter assembles the chi router with the standard middleware chain.
func NewRouter(app *handlers.App, logger zerolog.Logger, cfg *infra.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.CORS(cfg.CORSOrigins),
		middleware.Logger(logger),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)
	r.Post("/generate-image", app.GeneratePin)
	r.Get("/static/{filename}", app.StaticFile)

	return r
}
