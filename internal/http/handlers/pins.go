package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"pinforge/internal/domain"
	"pinforge/internal/middleware"
)

type generatePinRequest struct {
	ImagePrompt string `json:"image_prompt"`
	ImageURL    string `json:"image_url"`
	Title       string `json:"title"`
	BrandingURL string `json:"BrandingURL"`
	Style       string `json:"Style"`
}

type generatePinResponse struct {
	ImageURL string `json:"image_url"`
	Status   string `json:"status"`
}

// GeneratePin acquires the source image (AI generation or plain download),
// renders the pin and persists it under the static directory.
func (a *App) GeneratePin(w http.ResponseWriter, r *http.Request) {
	var req generatePinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "missing title parameter")
		return
	}
	if req.Style == "" {
		req.Style = domain.DefaultStyle.String()
	}
	style, err := domain.ParseStyle(req.Style)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "unsupported style")
		return
	}

	log := a.Logger.With().Str("request_id", middleware.RequestIDFromContext(r.Context())).Logger()

	var source []byte
	switch {
	case req.ImageURL != "":
		source, err = a.Fetcher.Fetch(r.Context(), req.ImageURL)
		if err != nil {
			log.Error().Err(err).Msg("source image download failed")
			a.error(w, http.StatusBadGateway, "fetch_failed", "failed to download source image")
			return
		}
	case req.ImagePrompt != "":
		if a.Generator == nil {
			a.error(w, http.StatusServiceUnavailable, "not_configured", "image generation is not configured")
			return
		}
		source, err = a.Generator.Generate(r.Context(), req.ImagePrompt)
		if err != nil {
			log.Error().Err(err).Msg("image generation failed")
			a.error(w, http.StatusBadGateway, "generation_failed", "failed to generate image")
			return
		}
	default:
		a.error(w, http.StatusBadRequest, "bad_request", "missing image_prompt or image_url parameter")
		return
	}

	result, err := a.Engine.Render(domain.PinRequest{
		Title:    req.Title,
		Image:    source,
		Branding: req.BrandingURL,
		Style:    style,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDecode):
			a.error(w, http.StatusUnprocessableEntity, "decode_failed", "source bytes are not a valid image")
		case errors.Is(err, domain.ErrStyleNotRecognized):
			a.error(w, http.StatusBadRequest, "bad_request", "unsupported style")
		default:
			log.Error().Err(err).Str("style", style.String()).Msg("pin render failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to render pin")
		}
		return
	}

	filename := fmt.Sprintf("generated_%d_%s.png", time.Now().Unix(), shortID())
	key, err := a.Store.Write(r.Context(), filename, result.Data)
	if err != nil {
		log.Error().Err(err).Msg("pin persist failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to store pin")
		return
	}

	log.Info().
		Str("key", key).
		Str("style", style.String()).
		Int("bytes", len(result.Data)).
		Msg("pin rendered")

	a.json(w, http.StatusOK, generatePinResponse{
		ImageURL: a.BaseURL + "/" + key,
		Status:   "success",
	})
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
