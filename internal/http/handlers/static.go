package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// StaticFile streams a previously generated pin out of the file store.
func (a *App) StaticFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	data, err := a.Store.Read(r.Context(), filename)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "file not found")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
