package http

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ewolkov/sketchsync/internal/logger"
)

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	prefix := chi.URLParam(r, "prefix")
	id := chi.URLParam(r, "id")

	defer r.Body.Close()
	data, err := io.ReadAll(r.Body)
	if err != nil {
		log.Err(err).Msg("error reading upload body")
		http.Error(w, "error reading upload body", http.StatusBadRequest)
		return
	}

	if err := h.blobs.WriteBlob(prefix+"/"+id, data); err != nil {
		log.Error().Str("prefix", prefix).Str("id", id).Err(err).Msg("error storing blob")
		http.Error(w, "error storing blob", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) downloadFile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	prefix := chi.URLParam(r, "prefix")
	id := chi.URLParam(r, "id")

	data, err := h.blobs.ReadBlob(prefix + "/" + id)
	if err != nil {
		log.Debug().Str("prefix", prefix).Str("id", id).Err(err).Msg("blob not available")
		http.Error(w, "blob not found", statusFromError(err))
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
