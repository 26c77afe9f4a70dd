package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ewolkov/sketchsync/internal/logger"
	"github.com/ewolkov/sketchsync/internal/utils"
	"github.com/ewolkov/sketchsync/models"
)

const ifMatchVersionHeader = "If-Match-Version"

func (h *Handler) getScene(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	roomID := chi.URLParam(r, "roomID")

	doc, err := h.scenes.GetScene(roomID)
	if err != nil {
		log.Debug().Str("room", roomID).Err(err).Msg("scene not available")
		http.Error(w, "scene not found", statusFromError(err))
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}

func (h *Handler) putScene(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	roomID := chi.URLParam(r, "roomID")

	var doc models.SceneDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		log.Err(err).Msg("invalid scene document JSON")
		http.Error(w, "invalid scene document JSON", http.StatusBadRequest)
		return
	}

	var baseVersion *models.Version
	if raw := r.Header.Get(ifMatchVersionHeader); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Err(err).Str("header", raw).Msg("invalid base version header")
			http.Error(w, "invalid "+ifMatchVersionHeader+" header", http.StatusBadRequest)
			return
		}
		v := models.Version(parsed)
		baseVersion = &v
	}

	if err := h.scenes.PutScene(roomID, doc, baseVersion); err != nil {
		log.Error().Str("room", roomID).Err(err).Msg("error storing scene")
		http.Error(w, "error storing scene", statusFromError(err))
		return
	}

	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
