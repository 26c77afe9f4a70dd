package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. Scene documents live under /scenes/{roomID};
// everything else two segments deep is treated as an attachment blob path,
// matching the client's <prefix>/<id> addressing.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	router.Get("/scenes/{roomID}", h.getScene)
	router.Post("/scenes/{roomID}", h.putScene)

	router.Post("/{prefix}/{id}", h.uploadFile)
	router.Get("/{prefix}/{id}", h.downloadFile)

	return router
}
