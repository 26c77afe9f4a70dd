package http

import (
	"github.com/ewolkov/sketchsync/internal/logger"
	"github.com/ewolkov/sketchsync/internal/store"
)

// Handler serves the blob store HTTP interface: one scene document per room
// plus raw attachment blobs under arbitrary path prefixes.
type Handler struct {
	scenes store.SceneStorage
	blobs  store.BlobStore

	logger *logger.Logger
}

func NewHandler(scenes store.SceneStorage, blobs store.BlobStore, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		scenes: scenes,
		blobs:  blobs,
		logger: logger,
	}
}
