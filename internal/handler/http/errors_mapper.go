package http

import (
	"errors"
	"net/http"

	"github.com/ewolkov/sketchsync/internal/store"
)

func statusFromError(err error) int {
	switch {
	case errors.Is(err, store.ErrBlobNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrVersionMismatch):
		return http.StatusConflict
	case errors.Is(err, store.ErrPathOutsideRoot):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
