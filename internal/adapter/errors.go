package adapter

import "errors"

var (
	// ErrSceneNotFound reports that a room has never been saved. This is an
	// expected, common first-save condition, not a failure.
	ErrSceneNotFound = errors.New("scene not found")

	// ErrVersionConflict reports that a conditional write was rejected
	// because the stored scene version no longer matches the caller's base.
	ErrVersionConflict = errors.New("scene version conflict")

	// ErrFileNotFound reports that an attachment blob has not been uploaded
	// yet. Per-item expected condition inside a batch.
	ErrFileNotFound = errors.New("file not found")

	// ErrBadRequest and friends classify non-2xx transport responses.
	ErrBadRequest          = errors.New("bad request")
	ErrInternalServerError = errors.New("internal server error")
)
