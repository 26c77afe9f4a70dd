package store

import "errors"

var (
	// ErrBlobNotFound reports that no blob exists at the requested path.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrVersionMismatch reports that a conditional scene write carried a
	// base version different from the stored document's version.
	ErrVersionMismatch = errors.New("scene version mismatch")

	// ErrPathOutsideRoot reports a blob name escaping the storage root.
	ErrPathOutsideRoot = errors.New("path outside storage root")
)
