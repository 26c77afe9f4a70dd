// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

// Package store implements the storage server's persistence layer: a
// write-back cached blob store fronting the filesystem, and a scene document
// store with version-conditional writes layered on top of it.
package store

import "github.com/ewolkov/sketchsync/models"

// BlobStore reads and writes opaque blobs addressed by a slash-separated
// name relative to the storage root.
type BlobStore interface {
	// ReadBlob returns the blob stored at name, or [ErrBlobNotFound].
	ReadBlob(name string) ([]byte, error)

	// WriteBlob replaces the blob at name. The write lands in the cache
	// immediately and reaches disk on the next flush cycle.
	WriteBlob(name string, data []byte) error
}

// SceneStorage persists one scene document per room.
type SceneStorage interface {
	// GetScene returns the document stored for roomID, or [ErrBlobNotFound]
	// when the room has never been saved.
	GetScene(roomID string) (models.SceneDocument, error)

	// PutScene replaces roomID's document wholesale. When baseVersion is
	// non-nil the write is conditional: it fails with [ErrVersionMismatch]
	// unless the stored document's version equals *baseVersion.
	PutScene(roomID string, doc models.SceneDocument, baseVersion *models.Version) error
}
