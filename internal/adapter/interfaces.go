// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

// Package adapter implements the HTTP client for the remote blob store: one
// opaque scene document per room, plus independently addressed attachment
// blobs. No call retries internally; transport failures surface to the
// caller.
package adapter

import (
	"context"

	"github.com/ewolkov/sketchsync/models"
)

// SceneStore is the remote blob endpoint as seen by the sync engine.
type SceneStore interface {
	// FetchScene reads the scene document stored for roomID. Returns
	// [ErrSceneNotFound] when the room has never been saved, or a transport
	// error for any other non-2xx response or network failure.
	FetchScene(ctx context.Context, roomID string) (*models.SceneDocument, error)

	// PutScene overwrites the whole document at roomID's path. Idempotent;
	// last writer wins.
	PutScene(ctx context.Context, roomID string, doc models.SceneDocument) error

	// PutSceneIf is PutScene with a version precondition: the write is
	// rejected with [ErrVersionConflict] unless the stored document's
	// version equals baseVersion.
	PutSceneIf(ctx context.Context, roomID string, doc models.SceneDocument, baseVersion models.Version) error

	// UploadFile stores raw bytes at <prefix>/<id>. Non-2xx is an error.
	UploadFile(ctx context.Context, prefix, id string, data []byte) error

	// DownloadFile fetches the raw bytes stored at <prefix>/<id>. Any
	// response status at or above the configured not-found threshold is an
	// error.
	DownloadFile(ctx context.Context, prefix, id string) ([]byte, error)
}
