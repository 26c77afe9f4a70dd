// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

// Package service contains the reconciliation orchestrator, the per
// connection version cache, the attachment batch syncer and the periodic
// save job. It drives the scene cipher and the remote store adapter; the
// merge, fingerprint and restore functions are external collaborators
// supplied by the application.
package service

import (
	"context"
	"time"

	"github.com/ewolkov/sketchsync/models"
)

// SceneSyncService is the save/load state machine keeping one room's scene
// consistent with the remote store.
type SceneSyncService interface {
	// Save reconciles localElements against the latest remote document and
	// persists the result. It returns (nil, nil) without any network call
	// when no room or connection context exists or the connection is
	// already up to date. On success it returns the round-tripped persisted
	// elements, never the in-memory merge result.
	//
	// Transport and decrypt errors propagate to the caller unretried; only
	// version conflicts of the conditional write are retried, bounded. A
	// failed save leaves the version cache untouched, so the next
	// dirty-check cycle retries from scratch.
	Save(ctx context.Context, room models.RoomRef, conn models.ConnectionID, localElements []models.Element, ui models.UIState) ([]models.Element, error)

	// Load fetches and decrypts the room's scene on join or reconnect.
	// A missing document or transport failure yields (nil, nil) — nothing
	// to join. Decrypt failures propagate: wrong key must never silently
	// return wrong data.
	Load(ctx context.Context, room models.RoomRef, conn models.ConnectionID) ([]models.Element, error)

	// IsSavedToRemote reports whether elements are known durable for conn.
	// With no active room or connection there is nothing to save, so the
	// session is vacuously considered saved.
	IsSavedToRemote(room models.RoomRef, conn models.ConnectionID, elements []models.Element) bool
}

// AttachmentSyncer transfers binary attachment blobs in batches. Per-item
// failures are data, not errors: a batch always settles every item and
// returns a partitioned result.
type AttachmentSyncer interface {
	// UploadBatch stores every item under pathPrefix concurrently. The
	// failure of one item never aborts or rolls back others.
	UploadBatch(ctx context.Context, pathPrefix string, items []AttachmentUploadItem) BatchUploadResult

	// DownloadBatch fetches, decompresses and decrypts the blobs for the
	// distinct ids in ids. Duplicate ids are requested once. Any per-id
	// request, decompression or decryption failure lands the id in
	// FailedIDs without affecting the others.
	DownloadBatch(ctx context.Context, pathPrefix string, key []byte, ids []string) BatchDownloadResult
}

// SceneSaveJob periodically drives SceneSyncService.Save for one room.
type SceneSaveJob interface {
	// Start launches the background save loop. A non-positive interval
	// falls back to the configured default. Any previously running loop is
	// stopped first.
	Start(ctx context.Context, room models.RoomRef, conn models.ConnectionID, interval time.Duration)

	// Stop cancels the loop and blocks until it has fully exited. Safe to
	// call when the job is not running.
	Stop()
}

// SceneSnapshotFunc returns the caller's current local elements and UI state
// for a periodic save tick.
type SceneSnapshotFunc func() ([]models.Element, models.UIState)

// AttachmentUploadItem is one sealed blob to store under its id.
type AttachmentUploadItem struct {
	ID   string
	Data []byte
}

// BatchUploadResult partitions a batch's ids into succeeded and failed.
type BatchUploadResult struct {
	SucceededIDs []string
	FailedIDs    []string
}

// BatchDownloadResult carries the decoded blobs by id plus the ids that
// failed to land.
type BatchDownloadResult struct {
	Loaded    map[string]models.AttachmentBlob
	FailedIDs []string
}
