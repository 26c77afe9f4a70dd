// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewolkov/sketchsync/internal/config"
	"github.com/ewolkov/sketchsync/internal/logger"
	"github.com/ewolkov/sketchsync/models"
)

func newTestSceneStorage(t *testing.T) SceneStorage {
	t.Helper()
	blobs, err := NewCachedFS(config.Storage{
		BlobDir:       t.TempDir(),
		FlushInterval: time.Hour,
	}, logger.Nop())
	require.NoError(t, err)
	return NewSceneStorage(blobs)
}

func testDoc(version models.Version) models.SceneDocument {
	return models.SceneDocument{
		SceneVersion: version,
		IV:           []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		Ciphertext:   []byte("sealed scene"),
	}
}

func TestSceneStorage_PutThenGet(t *testing.T) {
	storage := newTestSceneStorage(t)
	doc := testDoc(42)

	require.NoError(t, storage.PutScene("room-1", doc, nil))

	got, err := storage.GetScene("room-1")
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestSceneStorage_GetMissingRoom(t *testing.T) {
	storage := newTestSceneStorage(t)

	_, err := storage.GetScene("room-unknown")
	require.ErrorIs(t, err, ErrBlobNotFound)
}

func TestSceneStorage_UnconditionalPutReplaces(t *testing.T) {
	storage := newTestSceneStorage(t)

	require.NoError(t, storage.PutScene("room-1", testDoc(1), nil))
	require.NoError(t, storage.PutScene("room-1", testDoc(2), nil))

	got, err := storage.GetScene("room-1")
	require.NoError(t, err)
	assert.Equal(t, models.Version(2), got.SceneVersion)
}

func TestSceneStorage_ConditionalPutMatchingBase(t *testing.T) {
	storage := newTestSceneStorage(t)
	require.NoError(t, storage.PutScene("room-1", testDoc(1), nil))

	base := models.Version(1)
	require.NoError(t, storage.PutScene("room-1", testDoc(2), &base))

	got, err := storage.GetScene("room-1")
	require.NoError(t, err)
	assert.Equal(t, models.Version(2), got.SceneVersion)
}

func TestSceneStorage_ConditionalPutStaleBase(t *testing.T) {
	storage := newTestSceneStorage(t)
	require.NoError(t, storage.PutScene("room-1", testDoc(5), nil))

	stale := models.Version(1)
	err := storage.PutScene("room-1", testDoc(6), &stale)
	require.ErrorIs(t, err, ErrVersionMismatch)

	// The stored document is untouched after a rejected write.
	got, err := storage.GetScene("room-1")
	require.NoError(t, err)
	assert.Equal(t, models.Version(5), got.SceneVersion)
}

func TestSceneStorage_ConditionalPutMissingRoom(t *testing.T) {
	storage := newTestSceneStorage(t)

	base := models.Version(1)
	err := storage.PutScene("room-1", testDoc(2), &base)
	require.ErrorIs(t, err, ErrBlobNotFound)
}

func TestSceneStorage_RoomsIsolated(t *testing.T) {
	storage := newTestSceneStorage(t)

	require.NoError(t, storage.PutScene("room-1", testDoc(1), nil))
	require.NoError(t, storage.PutScene("room-2", testDoc(2), nil))

	got1, err := storage.GetScene("room-1")
	require.NoError(t, err)
	got2, err := storage.GetScene("room-2")
	require.NoError(t, err)

	assert.Equal(t, models.Version(1), got1.SceneVersion)
	assert.Equal(t, models.Version(2), got2.SceneVersion)
}
