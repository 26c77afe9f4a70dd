// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ewolkov/sketchsync/internal/crypto"
	"github.com/ewolkov/sketchsync/internal/logger"
	"github.com/ewolkov/sketchsync/internal/mock"
	"github.com/ewolkov/sketchsync/models"
)

func newTestAttachments(t *testing.T, ctrl *gomock.Controller) (AttachmentSyncer, *mock.MockSceneStore) {
	t.Helper()
	mockStore := mock.NewMockSceneStore(ctrl)
	return NewAttachmentSyncer(mockStore, crypto.NewSceneCipher(), 2, logger.Nop()), mockStore
}

func TestUploadBatch_PartitionsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	syncer, mockStore := newTestAttachments(t, ctrl)

	items := []AttachmentUploadItem{
		{ID: "img-1", Data: []byte("a")},
		{ID: "img-2", Data: []byte("b")},
		{ID: "img-3", Data: []byte("c")},
		{ID: "img-4", Data: []byte("d")},
		{ID: "img-5", Data: []byte("e")},
	}

	for _, item := range items {
		err := error(nil)
		if item.ID == "img-3" {
			err = errors.New("storage unavailable")
		}
		mockStore.EXPECT().UploadFile(gomock.Any(), "files/room-1", item.ID, item.Data).Return(err)
	}

	result := syncer.UploadBatch(context.Background(), "files/room-1", items)

	assert.ElementsMatch(t, []string{"img-1", "img-2", "img-4", "img-5"}, result.SucceededIDs)
	assert.Equal(t, []string{"img-3"}, result.FailedIDs)
}

func TestUploadBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	syncer, _ := newTestAttachments(t, ctrl)

	result := syncer.UploadBatch(context.Background(), "files/room-1", nil)
	assert.Empty(t, result.SucceededIDs)
	assert.Empty(t, result.FailedIDs)
}

func TestDownloadBatch_DecryptsAndDeduplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	syncer, mockStore := newTestAttachments(t, ctrl)
	cipher := crypto.NewSceneCipher()
	key := cipher.DeriveRoomKey("stub passphrase", "room-1")

	sealedA, err := cipher.SealAttachment(key, models.AttachmentBlob{ID: "img-a", MimeType: "image/png", DataURL: "data:image/png;base64,aaa"})
	require.NoError(t, err)
	sealedB, err := cipher.SealAttachment(key, models.AttachmentBlob{ID: "img-b", MimeType: "image/jpeg", DataURL: "data:image/jpeg;base64,bbb"})
	require.NoError(t, err)

	// The repeated id must cost exactly one network call.
	mockStore.EXPECT().DownloadFile(gomock.Any(), "files/room-1", "img-a").Return(sealedA, nil).Times(1)
	mockStore.EXPECT().DownloadFile(gomock.Any(), "files/room-1", "img-b").Return(sealedB, nil).Times(1)

	result := syncer.DownloadBatch(context.Background(), "files/room-1", key, []string{"img-a", "img-a", "img-b"})

	require.Len(t, result.Loaded, 2)
	assert.Empty(t, result.FailedIDs)
	assert.Equal(t, "image/png", result.Loaded["img-a"].MimeType)
	assert.Equal(t, "data:image/jpeg;base64,bbb", result.Loaded["img-b"].DataURL)
}

func TestDownloadBatch_PerItemFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	syncer, mockStore := newTestAttachments(t, ctrl)
	cipher := crypto.NewSceneCipher()
	key := cipher.DeriveRoomKey("stub passphrase", "room-1")

	sealed, err := cipher.SealAttachment(key, models.AttachmentBlob{ID: "img-ok", DataURL: "data:,"})
	require.NoError(t, err)

	mockStore.EXPECT().DownloadFile(gomock.Any(), "files/room-1", "img-ok").Return(sealed, nil)
	mockStore.EXPECT().DownloadFile(gomock.Any(), "files/room-1", "img-missing").Return(nil, errors.New("not found"))
	// Downloaded bytes that do not open with the room key fail that id only.
	mockStore.EXPECT().DownloadFile(gomock.Any(), "files/room-1", "img-garbled").Return([]byte("garbage"), nil)

	result := syncer.DownloadBatch(context.Background(), "files/room-1", key, []string{"img-ok", "img-missing", "img-garbled"})

	require.Len(t, result.Loaded, 1)
	assert.Contains(t, result.Loaded, "img-ok")
	assert.ElementsMatch(t, []string{"img-missing", "img-garbled"}, result.FailedIDs)
}

func TestDownloadBatch_FillsMissingBlobID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	syncer, mockStore := newTestAttachments(t, ctrl)
	cipher := crypto.NewSceneCipher()
	key := cipher.DeriveRoomKey("stub passphrase", "room-1")

	// Older envelopes were sealed without an embedded id.
	sealed, err := cipher.SealAttachment(key, models.AttachmentBlob{DataURL: "data:,"})
	require.NoError(t, err)

	mockStore.EXPECT().DownloadFile(gomock.Any(), "files/room-1", "img-legacy").Return(sealed, nil)

	result := syncer.DownloadBatch(context.Background(), "files/room-1", key, []string{"img-legacy"})

	require.Contains(t, result.Loaded, "img-legacy")
	assert.Equal(t, "img-legacy", result.Loaded["img-legacy"].ID)
}
