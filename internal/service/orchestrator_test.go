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

	"github.com/ewolkov/sketchsync/internal/adapter"
	"github.com/ewolkov/sketchsync/internal/crypto"
	"github.com/ewolkov/sketchsync/internal/logger"
	"github.com/ewolkov/sketchsync/internal/mock"
	"github.com/ewolkov/sketchsync/models"
)

// stubMerge is a hand-written merge collaborator recording its inputs.
type stubMerge struct {
	calls  int
	local  []models.Element
	remote []models.Element
	ui     models.UIState
	result []models.Element
	err    error
}

func (s *stubMerge) merge(local, remote []models.Element, ui models.UIState) ([]models.Element, error) {
	s.calls++
	s.local, s.remote, s.ui = local, remote, ui
	if s.result != nil {
		return s.result, s.err
	}
	return local, s.err
}

func newTestScenes(t *testing.T, ctrl *gomock.Controller) (*sceneSyncService, *mock.MockSceneStore, *ConnectionVersionCache, *stubMerge) {
	t.Helper()

	mockStore := mock.NewMockSceneStore(ctrl)
	cache := NewConnectionVersionCache(models.DefaultFingerprint)
	merge := &stubMerge{}

	svc, err := NewSceneSyncService(mockStore, crypto.NewSceneCipher(), cache, Collaborators{Merge: merge.merge}, logger.Nop())
	require.NoError(t, err)

	return svc.(*sceneSyncService), mockStore, cache, merge
}

func testRoom() models.RoomRef {
	key := crypto.NewSceneCipher().DeriveRoomKey("stub passphrase", "room-1")
	return models.RoomRef{ID: "room-1", Key: key}
}

func localScene() []models.Element {
	return []models.Element{
		{ID: "rect-1", Seq: 1, Data: []byte(`{"kind":"rect"}`)},
		{ID: "text-2", Seq: 2, Data: []byte(`{"kind":"text"}`)},
	}
}

func encryptedDoc(t *testing.T, key []byte, elements []models.Element) *models.SceneDocument {
	t.Helper()
	ciphertext, iv, err := crypto.NewSceneCipher().EncryptScene(key, elements)
	require.NoError(t, err)
	return &models.SceneDocument{
		SceneVersion: models.DefaultFingerprint(elements),
		IV:           iv,
		Ciphertext:   ciphertext,
	}
}

// ── Save ─────────────────────────────────────────────────────────────────────

func TestSave_NoRoomContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, merge := newTestScenes(t, ctrl)

	// No expectations on the store: any network call fails the test.
	persisted, err := svc.Save(context.Background(), models.RoomRef{}, "conn-1", localScene(), nil)
	require.NoError(t, err)
	assert.Nil(t, persisted)

	persisted, err = svc.Save(context.Background(), testRoom(), "", localScene(), nil)
	require.NoError(t, err)
	assert.Nil(t, persisted)

	assert.Zero(t, merge.calls)
}

func TestSave_CreateBranchThenNoopSecondSave(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, _, merge := newTestScenes(t, ctrl)
	room := testRoom()
	conn := models.ConnectionID("conn-1")
	local := localScene()

	var written models.SceneDocument
	mockStore.EXPECT().FetchScene(gomock.Any(), room.ID).Return(nil, adapter.ErrSceneNotFound)
	mockStore.EXPECT().
		PutScene(gomock.Any(), room.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, doc models.SceneDocument) error {
			written = doc
			return nil
		})

	persisted, err := svc.Save(context.Background(), room, conn, local, nil)
	require.NoError(t, err)

	// An empty room never merges; locals become the canonical state.
	assert.Zero(t, merge.calls)
	assert.Equal(t, local, persisted)
	assert.Equal(t, models.DefaultFingerprint(local), written.SceneVersion)
	assert.NotEmpty(t, written.IV)

	// Second save without local changes: dirty-check short-circuits, zero
	// network calls (no further expectations are registered).
	persisted, err = svc.Save(context.Background(), room, conn, local, nil)
	require.NoError(t, err)
	assert.Nil(t, persisted)
}

func TestSave_MergeBranch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, _, merge := newTestScenes(t, ctrl)
	room := testRoom()
	local := localScene()
	remote := []models.Element{{ID: "circle-9", Seq: 5, Data: []byte(`{"kind":"circle"}`)}}
	ui := models.UIState(`{"selection":["rect-1"]}`)

	mergedResult := append(append([]models.Element{}, remote...), local...)
	merge.result = mergedResult

	remoteDoc := encryptedDoc(t, room.Key, remote)

	var written models.SceneDocument
	mockStore.EXPECT().FetchScene(gomock.Any(), room.ID).Return(remoteDoc, nil)
	mockStore.EXPECT().
		PutSceneIf(gomock.Any(), room.ID, gomock.Any(), remoteDoc.SceneVersion).
		DoAndReturn(func(_ context.Context, _ string, doc models.SceneDocument, _ models.Version) error {
			written = doc
			return nil
		})

	persisted, err := svc.Save(context.Background(), room, "conn-1", local, ui)
	require.NoError(t, err)

	// The external merge ran exactly once with (local, remote, uiState).
	require.Equal(t, 1, merge.calls)
	assert.Equal(t, local, merge.local)
	assert.Equal(t, remote, merge.remote)
	assert.Equal(t, ui, merge.ui)

	// The returned value is the round-tripped persisted form, not the raw
	// merge output reference.
	assert.Equal(t, mergedResult, persisted)
	assert.NotSame(t, &mergedResult[0], &persisted[0])
	assert.Equal(t, models.DefaultFingerprint(mergedResult), written.SceneVersion)
}

func TestSave_WrongKeyPropagatesDecodeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, cache, merge := newTestScenes(t, ctrl)
	room := testRoom()

	otherKey := crypto.NewSceneCipher().DeriveRoomKey("other passphrase", room.ID)
	foreignDoc := encryptedDoc(t, otherKey, localScene())

	mockStore.EXPECT().FetchScene(gomock.Any(), room.ID).Return(foreignDoc, nil)

	_, err := svc.Save(context.Background(), room, "conn-1", localScene(), nil)
	require.ErrorIs(t, err, crypto.ErrDecrypt)

	// Failed saves never mark the connection as synced.
	_, ok := cache.LastSyncedVersion("conn-1")
	assert.False(t, ok)
	assert.Zero(t, merge.calls)
}

func TestSave_TransportErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, cache, _ := newTestScenes(t, ctrl)
	room := testRoom()

	transportErr := errors.New("connection refused")
	mockStore.EXPECT().FetchScene(gomock.Any(), room.ID).Return(nil, transportErr)

	_, err := svc.Save(context.Background(), room, "conn-1", localScene(), nil)
	require.ErrorIs(t, err, transportErr)

	_, ok := cache.LastSyncedVersion("conn-1")
	assert.False(t, ok)
}

func TestSave_MergeErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, _, merge := newTestScenes(t, ctrl)
	room := testRoom()
	remote := []models.Element{{ID: "circle-9", Seq: 5}}

	merge.err = errors.New("incompatible scenes")
	mockStore.EXPECT().FetchScene(gomock.Any(), room.ID).Return(encryptedDoc(t, room.Key, remote), nil)

	_, err := svc.Save(context.Background(), room, "conn-1", localScene(), nil)
	require.ErrorContains(t, err, "incompatible scenes")
}

func TestSave_RetriesConflictThenSucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, _, merge := newTestScenes(t, ctrl)
	room := testRoom()
	remote := []models.Element{{ID: "circle-9", Seq: 5}}
	remoteDoc := encryptedDoc(t, room.Key, remote)

	mockStore.EXPECT().FetchScene(gomock.Any(), room.ID).Return(remoteDoc, nil).Times(3)
	gomock.InOrder(
		mockStore.EXPECT().PutSceneIf(gomock.Any(), room.ID, gomock.Any(), remoteDoc.SceneVersion).Return(adapter.ErrVersionConflict),
		mockStore.EXPECT().PutSceneIf(gomock.Any(), room.ID, gomock.Any(), remoteDoc.SceneVersion).Return(adapter.ErrVersionConflict),
		mockStore.EXPECT().PutSceneIf(gomock.Any(), room.ID, gomock.Any(), remoteDoc.SceneVersion).Return(nil),
	)

	persisted, err := svc.Save(context.Background(), room, "conn-1", localScene(), nil)
	require.NoError(t, err)
	assert.NotNil(t, persisted)

	// Every retry re-runs the whole fetch-merge-write cycle.
	assert.Equal(t, 3, merge.calls)
}

func TestSave_ConflictRetriesExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, cache, _ := newTestScenes(t, ctrl)
	room := testRoom()
	remoteDoc := encryptedDoc(t, room.Key, []models.Element{{ID: "circle-9", Seq: 5}})

	mockStore.EXPECT().FetchScene(gomock.Any(), room.ID).Return(remoteDoc, nil).Times(3)
	mockStore.EXPECT().PutSceneIf(gomock.Any(), room.ID, gomock.Any(), remoteDoc.SceneVersion).Return(adapter.ErrVersionConflict).Times(3)

	_, err := svc.Save(context.Background(), room, "conn-1", localScene(), nil)
	require.ErrorIs(t, err, adapter.ErrVersionConflict)

	_, ok := cache.LastSyncedVersion("conn-1")
	assert.False(t, ok)
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_NothingToJoin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, _, _ := newTestScenes(t, ctrl)
	room := testRoom()

	mockStore.EXPECT().FetchScene(gomock.Any(), room.ID).Return(nil, adapter.ErrSceneNotFound)

	elements, err := svc.Load(context.Background(), room, "conn-1")
	require.NoError(t, err)
	assert.Nil(t, elements)

	// Transport failures on load are also "nothing to join".
	mockStore.EXPECT().FetchScene(gomock.Any(), room.ID).Return(nil, errors.New("timeout"))

	elements, err = svc.Load(context.Background(), room, "conn-1")
	require.NoError(t, err)
	assert.Nil(t, elements)
}

func TestLoad_RecordsSyncedVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, cache, _ := newTestScenes(t, ctrl)
	room := testRoom()
	remote := localScene()

	mockStore.EXPECT().FetchScene(gomock.Any(), room.ID).Return(encryptedDoc(t, room.Key, remote), nil)

	elements, err := svc.Load(context.Background(), room, "conn-2")
	require.NoError(t, err)
	assert.Equal(t, remote, elements)

	assert.True(t, cache.IsUpToDate("conn-2", remote))
	assert.True(t, svc.IsSavedToRemote(room, "conn-2", remote))
}

func TestLoad_WrongKeyPropagatesDecodeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStore, _, _ := newTestScenes(t, ctrl)
	room := testRoom()

	otherKey := crypto.NewSceneCipher().DeriveRoomKey("other passphrase", room.ID)
	mockStore.EXPECT().FetchScene(gomock.Any(), room.ID).Return(encryptedDoc(t, otherKey, localScene()), nil)

	_, err := svc.Load(context.Background(), room, "conn-1")
	require.ErrorIs(t, err, crypto.ErrDecrypt)
}

func TestIsSavedToRemote_VacuousWithoutRoom(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestScenes(t, ctrl)

	// No active remote room: nothing blocks shutdown.
	assert.True(t, svc.IsSavedToRemote(models.RoomRef{}, "conn-1", localScene()))
	assert.True(t, svc.IsSavedToRemote(testRoom(), "", localScene()))

	// With a room but no recorded sync, the session is dirty.
	assert.False(t, svc.IsSavedToRemote(testRoom(), "conn-1", localScene()))
}
