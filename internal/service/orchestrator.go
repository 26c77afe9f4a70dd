// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/ewolkov/sketchsync/internal/adapter"
	"github.com/ewolkov/sketchsync/internal/crypto"
	"github.com/ewolkov/sketchsync/internal/logger"
	"github.com/ewolkov/sketchsync/models"
)

const (
	// maxConflictRetries bounds how many times a save re-runs the
	// fetch-merge-write cycle after a conditional write is rejected.
	maxConflictRetries = 2

	conflictRetryDelay = 50 * time.Millisecond
)

// Collaborators bundles the external pure functions the orchestrator calls
// but does not implement. Merge is mandatory; Fingerprint and Restore
// default to the models package implementations.
type Collaborators struct {
	Fingerprint models.FingerprintFunc
	Merge       models.MergeFunc
	Restore     models.RestoreFunc
}

type sceneSyncService struct {
	store  adapter.SceneStore
	cipher crypto.SceneCipher
	cache  *ConnectionVersionCache

	fingerprint models.FingerprintFunc
	merge       models.MergeFunc
	restore     models.RestoreFunc

	logger *logger.Logger
}

// NewSceneSyncService constructs the reconciliation orchestrator. Returns
// [ErrNoMergeFunc] if collab.Merge is nil.
func NewSceneSyncService(store adapter.SceneStore, cipher crypto.SceneCipher, cache *ConnectionVersionCache, collab Collaborators, log *logger.Logger) (SceneSyncService, error) {
	if collab.Merge == nil {
		return nil, ErrNoMergeFunc
	}
	if collab.Fingerprint == nil {
		collab.Fingerprint = models.DefaultFingerprint
	}
	if collab.Restore == nil {
		collab.Restore = models.DefaultRestore
	}

	return &sceneSyncService{
		store:       store,
		cipher:      cipher,
		cache:       cache,
		fingerprint: collab.Fingerprint,
		merge:       collab.Merge,
		restore:     collab.Restore,
		logger:      log,
	}, nil
}

// Save implements [SceneSyncService].
func (s *sceneSyncService) Save(ctx context.Context, room models.RoomRef, conn models.ConnectionID, localElements []models.Element, ui models.UIState) ([]models.Element, error) {
	if room.IsZero() || conn == "" {
		return nil, nil
	}
	if s.cache.IsUpToDate(conn, localElements) {
		return nil, nil
	}

	var persisted []models.Element

	backoff := retry.WithMaxRetries(maxConflictRetries, retry.NewConstant(conflictRetryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		result, err := s.saveOnce(ctx, room, localElements, ui)
		if err != nil {
			if errors.Is(err, adapter.ErrVersionConflict) {
				s.logger.Debug().Str("room", room.ID).Msg("scene version conflict, retrying save cycle")
				return retry.RetryableError(err)
			}
			return err
		}
		persisted = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.RecordSynced(conn, s.fingerprint(persisted))
	return persisted, nil
}

// saveOnce runs one fetch → (create | merge) → put cycle and returns the
// round-tripped persisted elements.
func (s *sceneSyncService) saveOnce(ctx context.Context, room models.RoomRef, localElements []models.Element, ui models.UIState) ([]models.Element, error) {
	remote, err := s.store.FetchScene(ctx, room.ID)
	if errors.Is(err, adapter.ErrSceneNotFound) {
		// First save for this room: the local elements become the
		// canonical persisted state.
		return s.persist(ctx, room, localElements, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch scene: %w", err)
	}

	remoteElements, err := s.cipher.DecryptScene(room.Key, remote.IV, remote.Ciphertext)
	if err != nil {
		// Wrong key or corrupted store: fatal for this save attempt.
		return nil, err
	}

	merged, err := s.merge(localElements, remoteElements, ui)
	if err != nil {
		return nil, fmt.Errorf("merge scenes: %w", err)
	}

	base := remote.SceneVersion
	return s.persist(ctx, room, merged, &base)
}

// persist encodes elements with a fresh IV and writes the envelope, plain or
// version-conditional. The returned slice is decrypted back out of the
// envelope just written: the in-memory elements reference may have been
// externally mutated by the time persistence completes, so the canonical
// value must come from the round-tripped form.
func (s *sceneSyncService) persist(ctx context.Context, room models.RoomRef, elements []models.Element, baseVersion *models.Version) ([]models.Element, error) {
	ciphertext, iv, err := s.cipher.EncryptScene(room.Key, elements)
	if err != nil {
		return nil, fmt.Errorf("encrypt scene: %w", err)
	}

	doc := models.SceneDocument{
		SceneVersion: s.fingerprint(elements),
		IV:           iv,
		Ciphertext:   ciphertext,
	}

	if baseVersion != nil {
		err = s.store.PutSceneIf(ctx, room.ID, doc, *baseVersion)
	} else {
		err = s.store.PutScene(ctx, room.ID, doc)
	}
	if err != nil {
		return nil, err
	}

	persisted, err := s.cipher.DecryptScene(room.Key, doc.IV, doc.Ciphertext)
	if err != nil {
		return nil, err
	}

	return s.restore(persisted), nil
}

// Load implements [SceneSyncService].
func (s *sceneSyncService) Load(ctx context.Context, room models.RoomRef, conn models.ConnectionID) ([]models.Element, error) {
	if room.IsZero() {
		return nil, nil
	}

	doc, err := s.store.FetchScene(ctx, room.ID)
	if err != nil {
		// No document yet, or the store is unreachable: nothing to join.
		s.logger.Debug().Str("room", room.ID).Err(err).Msg("no remote scene to load")
		return nil, nil
	}

	elements, err := s.cipher.DecryptScene(room.Key, doc.IV, doc.Ciphertext)
	if err != nil {
		return nil, err
	}

	restored := s.restore(elements)
	if conn != "" {
		s.cache.RecordSynced(conn, s.fingerprint(restored))
	}

	return restored, nil
}

// IsSavedToRemote implements [SceneSyncService].
func (s *sceneSyncService) IsSavedToRemote(room models.RoomRef, conn models.ConnectionID, elements []models.Element) bool {
	if room.IsZero() || conn == "" {
		// No active remote room: nothing to do, nothing blocks unload.
		return true
	}
	return s.cache.IsUpToDate(conn, elements)
}
