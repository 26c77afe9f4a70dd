// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ewolkov/sketchsync/models"
)

// sceneStorage persists scene document envelopes as JSON blobs under
// scenes/<roomID>.json. The mutex serializes the read-compare-write of
// conditional puts; the blob store itself needs no cross-entry ordering.
type sceneStorage struct {
	blobs BlobStore

	mu sync.Mutex
}

// NewSceneStorage constructs a [SceneStorage] on top of blobs.
func NewSceneStorage(blobs BlobStore) SceneStorage {
	return &sceneStorage{blobs: blobs}
}

// GetScene implements [SceneStorage].
func (s *sceneStorage) GetScene(roomID string) (models.SceneDocument, error) {
	data, err := s.blobs.ReadBlob(scenePath(roomID))
	if err != nil {
		return models.SceneDocument{}, err
	}

	var doc models.SceneDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.SceneDocument{}, fmt.Errorf("decode scene document: %w", err)
	}

	return doc, nil
}

// PutScene implements [SceneStorage].
func (s *sceneStorage) PutScene(roomID string, doc models.SceneDocument, baseVersion *models.Version) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if baseVersion != nil {
		stored, err := s.GetScene(roomID)
		if err != nil {
			return err
		}
		if stored.SceneVersion != *baseVersion {
			return fmt.Errorf("%w: stored %d, base %d", ErrVersionMismatch, stored.SceneVersion, *baseVersion)
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode scene document: %w", err)
	}

	return s.blobs.WriteBlob(scenePath(roomID), data)
}

func scenePath(roomID string) string {
	return "scenes/" + roomID + ".json"
}
