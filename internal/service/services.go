package service

import (
	"github.com/ewolkov/sketchsync/internal/adapter"
	"github.com/ewolkov/sketchsync/internal/config"
	"github.com/ewolkov/sketchsync/internal/crypto"
	"github.com/ewolkov/sketchsync/internal/logger"
)

// Services aggregates the client-side sync components.
type Services struct {
	Scenes      SceneSyncService
	Attachments AttachmentSyncer
	SaveJob     SceneSaveJob
	Cache       *ConnectionVersionCache
}

// NewServices wires the orchestrator, attachment syncer and save job on top
// of the given store adapter and cipher.
func NewServices(store adapter.SceneStore, cipher crypto.SceneCipher, collab Collaborators, workersCfg config.Workers, snapshot SceneSnapshotFunc, log *logger.Logger) (*Services, error) {
	cache := NewConnectionVersionCache(collab.Fingerprint)

	scenes, err := NewSceneSyncService(store, cipher, cache, collab, log)
	if err != nil {
		return nil, err
	}

	return &Services{
		Scenes:      scenes,
		Attachments: NewAttachmentSyncer(store, cipher, workersCfg.BatchConcurrency, log),
		SaveJob:     NewSceneSaveJob(scenes, snapshot),
		Cache:       cache,
	}, nil
}
