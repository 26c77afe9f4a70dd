// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

package service

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ewolkov/sketchsync/internal/adapter"
	"github.com/ewolkov/sketchsync/internal/crypto"
	"github.com/ewolkov/sketchsync/internal/logger"
	"github.com/ewolkov/sketchsync/models"
)

const defaultBatchConcurrency = 8

type attachmentSyncer struct {
	store       adapter.SceneStore
	cipher      crypto.SceneCipher
	concurrency int

	logger *logger.Logger
}

// NewAttachmentSyncer constructs an [AttachmentSyncer] with the given batch
// fan-out bound. A non-positive concurrency falls back to the default.
func NewAttachmentSyncer(store adapter.SceneStore, cipher crypto.SceneCipher, concurrency int, log *logger.Logger) AttachmentSyncer {
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}
	return &attachmentSyncer{
		store:       store,
		cipher:      cipher,
		concurrency: concurrency,
		logger:      log,
	}
}

// UploadBatch implements [AttachmentSyncer]. Every item is dispatched
// independently; the group's Wait is the fan-in barrier, reached only once
// every item has settled. Goroutines never return errors — a failed item is
// recorded in the result, and the batch itself always succeeds.
func (a *attachmentSyncer) UploadBatch(ctx context.Context, pathPrefix string, items []AttachmentUploadItem) BatchUploadResult {
	var (
		mu     sync.Mutex
		result BatchUploadResult
	)

	g := new(errgroup.Group)
	g.SetLimit(a.concurrency)

	for _, item := range items {
		item := item
		g.Go(func() error {
			err := a.store.UploadFile(ctx, pathPrefix, item.ID, item.Data)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				a.logger.Warn().Str("id", item.ID).Err(err).Msg("attachment upload failed")
				result.FailedIDs = append(result.FailedIDs, item.ID)
			} else {
				result.SucceededIDs = append(result.SucceededIDs, item.ID)
			}
			return nil
		})
	}

	_ = g.Wait()
	return result
}

// DownloadBatch implements [AttachmentSyncer]. Ids are deduplicated before
// any request is issued, so a repeated id costs one network call.
func (a *attachmentSyncer) DownloadBatch(ctx context.Context, pathPrefix string, key []byte, ids []string) BatchDownloadResult {
	distinct := dedupIDs(ids)

	var (
		mu     sync.Mutex
		result = BatchDownloadResult{Loaded: make(map[string]models.AttachmentBlob, len(distinct))}
	)

	g := new(errgroup.Group)
	g.SetLimit(a.concurrency)

	for _, id := range distinct {
		id := id
		g.Go(func() error {
			blob, err := a.fetchOne(ctx, pathPrefix, key, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				a.logger.Debug().Str("id", id).Err(err).Msg("attachment download failed")
				result.FailedIDs = append(result.FailedIDs, id)
			} else {
				result.Loaded[id] = blob
			}
			return nil
		})
	}

	_ = g.Wait()
	return result
}

func (a *attachmentSyncer) fetchOne(ctx context.Context, pathPrefix string, key []byte, id string) (models.AttachmentBlob, error) {
	sealed, err := a.store.DownloadFile(ctx, pathPrefix, id)
	if err != nil {
		return models.AttachmentBlob{}, err
	}

	blob, err := a.cipher.OpenAttachment(key, sealed)
	if err != nil {
		return models.AttachmentBlob{}, err
	}

	if blob.ID == "" {
		blob.ID = id
	}
	return blob, nil
}

func dedupIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
