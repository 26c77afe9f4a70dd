package service

import (
	"context"
	"sync"
	"time"

	"github.com/ewolkov/sketchsync/models"
)

type sceneSaveJob struct {
	scenes   SceneSyncService
	snapshot SceneSnapshotFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSceneSaveJob creates a sceneSaveJob that calls scenes.Save on a ticker
// with the elements and UI state produced by snapshot. The job is idle until
// Start is called.
func NewSceneSaveJob(scenes SceneSyncService, snapshot SceneSnapshotFunc) SceneSaveJob {
	if snapshot == nil {
		snapshot = func() ([]models.Element, models.UIState) { return nil, nil }
	}
	return &sceneSaveJob{scenes: scenes, snapshot: snapshot}
}

// Start implements SceneSaveJob. It stops any previously running job, then
// launches a background goroutine that saves every interval. If interval is
// zero or negative it defaults to 30 seconds. The goroutine exits when ctx
// is cancelled or Stop is called. Save errors are ignored here: the version
// cache was not updated, so the next tick naturally retries.
func (j *sceneSaveJob) Start(ctx context.Context, room models.RoomRef, conn models.ConnectionID, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				elements, ui := j.snapshot()
				_, _ = j.scenes.Save(jobCtx, room, conn, elements, ui)
			}
		}
	}()
}

// Stop implements SceneSaveJob. It cancels the background goroutine's context
// and blocks until the goroutine has fully exited. Safe to call when the job
// is not running (no-op in that case).
func (j *sceneSaveJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
