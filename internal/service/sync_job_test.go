package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewolkov/sketchsync/models"
)

// countingScenes is a SceneSyncService stub recording every Save call.
type countingScenes struct {
	mu    sync.Mutex
	saves int
	last  []models.Element
}

func (c *countingScenes) Save(_ context.Context, _ models.RoomRef, _ models.ConnectionID, elements []models.Element, _ models.UIState) ([]models.Element, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saves++
	c.last = elements
	return elements, nil
}

func (c *countingScenes) Load(context.Context, models.RoomRef, models.ConnectionID) ([]models.Element, error) {
	return nil, nil
}

func (c *countingScenes) IsSavedToRemote(models.RoomRef, models.ConnectionID, []models.Element) bool {
	return true
}

func (c *countingScenes) saveCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saves
}

func TestSceneSaveJob_SavesSnapshotOnTick(t *testing.T) {
	scenes := &countingScenes{}
	snapshot := func() ([]models.Element, models.UIState) {
		return []models.Element{{ID: "rect-1", Seq: 1}}, nil
	}

	job := NewSceneSaveJob(scenes, snapshot)
	job.Start(context.Background(), testRoom(), "conn-1", 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return scenes.saveCount() >= 2
	}, time.Second, 5*time.Millisecond, "expected at least two periodic saves")

	job.Stop()

	scenes.mu.Lock()
	defer scenes.mu.Unlock()
	assert.Equal(t, []models.Element{{ID: "rect-1", Seq: 1}}, scenes.last)
}

func TestSceneSaveJob_StopHaltsTicking(t *testing.T) {
	scenes := &countingScenes{}

	job := NewSceneSaveJob(scenes, func() ([]models.Element, models.UIState) { return nil, nil })
	job.Start(context.Background(), testRoom(), "conn-1", 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return scenes.saveCount() >= 1
	}, time.Second, 5*time.Millisecond)

	job.Stop()
	settled := scenes.saveCount()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, scenes.saveCount(), "no saves after Stop")
}

func TestSceneSaveJob_RestartReplacesLoop(t *testing.T) {
	scenes := &countingScenes{}

	job := NewSceneSaveJob(scenes, func() ([]models.Element, models.UIState) { return nil, nil })
	job.Start(context.Background(), testRoom(), "conn-1", time.Hour)

	// Restarting with a short interval must replace the hour-long loop.
	job.Start(context.Background(), testRoom(), "conn-1", 10*time.Millisecond)
	defer job.Stop()

	require.Eventually(t, func() bool {
		return scenes.saveCount() >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestSceneSaveJob_StopWithoutStart(t *testing.T) {
	job := NewSceneSaveJob(&countingScenes{}, nil)

	// Must not panic or block.
	job.Stop()
	job.Stop()
}

func TestSceneSaveJob_ContextCancelStopsLoop(t *testing.T) {
	scenes := &countingScenes{}
	ctx, cancel := context.WithCancel(context.Background())

	job := NewSceneSaveJob(scenes, func() ([]models.Element, models.UIState) { return nil, nil })
	job.Start(ctx, testRoom(), "conn-1", 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return scenes.saveCount() >= 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	time.Sleep(30 * time.Millisecond)
	settled := scenes.saveCount()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, scenes.saveCount(), "no saves after context cancel")
}
