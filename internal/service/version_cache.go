// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

package service

import (
	"sync"

	"github.com/ewolkov/sketchsync/models"
)

// ConnectionVersionCache records, per live connection, the last scene version
// known to be durably stored. It exists to skip redundant network round
// trips: the orchestrator consults it before every save.
//
// The association is non-owning. Entries do not expire on their own; the
// presence layer must call Evict when a connection is torn down.
//
// Safe for concurrent use by multiple in-flight save/load calls.
type ConnectionVersionCache struct {
	fingerprint models.FingerprintFunc

	mu     sync.RWMutex
	synced map[models.ConnectionID]models.Version
}

// NewConnectionVersionCache constructs an empty cache. A nil fingerprint
// falls back to [models.DefaultFingerprint].
func NewConnectionVersionCache(fingerprint models.FingerprintFunc) *ConnectionVersionCache {
	if fingerprint == nil {
		fingerprint = models.DefaultFingerprint
	}
	return &ConnectionVersionCache{
		fingerprint: fingerprint,
		synced:      make(map[models.ConnectionID]models.Version),
	}
}

// RecordSynced associates conn with the version just confirmed durable.
// Overwrites any previous entry.
func (c *ConnectionVersionCache) RecordSynced(conn models.ConnectionID, version models.Version) {
	if conn == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.synced[conn] = version
}

// LastSyncedVersion returns the version last recorded for conn, if any.
func (c *ConnectionVersionCache) LastSyncedVersion(conn models.ConnectionID) (models.Version, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.synced[conn]
	return v, ok
}

// IsUpToDate reports whether conn has a recorded version equal to the
// fingerprint of elements. An unknown or empty connection is never up to
// date.
func (c *ConnectionVersionCache) IsUpToDate(conn models.ConnectionID, elements []models.Element) bool {
	last, ok := c.LastSyncedVersion(conn)
	if !ok {
		return false
	}
	return last == c.fingerprint(elements)
}

// Evict drops conn's entry. Called by the presence layer on disconnect so
// the cache never outlives its connection handle.
func (c *ConnectionVersionCache) Evict(conn models.ConnectionID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.synced, conn)
}
