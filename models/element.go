// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

package models

import "encoding/json"

// Element is one uniquely identified record of a scene. The payload in Data
// is opaque to the sync engine: it is carried, fingerprinted and merged, but
// never interpreted. Elements are owned by the calling application; the
// engine only borrows read access for the duration of a save or load call.
type Element struct {
	// ID is the unique identifier of the element within its scene.
	ID string `json:"id"`

	// Seq is the ordering-relevant sequence position of the element.
	Seq int64 `json:"seq"`

	// Deleted marks the element as a tombstone. Tombstones participate in
	// fingerprinting and merging like any other element.
	Deleted bool `json:"isDeleted,omitempty"`

	// Data is the immutable element payload as produced by the editor.
	Data json.RawMessage `json:"data,omitempty"`
}

// Version is a deterministic scalar derived from a scene's content. It is
// recomputed from content on every comparison, never incremented, so two
// independently produced element sequences with identical effective content
// always yield the same Version.
type Version int64

// ConnectionID is an opaque handle for one live client session. The engine
// uses it only as a cache key; the empty value means "no live connection".
type ConnectionID string

// UIState is the caller's local UI state. It is passed through to the merge
// function untouched and never inspected by the engine.
type UIState = json.RawMessage

// RoomRef identifies a collaboration room together with its symmetric
// encryption key. The key is known only to the room's participants and never
// leaves the client.
type RoomRef struct {
	ID  string
	Key []byte
}

// IsZero reports whether the reference is missing an id or a key, i.e. the
// editing session has no active remote room.
func (r RoomRef) IsZero() bool {
	return r.ID == "" || len(r.Key) == 0
}
