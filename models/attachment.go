// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

package models

import "time"

// DefaultAttachmentMimeType is substituted when a stored attachment envelope
// carries no mime type.
const DefaultAttachmentMimeType = "application/octet-stream"

// AttachmentBlob is a binary object (for example an embedded image)
// referenced by id from within a scene and stored independently of the scene
// document. Attachments are write-once per id in practice; the engine defines
// no update semantics for an existing id.
type AttachmentBlob struct {
	ID        string    `json:"id"`
	MimeType  string    `json:"mimeType"`
	CreatedAt time.Time `json:"created"`
	DataURL   string    `json:"dataURL"`
}

// WithDefaults returns a copy of the blob with missing envelope metadata
// replaced: an empty mime type becomes [DefaultAttachmentMimeType] and a zero
// creation time becomes now.
func (b AttachmentBlob) WithDefaults(now time.Time) AttachmentBlob {
	if b.MimeType == "" {
		b.MimeType = DefaultAttachmentMimeType
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	return b
}
