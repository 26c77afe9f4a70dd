// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

package crypto

import (
	"bytes"
	"compress/gzip"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ewolkov/sketchsync/models"
)

// SealAttachment implements [SceneCipher]. The stored form is
// gzip(nonce ‖ ciphertext): the envelope is marshalled to JSON, sealed with
// AES-256-GCM under key with the nonce prepended to the ciphertext, and the
// whole blob is gzip-compressed.
func (c *sceneCipher) SealAttachment(key []byte, blob models.AttachmentBlob) ([]byte, error) {
	plaintext, err := json.Marshal(blob)
	if err != nil {
		return nil, fmt.Errorf("marshal attachment envelope: %w", err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	// Prepend the nonce so OpenAttachment can split it out again.
	sealed := gcm.Seal(nonce, nonce, plaintext, nil)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(sealed); err != nil {
		return nil, fmt.Errorf("compress attachment: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress attachment: %w", err)
	}

	return buf.Bytes(), nil
}

// OpenAttachment implements [SceneCipher]. It reverses SealAttachment and
// substitutes default metadata (mime type, creation time) when the stored
// envelope carries none.
func (c *sceneCipher) OpenAttachment(key []byte, sealed []byte) (models.AttachmentBlob, error) {
	zr, err := gzip.NewReader(bytes.NewReader(sealed))
	if err != nil {
		return models.AttachmentBlob{}, fmt.Errorf("%w: decompress: %v", ErrDecrypt, err)
	}
	blob, err := io.ReadAll(zr)
	if err != nil {
		return models.AttachmentBlob{}, fmt.Errorf("%w: decompress: %v", ErrDecrypt, err)
	}
	if err := zr.Close(); err != nil {
		return models.AttachmentBlob{}, fmt.Errorf("%w: decompress: %v", ErrDecrypt, err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return models.AttachmentBlob{}, err
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return models.AttachmentBlob{}, fmt.Errorf("%w: sealed blob too short", ErrDecrypt)
	}
	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return models.AttachmentBlob{}, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	var out models.AttachmentBlob
	if err := json.Unmarshal(plaintext, &out); err != nil {
		return models.AttachmentBlob{}, fmt.Errorf("%w: unmarshal envelope: %v", ErrDecrypt, err)
	}

	return out.WithDefaults(time.Now()), nil
}
