// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

// Package crypto implements the encrypted scene codec: serialization and
// AES-256-GCM encryption of element sequences, sealing of attachment blobs,
// and derivation of room keys from shared passphrases. All operations are
// pure CPU work; the package performs no I/O.
package crypto

import "github.com/ewolkov/sketchsync/models"

// SceneCipher encrypts and decrypts scene content under a room-scoped
// symmetric key.
type SceneCipher interface {
	// EncryptScene serializes elements to their canonical JSON encoding and
	// encrypts them under key with a fresh random IV. The IV is never reused
	// across calls; two encryptions of the same content produce different
	// (iv, ciphertext) pairs.
	EncryptScene(key []byte, elements []models.Element) (ciphertext, iv []byte, err error)

	// DecryptScene is the inverse of EncryptScene. It returns an error
	// wrapping [ErrDecrypt] if the key/iv/ciphertext combination fails
	// authentication or the plaintext is not a valid element sequence.
	DecryptScene(key, iv, ciphertext []byte) ([]models.Element, error)

	// SealAttachment encodes blob's envelope, encrypts it under key and
	// compresses the result for storage.
	SealAttachment(key []byte, blob models.AttachmentBlob) ([]byte, error)

	// OpenAttachment reverses SealAttachment: decompress, decrypt, decode.
	// Missing envelope metadata is substituted with defaults. Failures wrap
	// [ErrDecrypt].
	OpenAttachment(key []byte, sealed []byte) (models.AttachmentBlob, error)

	// DeriveRoomKey derives the 32-byte room key from a shared passphrase,
	// using the room id as salt domain. Deterministic: every participant
	// derives the same key from the same inputs.
	DeriveRoomKey(passphrase, roomID string) []byte
}
