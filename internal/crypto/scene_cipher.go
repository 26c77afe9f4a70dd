// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"

	"github.com/ewolkov/sketchsync/models"
)

// sceneCipher is the private implementation of [SceneCipher].
type sceneCipher struct {
	// Argon2id tuning parameters for room key derivation. Stored in the
	// struct so they can be adjusted per deployment target.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewSceneCipher constructs a [SceneCipher] with the Argon2id parameters
// recommended by OWASP (2024): 1 iteration, 64 MiB memory, 4 threads,
// 256-bit output.
func NewSceneCipher() SceneCipher {
	return &sceneCipher{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
}

// EncryptScene implements [SceneCipher]. The element sequence is marshalled
// to JSON and sealed with AES-256-GCM under a 12-byte IV read from the OS
// CSPRNG. The IV is returned separately so the caller can place it in the
// scene document envelope next to the ciphertext.
func (c *sceneCipher) EncryptScene(key []byte, elements []models.Element) ([]byte, []byte, error) {
	plaintext, err := json.Marshal(elements)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal elements: %w", err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	iv := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, nil, fmt.Errorf("generate iv: %w", err)
	}

	return gcm.Seal(nil, iv, plaintext, nil), iv, nil
}

// DecryptScene implements [SceneCipher]. Authentication failures and invalid
// plaintext both wrap [ErrDecrypt] so callers can treat wrong-key and
// corrupted-store conditions uniformly.
func (c *sceneCipher) DecryptScene(key, iv, ciphertext []byte) ([]models.Element, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(iv) != gcm.NonceSize() {
		return nil, fmt.Errorf("%w: iv length %d", ErrDecrypt, len(iv))
	}

	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		// Almost always a wrong room key producing a failed auth tag.
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	var elements []models.Element
	if err := json.Unmarshal(plaintext, &elements); err != nil {
		return nil, fmt.Errorf("%w: unmarshal elements: %v", ErrDecrypt, err)
	}

	return elements, nil
}

// DeriveRoomKey implements [SceneCipher]. The room id is folded into the salt
// so the same passphrase used in two different rooms yields unrelated keys.
func (c *sceneCipher) DeriveRoomKey(passphrase, roomID string) []byte {
	salt := []byte("sketchsync/room/" + roomID)
	return argon2.IDKey(
		[]byte(passphrase),
		salt,
		c.argonTime,
		c.argonMemory,
		c.argonThreads,
		c.argonKeyLen,
	)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
