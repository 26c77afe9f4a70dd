// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

package models

// SceneDocument is the wire and storage form of a room's scene: the version
// of the plaintext element sequence plus the AES-GCM initialization vector
// and ciphertext produced by the scene cipher. Byte fields travel as base64
// strings in JSON.
//
// A document is created on the first successful save for a room and replaced
// wholesale on every subsequent save; there is no partial update.
type SceneDocument struct {
	SceneVersion Version `json:"sceneVersion"`
	IV           []byte  `json:"iv"`
	Ciphertext   []byte  `json:"ciphertext"`
}
