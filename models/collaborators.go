// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

package models

import "hash/fnv"

// FingerprintFunc maps an element sequence to its Version. Implementations
// must be deterministic: an unchanged sequence yields an identical Version,
// and two sequences considered equivalent for dirty-checking must hash equal.
type FingerprintFunc func(elements []Element) Version

// MergeFunc reconciles a locally modified element sequence against the last
// known remote sequence, taking the caller's UI state into account. The sync
// engine calls it but never implements it; errors are propagated opaquely.
type MergeFunc func(local, remote []Element, ui UIState) ([]Element, error)

// RestoreFunc normalizes and validates a decoded element sequence before it
// is handed back to the application.
type RestoreFunc func(raw []Element) []Element

// DefaultFingerprint hashes id, sequence position, tombstone flag and raw
// payload of every element with FNV-1a and masks the result non-negative.
// Content-equal sequences hash equal because Data is carried as canonical
// raw JSON.
func DefaultFingerprint(elements []Element) Version {
	h := fnv.New64a()
	for _, el := range elements {
		h.Write([]byte(el.ID))
		h.Write([]byte{0})
		var seq [8]byte
		for i := 0; i < 8; i++ {
			seq[i] = byte(el.Seq >> (8 * i))
		}
		h.Write(seq[:])
		if el.Deleted {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
		h.Write(el.Data)
		h.Write([]byte{0})
	}
	return Version(int64(h.Sum64() &^ (1 << 63)))
}

// DefaultRestore drops elements without an id and returns the rest untouched.
func DefaultRestore(raw []Element) []Element {
	out := make([]Element, 0, len(raw))
	for _, el := range raw {
		if el.ID == "" {
			continue
		}
		out = append(out, el)
	}
	return out
}
